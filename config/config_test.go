package config_test

import (
	"net/url"
	"shareit/config"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_DSN(t *testing.T) {
	pg := config.Postgres{
		Prefix: "test_",
		Write: config.Endpoint{
			Host:     "db.local",
			Port:     "5432",
			Username: "shareit",
			Password: "p@ss word",
			Name:     "shareit",
			SSLMode:  "disable",
		},
	}

	dsn, err := url.Parse(pg.DSN(pg.Write, url.Values{"x-migrations-table": {"schema_migrations"}}))
	require.NoError(t, err)

	assert.Equal(t, "postgres", dsn.Scheme)
	assert.Equal(t, "db.local:5432", dsn.Host)
	assert.Equal(t, "/test_shareit", dsn.Path)
	assert.Equal(t, "shareit", dsn.User.Username())

	password, _ := dsn.User.Password()
	assert.Equal(t, "p@ss word", password)
	assert.Equal(t, "disable", dsn.Query().Get("sslmode"))
	assert.Equal(t, "schema_migrations", dsn.Query().Get("x-migrations-table"))
}

func TestPostgres_DSNWithoutSSLMode(t *testing.T) {
	pg := config.Postgres{Read: config.Endpoint{Host: "localhost", Port: "5433", Name: "shareit"}}

	dsn, err := url.Parse(pg.DSN(pg.Read, nil))
	require.NoError(t, err)

	assert.Empty(t, dsn.RawQuery)
	assert.Equal(t, "/shareit", dsn.Path)
}

func TestKafka_BookingTopic(t *testing.T) {
	var k config.Kafka
	assert.Equal(t, "bookings", k.BookingTopic())

	k.Topics.Booking = "shareit.bookings"
	assert.Equal(t, "shareit.bookings", k.BookingTopic())
}

func TestRateLimiter_Window(t *testing.T) {
	assert.Equal(t, 90*time.Second, config.RateLimiter{WindowSeconds: 90}.Window())
}

func TestServer_Addr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", config.Server{Host: "0.0.0.0", Port: "8080"}.Addr())
}
