package helper_test

import (
	"net/url"
	"shareit/config"
	"shareit/helper"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActions(t *testing.T) {
	assert.Equal(t, []string{"down", "drop", "step-up", "up"}, helper.Actions())
}

func TestMigrationURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.MigrationTable = "shareit_migrations"
	cfg.DB.Postgres.Write = config.Endpoint{Host: "localhost", Port: "5432", Username: "u", Password: "p", Name: "shareit", SSLMode: "disable"}
	cfg.DB.Postgres.Read = config.Endpoint{Host: "replica", Port: "5432", Name: "replica"}

	parsed, err := url.Parse(helper.MigrationURL(cfg))
	require.NoError(t, err)

	assert.Equal(t, "localhost:5432", parsed.Host)
	assert.Equal(t, "shareit_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestMigrate_UnknownAction(t *testing.T) {
	err := helper.Migrate(&config.Config{}, "sideways")

	require.ErrorIs(t, err, helper.ErrUnknownAction)
}
