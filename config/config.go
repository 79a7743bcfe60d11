package config

import (
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const defaultBookingTopic = "bookings"

type Config struct {
	Server Server `envconfig:"SERVER"`
	App    App    `envconfig:"APP"`
	Cache  Cache  `envconfig:"CACHE"`
	DB     struct {
		Postgres Postgres `envconfig:"POSTGRES"`
	} `envconfig:"DB"`
	Kafka    Kafka `envconfig:"KAFKA"`
	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

type Server struct {
	Env      string `envconfig:"ENV"`
	LogLevel string `envconfig:"LOG_LEVEL"`
	LogFile  string `envconfig:"LOG_FILE"`
	Port     string `envconfig:"PORT"`
	Host     string `envconfig:"HOST"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
	} `envconfig:"SHUTDOWN"`
}

// Addr is the listen address of the http server.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type App struct {
	Name     string `envconfig:"APP_NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	CORS     struct {
		AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
		AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
		AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
		AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
		Enable           bool     `envconfig:"ENABLE"`
		MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
	} `envconfig:"CORS"`
	RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
}

type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
}

// Window is the counting period of the limiter.
func (r RateLimiter) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

type Cache struct {
	Redis struct {
		Primary struct {
			Host     string `envconfig:"HOST"`
			Port     string `envconfig:"PORT"`
			Password string `envconfig:"PASSWORD"`
			DB       int    `envconfig:"DB"`
		} `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	// TTL of cached users and items, in seconds.
	TTL int `envconfig:"TTL"`
}

// Expiration is how long cached users and items stay valid.
func (c Cache) Expiration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

type Postgres struct {
	MaxRetry       int      `envconfig:"MAX_RETRY"`
	RetryWaitTime  int      `envconfig:"RETRY_WAIT_TIME"`
	MigrationTable string   `envconfig:"MIGRATION_TABLE"`
	AutoMigrate    bool     `envconfig:"AUTO_MIGRATE"`
	Prefix         string   `envconfig:"PREFIX"`
	Read           Endpoint `envconfig:"READ"`
	Write          Endpoint `envconfig:"WRITE"`
}

// Endpoint is one postgres server the application talks to.
type Endpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

// DatabaseName applies the configured prefix to the endpoint database.
func (p Postgres) DatabaseName(e Endpoint) string {
	return p.Prefix + e.Name
}

// DSN builds the connection url of e. Extra query parameters are appended as given.
func (p Postgres) DSN(e Endpoint, extra url.Values) string {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	for key, values := range extra {
		for _, v := range values {
			query.Add(key, v)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + p.DatabaseName(e),
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

type Kafka struct {
	Enable  bool     `envconfig:"ENABLE"`
	Brokers []string `envconfig:"BROKERS"`
	SASL    struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
	Topics struct {
		Booking string `envconfig:"BOOKING"`
	} `envconfig:"TOPICS"`
}

// BookingTopic is the topic booking lifecycle events are written to.
func (k Kafka) BookingTopic() string {
	if k.Topics.Booking == "" {
		return defaultBookingTopic
	}

	return k.Topics.Booking
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

// Init loads .env (when present) into the environment and decodes it into the shared config.
func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Warn().Err(loadErr).Msg("No .env file loaded, reading configuration from the environment only")
		}

		if err = envconfig.Process("", &conf); err != nil {
			return
		}

		initialized = true

		log.Info().
			Str("env", conf.Server.Env).
			Bool("kafka", conf.Kafka.Enable).
			Bool("rateLimiter", conf.App.RateLimiter.Enable).
			Msg("Configuration loaded")
	})

	if err != nil {
		return fmt.Errorf("failed to process environment variables: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
