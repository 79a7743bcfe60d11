package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"shareit/config"
	"slices"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

// Migration actions understood by Migrate.
const (
	ActionUp     = "up"
	ActionStepUp = "step-up"
	ActionDown   = "down"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

// migrationSteps maps each action to the migrate call that performs it.
var migrationSteps = map[string]func(*migrate.Migrate) error{
	ActionUp:     (*migrate.Migrate).Up,
	ActionStepUp: func(m *migrate.Migrate) error { return m.Steps(1) },
	ActionDown:   func(m *migrate.Migrate) error { return m.Steps(-1) },
	ActionDrop:   (*migrate.Migrate).Down,
}

// Actions lists the supported actions in a stable order.
func Actions() []string {
	actions := make([]string, 0, len(migrationSteps))
	for action := range migrationSteps {
		actions = append(actions, action)
	}

	slices.Sort(actions)

	return actions
}

// MigrationURL is the primary database url with the migration bookkeeping table attached.
func MigrationURL(cfg *config.Config) string {
	pg := cfg.DB.Postgres

	var extra url.Values
	if pg.MigrationTable != "" {
		extra = url.Values{"x-migrations-table": {pg.MigrationTable}}
	}

	return pg.DSN(pg.Write, extra)
}

// Migrate applies one action to the users, items and bookings schema.
// Having nothing left to apply is not an error.
func Migrate(cfg *config.Config, action string) error {
	step, ok := migrationSteps[action]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownAction, action)
	}

	mig, err := migrate.New(migrationSource, MigrationURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to open migration source: %w", err)
	}

	defer func() {
		srcErr, dbErr := mig.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close migration handles")
		}
	}()

	if err := step(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate %s: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

// Up brings the schema to the latest version.
func Up(cfg *config.Config) error {
	return Migrate(cfg, ActionUp)
}
