package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"nightlife/config"
	"nightlife/infras/postgres"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
	ActionForce  = "force"

	defaultMigrationPath = "file://migrations/postgres"
)

var ErrUnknownAction = errors.New("unknown migration action")

func sourceURL(config *config.Config) string {
	if config.DB.Postgres.MigrationPath != "" {
		return config.DB.Postgres.MigrationPath
	}

	return defaultMigrationPath
}

func databaseURL(config *config.Config) string {
	dsn := postgres.DSN(config, config.DB.Postgres.Write)

	if config.DB.Postgres.MigrationTable != "" {
		dsn += "&x-migrations-table=" + config.DB.Postgres.MigrationTable
	}

	return dsn
}

// getConnection retries while the database is still coming up, using the same budget as the pool.
func getConnection(config *config.Config) (*migrate.Migrate, error) {
	attempts := max(config.DB.Postgres.MaxRetry, 1)
	wait := time.Duration(config.DB.Postgres.RetryWaitTime) * time.Second

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		mig, err := migrate.New(sourceURL(config), databaseURL(config))
		if err == nil {
			return mig, nil
		}

		lastErr = err

		log.Warn().Err(err).Int("attempt", attempt).Msg("failed to open migration source, retrying")

		if attempt < attempts {
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("error creating migrate instance: %w", lastErr)
}

func Runner(config *config.Config, action string, args ...int) error {
	switch action {
	case ActionUp, ActionDown, ActionStepUp, ActionDrop:
	case ActionForce:
		if len(args) == 0 {
			return fmt.Errorf("%s needs a version", ActionForce)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	case ActionForce:
		err = mig.Force(args[0])
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, verErr := mig.Version()
	if verErr != nil && !errors.Is(verErr, migrate.ErrNilVersion) {
		log.Warn().Err(verErr).Msg("failed to read migration version")
	}

	log.Info().Str("action", action).Uint("version", version).Bool("dirty", dirty).Msg("Database migration finished")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}

func StepUp(config *config.Config) error {
	return Runner(config, ActionStepUp)
}

func Down(config *config.Config) error {
	return Runner(config, ActionDown)
}

func Drop(config *config.Config) error {
	return Runner(config, ActionDrop)
}

func Force(config *config.Config, version int) error {
	return Runner(config, ActionForce, version)
}
