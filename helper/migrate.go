package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"venuebook/config"
	"venuebook/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type migration struct {
	run     func(mig *migrate.Migrate) error
	failure string
	success string
}

var migrations = map[string]migration{
	"up": {
		run:     (*migrate.Migrate).Up,
		failure: "error running migrations",
		success: "Database migrations completed successfully",
	},
	"step-up": {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(1) },
		failure: "error running migrations",
		success: "Database migrations completed successfully",
	},
	"down": {
		run:     func(mig *migrate.Migrate) error { return mig.Steps(-1) },
		failure: "error rolling back migrations",
		success: "Database migrations rolled back successfully",
	},
	"drop": {
		run:     (*migrate.Migrate).Down,
		failure: "error rolling back migrations",
		success: "Database migrations rolled back successfully",
	},
}

// DatabaseURL points at the write node; the migrations table name is passed as x-migrations-table.
func DatabaseURL(config *config.Config) string {
	extra := url.Values{}
	if config.DB.Postgres.MigrationTable != "" {
		extra.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	}

	return postgres.URL(config, config.DB.Postgres.Write, extra)
}

func Runner(config *config.Config, action string) error {
	step, ok := migrations[action]
	if !ok {
		return fmt.Errorf("unknown migration action %q", action)
	}

	mig, err := migrate.New(migrationSource, DatabaseURL(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	if err := step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", step.failure, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg(step.success)

	return nil
}

// Up is run on startup when DB_POSTGRES_AUTO_MIGRATE is set.
func Up(config *config.Config) error {
	return Runner(config, "up")
}
