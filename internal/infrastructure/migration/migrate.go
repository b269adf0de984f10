package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator drives schema migrations over golang-migrate. The schema is the
// source of truth for the ledger's uniqueness guarantees (per-landlord entry
// sequences), so all schema changes go through versioned SQL files here.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New builds a Migrator over an open postgres connection and a directory
// of versioned .up.sql/.down.sql files.
func New(db *sql.DB, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{m: m, log: log}, nil
}

// Up applies every pending migration
func (mg *Migrator) Up() error {
	mg.log.Info("Applying pending migrations")

	if done, err := noChange(mg.m.Up()); err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	} else if done {
		mg.log.Info("Schema already up to date")
		return nil
	}

	version, dirty, err := mg.m.Version()
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	mg.log.Info("Migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Down rolls back every applied migration
func (mg *Migrator) Down() error {
	mg.log.Info("Rolling back all migrations")

	if done, err := noChange(mg.m.Down()); err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	} else if done {
		mg.log.Info("Nothing to roll back")
		return nil
	}

	mg.log.Info("All migrations rolled back")
	return nil
}

// Steps applies n migrations forward, or -n backward
func (mg *Migrator) Steps(n int) error {
	mg.log.Info("Stepping migrations", zap.Int("steps", n))

	if done, err := noChange(mg.m.Steps(n)); err != nil {
		return fmt.Errorf("migration steps failed: %w", err)
	} else if done {
		mg.log.Info("Schema already up to date")
		return nil
	}

	version, dirty, err := mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	mg.log.Info("Migration steps applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// GoTo migrates the schema to an exact version, up or down
func (mg *Migrator) GoTo(version uint) error {
	mg.log.Info("Migrating to version", zap.Uint("target_version", version))

	if done, err := noChange(mg.m.Migrate(version)); err != nil {
		return fmt.Errorf("migration to version %d failed: %w", version, err)
	} else if done {
		mg.log.Info("Already at target version")
		return nil
	}

	mg.log.Info("Migrated to version", zap.Uint("version", version))
	return nil
}

// Version reports the current schema version. A database that never ran a
// migration reports version 0, not an error.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL. Only for
// recovering a dirty schema after a failed migration.
func (mg *Migrator) Force(version int) error {
	mg.log.Warn("Forcing migration version", zap.Int("version", version))

	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("failed to force version %d: %w", version, err)
	}
	return nil
}

// Drop destroys everything in the database, data included
func (mg *Migrator) Drop() error {
	mg.log.Warn("Dropping database, all data will be lost")

	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	mg.log.Info("Database dropped")
	return nil
}

// Close releases the source and database handles
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("failed to close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("failed to close database handle: %w", dbErr)
	}
	return nil
}

// noChange collapses migrate's ErrNoChange into a boolean
func noChange(err error) (bool, error) {
	if err == nil {
		return false, nil
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return true, nil
	}
	return false, err
}
