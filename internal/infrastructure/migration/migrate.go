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

// Migrator applies the SQL migrations under migrations/ against the
// craftshop database. It wraps golang-migrate with logging and with
// ErrNoChange treated as success.
type Migrator struct {
	m      *migrate.Migrate
	logger *zap.Logger
}

// New builds a Migrator on an open Postgres connection.
func New(db *sql.DB, migrationsPath string, logger *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	return &Migrator{m: m, logger: logger}, nil
}

// Up applies every pending migration.
func (mg *Migrator) Up() error {
	mg.logger.Info("Applying pending migrations")
	if done, err := mg.ran(mg.m.Up()); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	} else if done {
		mg.logSchemaVersion("Migrations applied")
	}
	return nil
}

// Down rolls back every applied migration.
func (mg *Migrator) Down() error {
	mg.logger.Info("Rolling back all migrations")
	if done, err := mg.ran(mg.m.Down()); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	} else if done {
		mg.logger.Info("All migrations rolled back")
	}
	return nil
}

// Steps applies n migrations; a negative n rolls back.
func (mg *Migrator) Steps(n int) error {
	mg.logger.Info("Stepping migrations", zap.Int("steps", n))
	if done, err := mg.ran(mg.m.Steps(n)); err != nil {
		return fmt.Errorf("migrate %d steps: %w", n, err)
	} else if done {
		mg.logSchemaVersion("Migration steps applied")
	}
	return nil
}

// GoTo migrates up or down to the given schema version.
func (mg *Migrator) GoTo(version uint) error {
	mg.logger.Info("Migrating to schema version", zap.Uint("target", version))
	if done, err := mg.ran(mg.m.Migrate(version)); err != nil {
		return fmt.Errorf("migrate to version %d: %w", version, err)
	} else if done {
		mg.logSchemaVersion("Migration completed")
	}
	return nil
}

// Version reports the current schema version. A fresh database reports
// version 0, not an error.
func (mg *Migrator) Version() (uint, bool, error) {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded schema version. Only for repairing a
// dirty state after a failed migration.
func (mg *Migrator) Force(version int) error {
	mg.logger.Warn("Forcing schema version", zap.Int("version", version))
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop destroys every object in the database.
func (mg *Migrator) Drop() error {
	mg.logger.Warn("Dropping all database objects")
	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

// Close releases the migration source and database handles.
func (mg *Migrator) Close() error {
	sourceErr, dbErr := mg.m.Close()
	if sourceErr != nil {
		return fmt.Errorf("close migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close migration database: %w", dbErr)
	}
	return nil
}

// ran normalizes a migrate result: ErrNoChange means nothing to do.
func (mg *Migrator) ran(err error) (bool, error) {
	if errors.Is(err, migrate.ErrNoChange) {
		mg.logger.Info("Schema already up to date")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (mg *Migrator) logSchemaVersion(msg string) {
	version, dirty, err := mg.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		mg.logger.Warn("Could not read schema version", zap.Error(err))
		return
	}
	mg.logger.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
