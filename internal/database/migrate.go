package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/stemsi/schoolcrm-backend/internal/config"
)

// Migrator applies the users and classes schema from cfg.MigrationsPath.
type Migrator struct {
	m   *migrate.Migrate
	log zerolog.Logger
}

// NewMigrator opens the migration source and the target database.
func NewMigrator(cfg *config.Config, log zerolog.Logger) (*Migrator, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	source, err := migrationSource(cfg.MigrationsPath)
	if err != nil {
		return nil, err
	}

	m, err := migrate.New(source, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("init migrations from %s: %w", source, err)
	}
	return &Migrator{m: m, log: log.With().Str("component", "migrator").Logger()}, nil
}

// migrationSource turns a directory into a file:// source URL.
func migrationSource(dir string) (string, error) {
	if dir == "" {
		dir = "migrations"
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve migrations path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	mg.logVersion("Schema is up to date")
	return nil
}

// Down reverts every migration.
func (mg *Migrator) Down() error {
	if err := mg.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	mg.logVersion("Schema reverted")
	return nil
}

// Steps applies n migrations forward, or -n backward.
func (mg *Migrator) Steps(n int) error {
	if err := mg.m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate steps %d: %w", n, err)
	}
	mg.logVersion("Schema stepped")
	return nil
}

// Force sets the recorded version without running anything and clears the
// dirty flag.
func (mg *Migrator) Force(version int) error {
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("migrate force %d: %w", version, err)
	}
	mg.logVersion("Schema version forced")
	return nil
}

// Version reports the applied version. A fresh database reports 0.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the source and database handles.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

func (mg *Migrator) logVersion(msg string) {
	v, dirty, err := mg.Version()
	if err != nil {
		mg.log.Warn().Err(err).Msg("Could not read schema version")
		return
	}
	mg.log.Info().Uint("version", v).Bool("dirty", dirty).Msg(msg)
}
