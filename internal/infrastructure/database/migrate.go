package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// RunMigrations applies all pending migrations for the dialect of databaseURL.
func RunMigrations(databaseURL string, logger *zap.Logger) error {
	target, err := ParseURL(databaseURL)
	if err != nil {
		return err
	}
	src, err := iofs.New(migrationsFS, "migrations/"+string(target.Dialect))
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, target.MigrateURL)
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("✅ migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
