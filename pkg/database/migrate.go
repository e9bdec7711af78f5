package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/jezhtech/fc-fleet-sub002/pkg/config"
	"github.com/jezhtech/fc-fleet-sub002/pkg/logger"
)

// RunMigrations applies all pending migrations from the configured
// migrations directory. It is a no-op when the schema is already current.
func RunMigrations(cfg *config.DatabaseConfig) error {
	sourceURL := fmt.Sprintf("file://%s", cfg.MigrationsPath)

	m, err := migrate.New(sourceURL, cfg.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logger.Info("Database migrations applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}
