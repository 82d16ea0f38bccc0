package database

import (
	"errors"
	"fmt"
	"path/filepath"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// RunMigrations применяет все миграции из указанной директории.
// Ошибка "no change" не считается ошибкой: база уже в актуальном состоянии.
func RunMigrations(migrationsDir, dsn string, logger *zap.Logger) error {
	absDir, err := filepath.Abs(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to resolve migrations directory: %w", err)
	}
	sourceURL := "file://" + filepath.ToSlash(absDir)

	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		version, dirty, vErr := m.Version()
		if vErr == nil {
			logger.Error("Migration failed",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
				zap.Error(err))
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("Migrations already up to date")
	} else {
		logger.Info("Migrations applied successfully", zap.String("source", sourceURL))
	}
	return nil
}
