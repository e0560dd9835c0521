package db

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open opens (and creates if needed) the SQLite file at path.
func Open(path string, logger *slog.Logger) (*gorm.DB, error) {
	// busy_timeout and foreign_keys are per connection, so they go in the DSN
	// rather than through a PRAGMA on one pooled connection. genre_id and
	// director_id are never checked against their tables.
	dsn := path + "?_busy_timeout=5000&_foreign_keys=0"
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         NewGormLogger(logger),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return gormDB, nil
}

// Close releases the connection pool behind gormDB.
func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// RunMigrations creates missing catalogue tables and indexes.
func RunMigrations(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	if err := enableSQLiteOptimizations(ctx, db, logger); err != nil {
		return fmt.Errorf("failed to enable SQLite optimizations: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

// enableSQLiteOptimizations enables SQLite-specific optimizations
func enableSQLiteOptimizations(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	optimizations := []string{
		"PRAGMA journal_mode=WAL",   // Enable WAL mode for better concurrency
		"PRAGMA synchronous=NORMAL", // Faster writes while maintaining safety
		"PRAGMA temp_store=MEMORY",  // Store temporary tables in memory
		"PRAGMA cache_size=1000",    // Increase cache size
		"PRAGMA optimize",           // Enable query optimization
	}

	for _, pragma := range optimizations {
		if err := db.WithContext(ctx).Exec(pragma).Error; err != nil {
			logger.WarnContext(ctx, "Failed to execute pragma", slog.String("pragma", pragma), slog.Any("error", err))
		} else {
			logger.DebugContext(ctx, "Executed pragma", slog.String("pragma", pragma))
		}
	}

	return nil
}
