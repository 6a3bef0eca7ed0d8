package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskify-api/internal/config"
	"github.com/phrazzld/taskify-api/internal/platform/postgres"
	"gorm.io/gorm"
)

// database bundles the pool with the GORM handle built on top of it.
type database struct {
	sql  *sql.DB
	gorm *gorm.DB
}

// setupAppDatabase connects to PostgreSQL. Migrations are applied separately
// with the -migrate flag.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*database, error) {
	sqlDB, gormDB, err := postgres.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &database{sql: sqlDB, gorm: gormDB}, nil
}

func (d *database) close(logger *slog.Logger) {
	if d == nil || d.sql == nil {
		return
	}
	if err := d.sql.Close(); err != nil {
		logger.Error("error closing database connection", slog.String("error", err.Error()))
	}
}
