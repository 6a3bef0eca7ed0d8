package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/taskify-api/internal/config"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// pingTimeout bounds the initial connectivity check.
const pingTimeout = 5 * time.Second

// Open connects to PostgreSQL through the pgx driver, applies the pool
// settings from cfg, verifies connectivity and wraps the pool in GORM.
// The caller owns the returned *sql.DB and must close it.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, *gorm.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sqlDB, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := NewGorm(sqlDB, logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	logger.Info("database connection established",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns))
	return sqlDB, gormDB, nil
}

// NewGorm wraps an existing pool in GORM without opening new connections.
func NewGorm(sqlDB *sql.DB, logger *slog.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 newGormLogger(logger),
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return gormDB, nil
}
