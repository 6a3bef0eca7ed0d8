package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/redact"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries logged at WARN.
const slowQueryThreshold = 200 * time.Millisecond

// gormLogger adapts the GORM logger interface to slog. Query errors are
// logged at DEBUG because the stores log them with more context.
type gormLogger struct {
	logger *slog.Logger
	level  gormlogger.LogLevel
}

func newGormLogger(l *slog.Logger) gormlogger.Interface {
	if l == nil {
		l = slog.Default()
	}
	return &gormLogger{
		logger: l.With(slog.String("component", "gorm")),
		level:  gormlogger.Warn,
	}
}

func (g *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.from(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (g *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.from(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.from(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (g *gormLogger) Trace(
	ctx context.Context,
	begin time.Time,
	fc func() (sql string, rowsAffected int64),
	err error,
) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	log := g.from(ctx)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		log.Debug("query failed",
			slog.String("sql", redact.String(sql)),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed),
			slog.String("error", redact.Error(err)))
	case elapsed > slowQueryThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		log.Warn("slow query",
			slog.String("sql", redact.String(sql)),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed))
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		log.Debug("query",
			slog.String("sql", redact.String(sql)),
			slog.Int64("rows", rows),
			slog.Duration("elapsed", elapsed))
	}
}

func (g *gormLogger) from(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, g.logger)
}
