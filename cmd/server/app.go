package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskify-api/internal/api"
	"github.com/phrazzld/taskify-api/internal/api/middleware"
	"github.com/phrazzld/taskify-api/internal/config"
	"github.com/phrazzld/taskify-api/internal/platform/mail"
	"github.com/phrazzld/taskify-api/internal/platform/postgres"
	"github.com/phrazzld/taskify-api/internal/platform/storage"
	"github.com/phrazzld/taskify-api/internal/service"
	"github.com/phrazzld/taskify-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *database

	tokens      auth.TokenService
	authService service.AuthService
	taskService service.TaskService
	userService service.UserService

	uploadDir string
	registry  *prometheus.Registry
}

// newApplication wires stores, platform adapters and services.
func newApplication(cfg *config.Config, logger *slog.Logger, db *database) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		uploadDir: cfg.Storage.UploadDir,
		registry:  prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.sql, "taskify"),
	)

	var err error
	app.tokens, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		slog.Duration("access_token_lifetime", cfg.Auth.AccessTokenLifetime),
		slog.Duration("refresh_token_lifetime", cfg.Auth.RefreshTokenLifetime))

	userStore := postgres.NewPostgresUserStore(db.gorm, logger)
	taskStore := postgres.NewPostgresTaskStore(db.gorm, logger)

	avatars, err := storage.NewLocalAvatarStore(cfg.Storage.UploadDir, cfg.Storage.MaxAvatarBytes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize avatar storage: %w", err)
	}
	mailer := mail.NewSMTPMailer(cfg.Mail, logger)
	hasher := auth.NewBcryptHasher()

	app.authService, err = service.NewAuthService(
		userStore,
		app.tokens,
		hasher,
		mailer,
		avatars,
		cfg.Auth.ResetPasswordLink,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.taskService, err = service.NewTaskService(taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.userService, err = service.NewUserService(userStore, hasher, avatars, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// handlers builds the HTTP handlers over the application's services.
func (app *application) handlers() routeHandlers {
	return routeHandlers{
		auth:       api.NewAuthHandler(app.authService, app.config.Storage.MaxAvatarBytes),
		tasks:      api.NewTaskHandler(app.taskService),
		users:      api.NewUserHandler(app.userService, app.config.Storage.MaxAvatarBytes),
		middleware: middleware.NewAuthMiddleware(app.tokens, middleware.DefaultPolicy),
		metrics:    middleware.NewMetrics(app.registry),
	}
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	app.db.close(app.logger)
	app.logger.Info("application shutdown completed")
}
