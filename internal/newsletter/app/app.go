package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/paperwing/newsletter/internal/newsletter/http"
	"github.com/paperwing/newsletter/internal/newsletter/service"
	"github.com/paperwing/newsletter/internal/newsletter/store"
	"github.com/paperwing/newsletter/internal/newsletter/store/drivers/postgres"
	"github.com/paperwing/newsletter/internal/newsletter/store/drivers/sqlite"
	"github.com/paperwing/newsletter/pkg/mailer"
	"github.com/paperwing/newsletter/pkg/sessionx"
	"github.com/paperwing/newsletter/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the newsletter service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	outbox   mailer.Mailer
	sessions *sessionx.Manager

	// Services
	registrarService    *service.RegistrarService
	confirmationService *service.ConfirmationService
	credentialService   *service.CredentialService
	publisherService    *service.PublisherService
	userService         *service.UserService
	bootstrapService    *service.BootstrapService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "newsletter",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET must be set")
	}
	app.sessions = sessionx.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.Env == "prod")

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initMailer(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()

	// Seed the first operator account before taking traffic.
	if err := app.bootstrapService.EnsureAdmin(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to provision admin user: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("newsletter service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down newsletter service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("newsletter service stopped")
	return nil
}

// initDatabase initializes the configured store driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		if app.cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set for the postgres driver")
		}
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully",
		"driver", app.cfg.DatabaseDriver)
	return nil
}

// initMailer initializes the outbound email client
func (app *Application) initMailer() error {
	switch app.cfg.MailerMode {
	case "postmark":
		m, err := mailer.NewPostmark(mailer.Config{
			ServerToken:  app.cfg.PostmarkServerToken,
			AccountToken: app.cfg.PostmarkAccountToken,
			SenderEmail:  app.cfg.SenderEmail,
			Timeout:      app.cfg.EmailSendTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize postmark mailer: %w", err)
		}
		app.outbox = m
	case "dev":
		app.outbox = &mailer.DevMailer{Logger: app.logger}
		app.logger.Warn("using dev mailer; confirmation links are logged, not sent")
	default:
		return fmt.Errorf("unknown mailer mode %q", app.cfg.MailerMode)
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.credentialService = &service.CredentialService{Store: app.db}
	app.registrarService = &service.RegistrarService{
		Store:   app.db,
		Mailer:  app.outbox,
		BaseURL: app.cfg.BaseURL,
	}
	app.confirmationService = &service.ConfirmationService{Store: app.db}
	app.publisherService = &service.PublisherService{
		Store:  app.db,
		Mailer: app.outbox,
	}
	app.userService = &service.UserService{
		Store:       app.db,
		Credentials: app.credentialService,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:         app.db,
		AdminUsername: app.cfg.AdminUsername,
		AdminPassword: app.cfg.AdminPassword,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.sessions, app.logger)

	// Wire services to router
	router.RegistrarService = app.registrarService
	router.ConfirmationService = app.confirmationService
	router.CredentialService = app.credentialService
	router.PublisherService = app.publisherService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
