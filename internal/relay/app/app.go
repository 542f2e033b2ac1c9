package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/kindlinghq/kindling/internal/relay/http"
	"github.com/kindlinghq/kindling/internal/relay/service"
	"github.com/kindlinghq/kindling/internal/relay/store"
	"github.com/kindlinghq/kindling/internal/relay/store/drivers/sqlite"
	"github.com/kindlinghq/kindling/pkg/jwtx"
	"github.com/kindlinghq/kindling/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application is the compute service: it accepts data payloads and stores
// form submissions on behalf of the client application.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	verifier jwtx.Verifier

	intakeService     *service.IntakeService
	submissionService *service.SubmissionService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "relay-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initVerifier(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("relay service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down relay service...")

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

	app.logger.Info("relay service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initVerifier loads the identity provider's session public key. Without it
// the session-guarded endpoints stay closed and submissions run anonymous.
func (app *Application) initVerifier() error {
	if app.cfg.IdentityPublicKeyFile == "" {
		app.logger.Warn("no identity public key configured; sessions will not verify")
		return nil
	}

	pemKey, err := os.ReadFile(app.cfg.IdentityPublicKeyFile)
	if err != nil {
		return fmt.Errorf("failed to read identity public key: %w", err)
	}

	verifier, err := jwtx.NewEdDSAVerifierFromPEM(pemKey)
	if err != nil {
		return fmt.Errorf("failed to parse identity public key: %w", err)
	}
	app.verifier = verifier

	app.logger.Info("loaded identity public key", "file", app.cfg.IdentityPublicKeyFile)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.intakeService = service.NewIntakeService(app.logger)
	app.submissionService = service.NewSubmissionService(app.db, app.logger)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(app.verifier, BuildVersion, app.db, app.logger)

	router.IntakeService = app.intakeService
	router.SubmissionService = app.submissionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
