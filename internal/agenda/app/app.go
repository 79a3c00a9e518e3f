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

	"github.com/redis/go-redis/v9"

	"github.com/agendaapi/agenda/internal/agenda/denylist"
	httpapi "github.com/agendaapi/agenda/internal/agenda/http"
	"github.com/agendaapi/agenda/internal/agenda/service"
	"github.com/agendaapi/agenda/internal/agenda/store"
	"github.com/agendaapi/agenda/internal/agenda/store/drivers/postgres"
	"github.com/agendaapi/agenda/pkg/jwtx"
	"github.com/agendaapi/agenda/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires the agenda service together: database, denylist, token
// codec, services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	redis    *redis.Client
	denylist denylist.Store
	codec    *jwtx.Codec

	userService    *service.UserService
	contactService *service.ContactService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "agenda-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()
	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initDenylist(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.codec = jwtx.NewCodec(cfg.JWTSecret, cfg.Issuer, cfg.TokenTTL)

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("agenda service starting", "port", app.cfg.Port, "version", BuildVersion)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down agenda service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.redis.Close(); err != nil {
		app.logger.Error("error closing redis client", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("agenda service stopped")
	return nil
}

// initDatabase connects to Postgres and applies migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	db, err := postgres.Open(ctx, app.cfg.DatabaseURL)
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

// initDenylist connects the Redis-backed token denylist. The connection is
// verified up front, a dead denylist would refuse every authenticated request.
func (app *Application) initDenylist(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPass,
		DB:       app.cfg.RedisDB,
	})

	dl := denylist.NewRedisStore(client)
	if err := dl.Ping(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to reach denylist redis: %w", err)
	}

	app.redis = client
	app.denylist = dl
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:                  app.db,
		Codec:                  app.codec,
		Denylist:               app.denylist,
		RevokeOnPasswordChange: app.cfg.RevokeOnPasswordChange,
	}
	app.contactService = &service.ContactService{Store: app.db}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.codec,
		app.denylist,
		app.cfg.Env,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.UserService = app.userService
	router.ContactService = app.contactService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
