package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/emailauth/internal/auth/delivery"
	httpapi "github.com/aussiebroadwan/emailauth/internal/auth/http"
	"github.com/aussiebroadwan/emailauth/internal/auth/service"
	"github.com/aussiebroadwan/emailauth/internal/auth/store"
	"github.com/aussiebroadwan/emailauth/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/emailauth/pkg/jwtx"
	"github.com/aussiebroadwan/emailauth/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	ring      *jwtx.SecretRing
	deliverer delivery.Deliverer
	closers   []io.Closer

	// Services
	codeService         *service.CodeService
	tokenService        *service.TokenService
	authService         *service.AuthService
	identityService     *service.IdentityService
	membershipService   *service.MembershipService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "emailauth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ring, err := InitSecretRing(app.cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.ring = ring

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initDelivery(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"delivery", app.cfg.DeliveryMode,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.housekeepingService.Stop()
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
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	for _, c := range app.closers {
		if err := c.Close(); err != nil {
			app.logger.Warn("error closing delivery client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initDelivery picks the channel codes are sent through.
func (app *Application) initDelivery(ctx context.Context) error {
	switch app.cfg.DeliveryMode {
	case DeliverySMTP:
		app.deliverer = delivery.NewSMTPDeliverer(
			app.cfg.SMTP.Addr,
			app.cfg.SMTP.Username,
			app.cfg.SMTP.Password,
			app.cfg.SMTP.From,
			app.cfg.SiteName,
		)

	case DeliveryRedis:
		client, err := delivery.NewRedisClient(ctx, app.cfg.Redis.Addr, app.cfg.Redis.Password)
		if err != nil {
			return fmt.Errorf("failed to connect to redis outbox: %w", err)
		}
		app.closers = append(app.closers, client)
		app.deliverer = &delivery.RedisOutbox{
			Client:   client,
			Key:      app.cfg.Redis.OutboxKey,
			SiteName: app.cfg.SiteName,
		}

	default:
		if !app.cfg.IsDev() {
			app.logger.Warn("codes are written to the log; anyone with log access can sign in",
				slogx.Tags("delivery"),
			)
		}
		app.deliverer = delivery.LogDeliverer{Logger: app.logger}
	}

	app.logger.Info("code delivery configured", "mode", app.cfg.DeliveryMode)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.codeService = &service.CodeService{
		Store:     app.db,
		Deliverer: app.deliverer,
		CodeTTL:   app.cfg.EmailCodeTTL,
	}
	app.tokenService = &service.TokenService{
		Store:       app.db,
		Signer:      jwtx.NewSignerHS256(app.ring),
		APITokenTTL: app.cfg.APITokenTTL,
	}
	app.authService = &service.AuthService{
		Store:    app.db,
		Verifier: jwtx.NewVerifierHS256(app.ring),
	}
	app.identityService = &service.IdentityService{Store: app.db}
	app.membershipService = &service.MembershipService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.CodeRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.ring,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.CodeService = app.codeService
	router.TokenService = app.tokenService
	router.AuthService = app.authService
	router.IdentityService = app.identityService
	router.MembershipService = app.membershipService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
