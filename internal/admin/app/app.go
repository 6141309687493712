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

	httpapi "github.com/keystead/identity-admin/internal/admin/http"
	"github.com/keystead/identity-admin/internal/admin/service"
	"github.com/keystead/identity-admin/internal/admin/store"
	"github.com/keystead/identity-admin/internal/admin/store/drivers/sqlite"
	"github.com/keystead/identity-admin/pkg/jwtx"
	"github.com/keystead/identity-admin/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the admin registry with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	keys     *jwtx.KeySet
	verifier jwtx.Verifier

	clientsService           *service.ClientsService
	resourcesService         *service.ResourcesService
	scopesService            *service.ScopesService
	identityResourcesService *service.IdentityResourcesService
	usersService             *service.UsersService
	becomeAdminService       *service.BecomeAdminService
	agentTypesService        *service.AgentTypesService
	notifier                 *service.Notifier

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity-admin",
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
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("admin registry starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down admin registry...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Let in-flight confirmation notices finish before dropping the process.
	app.notifier.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("admin registry stopped")
	return nil
}

// initDatabase opens the store and applies migrations.
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

// initVerifier loads the IdP's public keys and builds the bearer token
// verifier. Keys come from a JWKS file or, failing that, the IdP's JWKS
// endpoint.
func (app *Application) initVerifier() error {
	var jwks jwtx.JWKS
	var err error

	switch {
	case app.cfg.JWKSFile != "":
		jwks, err = jwtx.LoadJWKSFile(app.cfg.JWKSFile)
		if err != nil {
			return fmt.Errorf("failed to load JWKS file: %w", err)
		}
	case app.cfg.JWKSURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		jwks, err = jwtx.FetchJWKS(ctx, nil, app.cfg.JWKSURL)
		if err != nil {
			return fmt.Errorf("failed to fetch JWKS from %s: %w", app.cfg.JWKSURL, err)
		}
	default:
		return fmt.Errorf("no verification keys configured: set ADMIN_JWKS_FILE or ADMIN_JWKS_URL")
	}

	keys := jwtx.NewKeySet()
	if err := keys.ResetFromJWKS(jwks); err != nil {
		return fmt.Errorf("failed to load verification keys: %w", err)
	}

	var aud []string
	if app.cfg.Audience != "" {
		aud = []string{app.cfg.Audience}
	}

	app.keys = keys
	app.verifier = jwtx.NewVerifierRS256(keys, app.cfg.Issuer, aud)

	app.logger.Info("verification keys loaded", "issuer", app.cfg.Issuer)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.notifier = &service.Notifier{
		URL:     app.cfg.NotificationURL,
		Timeout: app.cfg.NotifyTimeout,
	}

	app.clientsService = &service.ClientsService{Store: app.db}
	app.resourcesService = &service.ResourcesService{Store: app.db}
	app.scopesService = &service.ScopesService{Store: app.db}
	app.identityResourcesService = &service.IdentityResourcesService{Store: app.db}
	app.usersService = &service.UsersService{
		Store:    app.db,
		Notifier: app.notifier,
	}
	app.becomeAdminService = &service.BecomeAdminService{Store: app.db}
	app.agentTypesService = &service.AgentTypesService{URL: app.cfg.AgentTypesURL}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.ClientsService = app.clientsService
	router.ResourcesService = app.resourcesService
	router.ScopesService = app.scopesService
	router.IdentityResourcesService = app.identityResourcesService
	router.UsersService = app.usersService
	router.BecomeAdminService = app.becomeAdminService
	router.AgentTypesService = app.agentTypesService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
