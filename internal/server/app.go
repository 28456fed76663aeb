// Package server wires the credential store, the auth core and the HTTP and
// gRPC endpoints together and runs them until a shutdown signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/goldmanager/internal/logging"
	"github.com/dmitrijs2005/goldmanager/internal/server/auth"
	"github.com/dmitrijs2005/goldmanager/internal/server/config"
	"github.com/dmitrijs2005/goldmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/goldmanager/internal/server/rest"
	"github.com/dmitrijs2005/goldmanager/internal/server/services"

	gs "github.com/dmitrijs2005/goldmanager/internal/server/grpc"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	repos         repomanager.RepositoryManager
	keys          *auth.KeyRegistry
	authenticator *auth.Authenticator
	validator     *auth.TokenValidator
	userService   *services.UserService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, logging.New(c.LogLevel))
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	rm, err := repomanager.NewRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher, err := auth.NewHasher(c.PasswordHash, c.PasswordPepper)
	if err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	keys := auth.NewKeyRegistry()
	store := rm.Users()

	opts := []auth.Option{
		auth.WithStoreTimeout(c.StoreTimeout),
		auth.WithLogger(logger.With("module", "auth")),
	}

	app := &App{
		config:        c,
		logger:        logger,
		repos:         rm,
		keys:          keys,
		authenticator: auth.NewAuthenticator(store, hasher, keys, c.AccessTokenValidityDuration, opts...),
		validator:     auth.NewTokenValidator(keys, store, opts...),
		userService:   services.NewUserService(rm, hasher, keys, logger),
	}

	if err := app.bootstrap(ctx); err != nil {
		_ = rm.Close()
		return nil, err
	}

	return app, nil
}

func (app *App) bootstrap(ctx context.Context) error {
	created, err := app.userService.Bootstrap(ctx, app.config.AdminUser, app.config.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap error: %w", err)
	}
	if created {
		return nil
	}

	n, err := app.userService.Count(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap error: %w", err)
	}
	if n == 0 {
		app.logger.Warn(ctx, "user store is empty and no administrator password is configured, nobody can log in")
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.authenticator, app.validator, app.userService, app.config.PublicRoutes)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.validator, app.config.PublicGRPCMethods)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// startKeySweeper drops session keys whose tokens have all expired.
func (app *App) startKeySweeper(ctx context.Context) {
	if app.config.KeySweepInterval <= 0 {
		return
	}

	log := app.logger.With("module", "key_sweeper")
	app.keys.SweepEvery(ctx, app.config.KeySweepInterval, app.config.AccessTokenValidityDuration, time.Now, func(removed int) {
		if removed > 0 {
			log.Debug(ctx, "expired session keys removed", "count", removed, "remaining", app.keys.Len())
		}
	})
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startKeySweeper(ctx)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(context.Background(), "closing store failed", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")
}
