// Package cli provides the initialization shared by cmd/moneybook and
// cmd/moneybook-worker, plus themed terminal output.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"moneybook/internal/api"
	"moneybook/internal/backend"
	"moneybook/internal/cache"
	"moneybook/internal/config"
	"moneybook/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the process logger from cfg and installs it as the
// slog default. Call after LoadAndValidateConfig.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: component,
		Output:    os.Stderr,
	})
	log.SetDefault(logger)
	return logger
}

// OpenStore opens the slot backend selected by cfg.
func OpenStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (*backend.StoreResult, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	return backend.NewFactory(logger).CreateStore(ctx, bcfg)
}

// NewAPIClient builds the ledger API client with a response cache sized
// from cfg. The returned manager sweeps expired cache entries; callers own
// its lifecycle. A zero CacheTTL disables caching.
func NewAPIClient(cfg *config.Config, tokens api.TokenSource, logger *log.Logger) (*api.Client, *cache.Manager, error) {
	manager := cache.NewManager(logger)
	opts := []api.Option{
		api.WithTokenSource(tokens),
		api.WithLogger(logger),
	}
	if cfg.CacheTTL > 0 {
		responses := cache.NewLRUCache[[]byte](cfg.CacheSize, cfg.CacheTTL)
		manager.Register(responses)
		opts = append(opts, api.WithCache(responses))
	}

	client, err := api.New(cfg.APIURL, cfg.APITimeout, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, manager, nil
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when cleanup has finished or timed out.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		cancel()

		finished := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup()
			}
			close(finished)
		}()

		select {
		case <-finished:
			logger.Info("Shutdown complete")
		case <-time.After(timeout):
			logger.Warn("Shutdown timeout reached")
		}
		close(done)
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and cleanup is done.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
