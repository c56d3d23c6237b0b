package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/light-bringer/inventory-service/internal/config"
	"github.com/light-bringer/inventory-service/internal/pkg/logger"
	"github.com/light-bringer/inventory-service/internal/services"
	transporthttp "github.com/light-bringer/inventory-service/internal/transport/http"
)

var configFile = flag.String("config", "", "optional config file (env, yaml or json)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log := logger.Default()
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("driver", cfg.StoreDriver).
		Str("http_port", cfg.HTTPPort).
		Bool("cache", cfg.CacheEnabled()).
		Msg("Starting Inventory Service...")

	// 1. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 2. Create HTTP server
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: transporthttp.NewRouter(serviceOpts.Services, log),
	}

	// 3. Start HTTP server in background
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 4. Graceful shutdown handling
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}
	return nil
}
