package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/products-api/internal/config"
	"github.com/deppfellow/products-api/internal/handler"
	"github.com/deppfellow/products-api/internal/logger"
	"github.com/deppfellow/products-api/internal/model/product"
	"github.com/deppfellow/products-api/internal/router"
	"github.com/deppfellow/products-api/internal/server"
	"github.com/deppfellow/products-api/internal/service"
	"github.com/deppfellow/products-api/internal/validation"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// The configured logger may not exist yet, so failures go to stderr.
		bootstrap := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootstrap.Fatal().Err(err).Msg("products-api stopped")
	}
}

// run wires the application and serves until ctx is done.
func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to start New Relic, continuing without it")
	}

	registry, err := validation.NewRegistry(product.Rulesets(cfg.Validation.NameCheckDelay)...)
	if err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	filter := validation.NewFilter(registry, validation.NewEngine(cfg.Validation.MaxConcurrentRules))

	srv, err := server.New(cfg, &log, loggerService, filter)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	services, err := service.NewServices(srv)
	if err != nil {
		return fmt.Errorf("could not create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")

	return nil
}
