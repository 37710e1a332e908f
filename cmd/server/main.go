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

	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/logging"
	"github.com/light-bringer/catalog-service/internal/realtime"
	"github.com/light-bringer/catalog-service/internal/services"
	"github.com/light-bringer/catalog-service/internal/transport/rest"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("spanner_database", cfg.Spanner.Database).
		Msg("starting catalog service")

	ctx := context.Background()
	serviceOpts, err := services.NewServiceOptions(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	handler := rest.NewHandler(
		serviceOpts.CreateEntry,
		serviceOpts.UpdateEntry,
		serviceOpts.DeleteEntry,
		serviceOpts.GetEntry,
		serviceOpts.ListEntries,
	)
	wsHandler := realtime.NewHandler(serviceOpts.Hub, cfg.Server.AllowedOrigins)
	router := rest.NewRouter(handler, wsHandler, serviceOpts.Verifier, cfg.Server)

	// No server-wide write timeout: it would kill long-lived websocket
	// connections. The hub's ping/pong deadlines cover those, and the
	// per-request logger tracks slow handlers.
	httpServer := &http.Server{
		Addr:        cfg.Server.Addr(),
		Handler:     router,
		ReadTimeout: cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", httpServer.Addr).Msg("http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}

	serviceOpts.Hub.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
