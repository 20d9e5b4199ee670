package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TripKeeper/internal/bootstrap"
	"TripKeeper/internal/config"
	"TripKeeper/internal/handlers"
	"TripKeeper/internal/middleware"
	"TripKeeper/internal/seed"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.NewConfig()

	// создаём регистратор zap
	logger, err := bootstrap.NewLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Debugw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s, closeStore, err := bootstrap.OpenStore(ctx, cfg, sugar, reg)
	if err != nil {
		sugar.Fatalw("failed to open trip store", "error", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			sugar.Errorw("failed to close trip store", "error", err)
		}
	}()

	seeder := seed.NewSeeder(s, sugar)
	if cfg.SeedOnStart {
		if _, err := seeder.SeedIfNeeded(); err != nil {
			sugar.Errorw("seeding failed", "error", err)
		}
	}

	h := handlers.NewHandler(s, seeder, sugar, cfg, reg)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"DatabaseDSN", cfg.DatabaseDSN,
		"MediaBackend", cfg.MediaBackend,
		"MediaDir", cfg.MediaDir,
		"Debug", cfg.Debug,
	)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
		// потоки SSE завершаются вместе с ctx
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("Starting server", "addr", cfg.BaseURL)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		sugar.Infow("Shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			sugar.Errorw("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}
	if !s.PersistenceHealthy() {
		if err := s.Resync(shutdownCtx); err != nil {
			sugar.Errorw("final resync failed", "error", err)
		}
	}
}
