package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Groodev/komik-api/internal/cache"
	"github.com/Groodev/komik-api/internal/config"
	"github.com/Groodev/komik-api/internal/fetcher"
	apihttp "github.com/Groodev/komik-api/internal/http"
	"github.com/Groodev/komik-api/internal/http/handlers"
	"github.com/Groodev/komik-api/internal/komiku"
	"github.com/Groodev/komik-api/internal/maintenance"
	"github.com/Groodev/komik-api/internal/ratelimit"
	"github.com/Groodev/komik-api/internal/scrape"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	strategies, strategyErr := scrape.LoadFromDir(cfg.StrategiesPath)
	if strategyErr != nil {
		slog.Warn("extraction strategies loaded with warnings", "error", strategyErr)
	}
	if len(strategies) > 0 {
		slog.Info("extraction strategies loaded", "count", len(strategies))
	}

	client := fetcher.New(fetcher.Options{Timeout: cfg.FetchTimeout})
	store := cache.NewMemory()
	limiter := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)

	api := handlers.New(handlers.Options{
		Client:          client,
		Catalog:         komiku.Catalog{Base: cfg.UpstreamBaseURL},
		Cache:           store,
		Logger:          logger,
		Retries:         cfg.FetchRetries,
		ExtraStrategies: strategies,
	})

	app := apihttp.NewServer(cfg, api, store, limiter)

	maintenanceCtx, maintenanceCancel := context.WithCancel(context.Background())
	runner := maintenance.NewRunner(store, limiter, maintenance.RunnerConfig{}, slog.Default())
	runner.Start(maintenanceCtx)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	slog.Info("api started", "port", cfg.Port, "env", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down server")
	maintenanceCancel()
	runner.StopWait(2 * time.Second)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
