// ABOUTME: Entry point for the COD profit simulator backend service
// ABOUTME: Serves the simulation engine, budget planner, funnel analysis and run history over HTTP

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markalston/cod-profit-simulator/cache"
	"github.com/markalston/cod-profit-simulator/config"
	"github.com/markalston/cod-profit-simulator/handlers"
	"github.com/markalston/cod-profit-simulator/llm"
	"github.com/markalston/cod-profit-simulator/logger"
	"github.com/markalston/cod-profit-simulator/metrics"
	"github.com/markalston/cod-profit-simulator/services"
	"github.com/markalston/cod-profit-simulator/store"
)

// defaultHistoryLimit bounds the in-memory history store.
const defaultHistoryLimit = 500

func main() {
	// Initialize structured logging
	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	slog.Info("Starting COD Profit Simulator Backend")
	slog.Info("Markets loaded", "count", registry.Len(), "default", cfg.DefaultMarket, "file", cfg.MarketsFile)
	slog.Info("Cost policy", "include_return_fees", cfg.IncludeReturnFees)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	history, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer history.Close()

	m := metrics.New()

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	c.OnLookup = m.ObserveCacheLookup
	defer c.Close()
	slog.Info("Cache initialized", "ttl", cacheTTL)

	analyst, err := newFunnelAnalyst(ctx, cfg)
	if err != nil {
		return err
	}

	// Initialize handlers
	h := handlers.NewHandler(cfg, c,
		handlers.WithStore(history),
		handlers.WithMarkets(registry),
		handlers.WithMetrics(m),
		handlers.WithFunnelAnalyst(analyst),
	)

	if cfg.RateLimitEnabled {
		slog.Info("Rate limiting enabled",
			"default_per_min", cfg.RateLimitDefault,
			"write_per_min", cfg.RateLimitWrite,
			"model_per_min", cfg.RateLimitModel)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(h, cfg, m),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout_seconds", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("Server stopped")
	return nil
}

// openStore returns a Postgres store when DATABASE_URL is set, or an
// in-memory one otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.HistoryStore, error) {
	if !cfg.PostgresConfigured() {
		slog.Info("DATABASE_URL not set, keeping history in memory", "max_items", defaultHistoryLimit)
		return store.NewMemoryStore(defaultHistoryLimit), nil
	}

	pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	slog.Info("History store ready", "store", pg.Name())
	return pg, nil
}

// newFunnelAnalyst returns an analyst backed by Gemini when GEMINI_API_KEY is
// set, or one that serves fallback diagnoses otherwise.
func newFunnelAnalyst(ctx context.Context, cfg *config.Config) (*services.FunnelAnalyst, error) {
	timeout := time.Duration(cfg.AnalysisTimeout) * time.Second
	if !cfg.GeminiConfigured() {
		slog.Info("GEMINI_API_KEY not set, funnel diagnoses use fallbacks")
		return services.NewFunnelAnalyst(nil, timeout), nil
	}

	gemini, err := llm.NewGemini(ctx, llm.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
	if err != nil {
		return nil, err
	}
	slog.Info("Funnel analyst ready", "model", gemini.Model(), "timeout", timeout)
	return services.NewFunnelAnalyst(gemini, timeout), nil
}
