package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	promadapter "recall/adapters/prometheus"
	"recall/pkg/cachekey"
	"recall/pkg/recall"
)

const (
	envListenAddr    = "RECALL_DEMO_ADDR"
	envSweepInterval = "RECALL_DEMO_SWEEP_INTERVAL"

	defaultListenAddr      = ":9184"
	defaultSweepInterval   = 5 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	workloadTick           = 250 * time.Millisecond
)

type appConfig struct {
	listenAddr    string
	sweepInterval time.Duration
}

func loadConfig() (appConfig, error) {
	cfg := appConfig{
		listenAddr:    defaultListenAddr,
		sweepInterval: defaultSweepInterval,
	}

	if addr := os.Getenv(envListenAddr); addr != "" {
		cfg.listenAddr = addr
	}
	if raw := os.Getenv(envSweepInterval); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			return appConfig{}, fmt.Errorf("parse %s %q: expected a positive duration", envSweepInterval, raw)
		}
		cfg.sweepInterval = interval
	}

	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	registry := recall.NewRegistry()

	searchCache, err := recall.New[string](recall.Config{
		MaxEntries:    512,
		DefaultTTL:    time.Minute,
		Namespace:     "web-search",
		Strategy:      recall.StrategyLRU,
		SweepInterval: cfg.sweepInterval,
		Registry:      registry,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("new web-search cache: %w", err)
	}

	embedCache, err := recall.New[[]float32](recall.Config{
		MaxEntries:    256,
		DefaultTTL:    10 * time.Minute,
		Namespace:     "embeddings",
		Strategy:      recall.StrategySimple,
		SweepInterval: cfg.sweepInterval,
		Registry:      registry,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("new embeddings cache: %w", err)
	}

	metrics := promclient.NewRegistry()
	if err := metrics.Register(promadapter.NewCollector(registry)); err != nil {
		return fmt.Errorf("register cache collector: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: cfg.listenAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("metrics listener started", "addr", cfg.listenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	go runWorkload(ctx, logger, searchCache, embedCache)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		return fmt.Errorf("metrics listener: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("metrics listener shutdown", "error", err)
	}

	for namespace, cache := range registry.All() {
		logger.Info("destroying cache", "namespace", namespace, "entries", cache.Len())
		cache.Destroy()
	}

	return nil
}

// runWorkload memoizes synthetic lookups so the metrics endpoint has live
// hit/miss/eviction traffic to report.
func runWorkload(
	ctx context.Context,
	logger *slog.Logger,
	searchCache *recall.Cache[string],
	embedCache *recall.Cache[[]float32],
) {
	queries := []string{"weather kiruna", "go generics", "tundra flora", "mtproto", "slog handlers"}

	ticker := time.NewTicker(workloadTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		query := queries[rand.Intn(len(queries))]

		searchKey := cachekey.NamespacedKey("web-search", "q", query)
		if _, ok := searchCache.Get(searchKey); !ok {
			searchCache.Set(searchKey, simulateSearch(query))
		}

		embedKey := cachekey.NamespacedKey("embeddings", "text", query)
		if _, ok := embedCache.Get(embedKey); !ok {
			embedCache.Set(embedKey, simulateEmbedding(query))
		}

		if rand.Intn(50) == 0 {
			removed := searchCache.InvalidatePattern("web-search:*")
			logger.Info("invalidated search namespace", "removed", removed)
		}
	}
}

func simulateSearch(query string) string {
	return fmt.Sprintf("results for %q", query)
}

func simulateEmbedding(text string) []float32 {
	embedding := make([]float32, 16)
	for idx := range embedding {
		embedding[idx] = float32(len(text)%(idx+2)) / float32(idx+2)
	}

	return embedding
}
