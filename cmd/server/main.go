package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disha-labs/disha/internal/ai"
	"github.com/disha-labs/disha/internal/catalog"
	"github.com/disha-labs/disha/internal/explain"
	"github.com/disha-labs/disha/internal/httpapi"
	"github.com/disha-labs/disha/internal/platform/cache"
	"github.com/disha-labs/disha/internal/platform/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.Catalog.StreamsPath, cfg.Catalog.QuestionsPath, cfg.Catalog.MatrixPath)
	if err != nil {
		slog.Error("failed to load catalogs", "error", err)
		os.Exit(1)
	}

	router := newAIRouter(cfg)
	if !router.HasProvider() {
		slog.Warn("no text generation provider configured, explanations will use the built-in fallback")
	}

	var explCache *cache.Cache
	if cfg.Cache.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		explCache, err = cache.New(ctx, cfg.Cache.URL)
		cancel()
		if err != nil {
			// The cache is an optimization; run without it.
			slog.Warn("explanation cache unavailable, continuing without it", "error", err)
			explCache = nil
		} else {
			defer explCache.Close()
		}
	}

	explainer := explain.New(explain.Config{
		Router:   router,
		Cache:    explCache,
		Timeout:  time.Duration(cfg.Explain.TimeoutSeconds) * time.Second,
		CacheTTL: time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
	})

	api := httpapi.New(cat, explainer, explCache)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newAIRouter registers the configured providers in fallback order:
// Gemini first, self-hosted Ollama as the backstop.
func newAIRouter(cfg *config.Config) *ai.Router {
	router := ai.NewRouter()
	if cfg.AI.Google.APIKey != "" {
		router.Register("google", ai.NewGoogleProvider(cfg.AI.Google.APIKey,
			ai.WithGoogleModel(cfg.AI.Google.Model)))
	}
	if cfg.AI.Ollama.Enabled {
		router.Register("ollama", ai.NewOllamaProvider(cfg.AI.Ollama.URL,
			ai.WithOllamaModel(cfg.AI.Ollama.Model)))
	}
	return router
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
