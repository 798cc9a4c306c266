package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
	"github.com/UnicoContato/alpha7-IA-view/internal/classify"
	"github.com/UnicoContato/alpha7-IA-view/internal/config"
	"github.com/UnicoContato/alpha7-IA-view/internal/handlers"
	"github.com/UnicoContato/alpha7-IA-view/internal/httpapi"
	"github.com/UnicoContato/alpha7-IA-view/internal/lexicon"
	"github.com/UnicoContato/alpha7-IA-view/internal/rerank"
	"github.com/UnicoContato/alpha7-IA-view/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := catalog.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		log.Fatalf("failed to reach database: %v", err)
	}
	cancel()
	logger.Info("database connected")

	store := catalog.NewStore(db, logger)
	lex := lexicon.Default()
	resolver := classify.NewResolver(store, classify.DefaultConfig(), logger)

	var reranker rerank.Reranker
	if cfg.RerankerEnabled() {
		reranker = rerank.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITimeout)
		logger.Info("semantic reranker enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("semantic reranker disabled, keeping SQL relevance order")
	}

	engine := search.NewEngine(store, lex, resolver, reranker, logger)
	router := httpapi.NewRouter(httpapi.Deps{
		Search: handlers.NewSearchHandler(engine, cfg.DefaultStoreID, cfg.TenantID, logger),
		Logger: logger,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "store_id", cfg.DefaultStoreID, "tenant", cfg.TenantID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
