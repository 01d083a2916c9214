package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"NewsDigest/internal/config"
	"NewsDigest/internal/httpapi"
	"NewsDigest/internal/infrastructure/fulltext"
	"NewsDigest/internal/infrastructure/llm"
	"NewsDigest/internal/infrastructure/newsapi"
	"NewsDigest/internal/infrastructure/storage"
	"NewsDigest/internal/logging"
	"NewsDigest/internal/ports"
	"NewsDigest/internal/usecase"
)

// Application wires configuration to adapters, use cases and the HTTP server.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	db      *storage.DB
	handler http.Handler
}

// Options carries build metadata into the application.
type Options struct {
	Version string
}

// OpenStore connects to the database and applies migrations when configured.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger, migrate bool) (*storage.DB, *storage.ArticleStore, error) {
	db, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if migrate {
		applied, err := db.Migrate(ctx)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		if len(applied) > 0 {
			logger.Info("applied migrations", "versions", applied)
		}
	}
	return db, storage.NewArticleStore(db), nil
}

// New builds a runnable application instance.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger, opts Options) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	db, store, err := OpenStore(ctx, cfg.Database, baseLogger.With("component", "storage"), cfg.Database.AutoMigrate)
	if err != nil {
		return nil, err
	}

	source := newsapi.NewClient(cfg.NewsAPI, baseLogger.With("component", "newsapi"))
	if cfg.NewsAPI.APIKey == "" {
		baseLogger.Warn("news api key not set, serving stored and placeholder articles only")
	}

	var generator ports.TextGenerator
	if cfg.LLM.APIKey != "" {
		generator = llm.NewChatGPTClient(cfg.LLM)
	} else {
		baseLogger.Warn("llm api key not set, summaries use the extractive fallback")
	}

	var extractor ports.TextExtractor
	if cfg.FullText.Enabled {
		extractor = fulltext.NewReadabilityExtractor(cfg.FullText)
	}

	aggregator := usecase.NewAggregator(usecase.AggregatorDeps{
		Store:  store,
		Source: source,
		Policy: usecase.CachePolicy{
			FreshWindow: cfg.Cache.FreshWindow,
			FreshRatio:  cfg.Cache.FreshRatio,
		},
		Logger: baseLogger,
	})

	summarizer := usecase.NewSummarizer(usecase.SummarizerDeps{
		Generator: generator,
		Logger:    baseLogger,
		MaxLength: cfg.LLM.MaxSummaryLength,
	})

	service := usecase.NewNewsService(usecase.ServiceDeps{
		Aggregator: aggregator,
		Store:      store,
		Summarizer: summarizer,
		Extractor:  extractor,
		Trending: usecase.TrendingPolicy{
			TopK:            cfg.Trending.TopK,
			SampleSize:      cfg.Trending.SampleSize,
			AggregateWindow: cfg.Trending.AggregateWindow,
			AggregateLimit:  cfg.Trending.AggregateLimit,
		},
		Logger: baseLogger,
	})

	handler := httpapi.NewRouter(service, httpapi.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Version:        opts.Version,
		Logger:         baseLogger,
	})

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		db:      db,
		handler: handler,
	}, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.handler
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownTimeout := a.cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("shutting down http server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases the database pool.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
