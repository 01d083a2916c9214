package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"NewsDigest/internal/domain"
)

// NewsService is the use-case surface the handlers call.
type NewsService interface {
	Articles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
	Trending(ctx context.Context) []domain.TrendingTopic
	Engagement(ctx context.Context) ([]domain.TrendingTopic, error)
	Stats(ctx context.Context) domain.Statistics
	Sources() []domain.NewsSource
	Track(ctx context.Context, articleID string, kind domain.InteractionKind, clientID string) error
	Summarize(ctx context.Context, title, content string) (string, error)
	SummarizeArticle(ctx context.Context, articleID string) (string, error)
}

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	Version        string
	Logger         *slog.Logger
	Now            func() time.Time
}

type handlers struct {
	svc     NewsService
	version string
	logger  *slog.Logger
	now     func() time.Time
}

// NewRouter mounts the news and summary endpoints.
func NewRouter(svc NewsService, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "http")
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := &handlers{svc: svc, version: opts.Version, logger: logger, now: now}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", h.root)
	r.Get("/health", h.health)

	r.Route("/api/news", func(r chi.Router) {
		r.Get("/articles", h.listArticles)
		r.Get("/trending", h.trending)
		r.Get("/trending/engagement", h.engagement)
		r.Get("/stats", h.stats)
		r.Get("/sources", h.sources)
		r.Post("/articles/{id}/summarize", h.summarizeArticle)
		r.Post("/articles/{id}/{kind}", h.track)
	})

	r.Route("/api/ai", func(r chi.Router) {
		r.Post("/summarize", h.summarize)
	})

	return r
}
