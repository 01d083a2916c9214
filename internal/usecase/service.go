package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

// TrendingPolicy sizes the trending computations.
type TrendingPolicy struct {
	TopK            int
	SampleSize      int
	AggregateWindow time.Duration
	AggregateLimit  int
}

// DefaultTrendingPolicy ranks the top five topics over a 100 article sample.
func DefaultTrendingPolicy() TrendingPolicy {
	return TrendingPolicy{
		TopK:            DefaultTopK,
		SampleSize:      domain.MaxPageSize,
		AggregateWindow: 7 * 24 * time.Hour,
		AggregateLimit:  10,
	}
}

// ServiceDeps wires the news use cases.
type ServiceDeps struct {
	Aggregator *Aggregator
	Store      ports.ArticleStore
	Summarizer *Summarizer
	Extractor  ports.TextExtractor
	Trending   TrendingPolicy
	Logger     *slog.Logger
}

// NewsService exposes the operations behind the HTTP API.
type NewsService struct {
	aggregator *Aggregator
	store      ports.ArticleStore
	summarizer *Summarizer
	extractor  ports.TextExtractor
	trending   TrendingPolicy
	logger     *slog.Logger
}

// NewNewsService constructs the service.
func NewNewsService(deps ServiceDeps) *NewsService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	trending := deps.Trending
	if trending.TopK <= 0 || trending.SampleSize <= 0 {
		trending = DefaultTrendingPolicy()
	}
	summarizer := deps.Summarizer
	if summarizer == nil {
		summarizer = NewSummarizer(SummarizerDeps{Logger: logger})
	}
	return &NewsService{
		aggregator: deps.Aggregator,
		store:      deps.Store,
		summarizer: summarizer,
		extractor:  deps.Extractor,
		trending:   trending,
		logger:     logger.With("component", "news_service"),
	}
}

// Articles validates the filter and serves it through the aggregator.
func (s *NewsService) Articles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	articles, origin := s.aggregator.Articles(ctx, filter)
	s.logger.Debug("articles served", "origin", origin, "count", len(articles))
	return articles, nil
}

func (s *NewsService) sample(ctx context.Context) []domain.Article {
	filter := domain.DefaultFilter()
	filter.Limit = min(s.trending.SampleSize, domain.MaxPageSize)
	articles, _ := s.aggregator.Articles(ctx, filter)
	return articles
}

// Trending ranks topics by frequency over a recent article sample.
func (s *NewsService) Trending(ctx context.Context) []domain.TrendingTopic {
	return RankTopics(s.sample(ctx), s.trending.TopK)
}

// Engagement ranks topics by the store's composite engagement score.
func (s *NewsService) Engagement(ctx context.Context) ([]domain.TrendingTopic, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: no article store configured", domain.ErrStore)
	}
	aggregates, err := s.store.AggregateByTopic(ctx, s.trending.AggregateWindow, s.trending.AggregateLimit)
	if err != nil {
		return nil, err
	}
	return RankAggregates(aggregates), nil
}

// Stats reports store-wide counts plus trending topics. When the store cannot
// answer, both are computed from the article sample instead.
func (s *NewsService) Stats(ctx context.Context) domain.Statistics {
	sample := s.sample(ctx)
	trending := RankTopics(sample, s.trending.TopK)

	if s.store != nil {
		stats, err := s.store.Statistics(ctx)
		if err == nil {
			stats.TrendingTopics = trending
			return stats
		}
		s.logger.Warn("store statistics failed, using article sample", "error", err)
	}

	stats := domain.Statistics{
		TotalArticles:    len(sample),
		ArticlesByTopic:  map[string]int{},
		ArticlesBySource: map[string]int{},
		TrendingTopics:   trending,
	}
	for _, article := range sample {
		stats.ArticlesByTopic[string(article.Topic)]++
		stats.ArticlesBySource[article.Source.Name]++
	}
	return stats
}

// Sources lists the known publishers.
func (s *NewsService) Sources() []domain.NewsSource {
	return domain.KnownSources()
}

// Track records an interaction and bumps the matching counter.
func (s *NewsService) Track(ctx context.Context, articleID string, kind domain.InteractionKind, clientID string) error {
	if strings.TrimSpace(articleID) == "" {
		return &domain.ValidationError{Field: "article_id", Reason: "must not be empty"}
	}
	if s.store == nil {
		return fmt.Errorf("%w: no article store configured", domain.ErrStore)
	}
	return s.store.RecordInteraction(ctx, domain.UserInteraction{
		ArticleID: articleID,
		Kind:      kind,
		ClientID:  clientID,
	})
}

// Summarize summarizes arbitrary text.
func (s *NewsService) Summarize(ctx context.Context, title, content string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(content) == "" {
		return "", &domain.ValidationError{Field: "content", Reason: "must not be empty"}
	}
	return s.summarizer.Summarize(ctx, title, content), nil
}

// SummarizeArticle summarizes a stored article and persists the result.
func (s *NewsService) SummarizeArticle(ctx context.Context, articleID string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("%w: no article store configured", domain.ErrStore)
	}
	article, err := s.store.Get(ctx, articleID)
	if err != nil {
		return "", err
	}

	content := article.OriginalExcerpt
	if s.extractor != nil {
		text, err := s.extractor.Extract(ctx, article.URL)
		if err != nil {
			s.logger.Warn("full text extraction failed, using excerpt", "url", article.URL, "error", err)
		} else {
			content = text
		}
	}

	summary := s.summarizer.Summarize(ctx, article.Title, content)
	updated, err := s.store.UpdateSummary(ctx, article.ID, summary)
	if err != nil {
		return "", err
	}
	if !updated {
		return "", fmt.Errorf("article %s: %w", article.ID, domain.ErrNotFound)
	}
	return summary, nil
}
