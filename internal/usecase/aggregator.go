package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

// Origin tells where an article list was served from.
type Origin string

const (
	OriginCache       Origin = "cache"
	OriginSource      Origin = "source"
	OriginStore       Origin = "store"
	OriginPlaceholder Origin = "placeholder"
)

// CachePolicy decides when stored rows are fresh enough to skip the news source.
type CachePolicy struct {
	FreshWindow time.Duration
	FreshRatio  float64
}

// DefaultCachePolicy requires half a page published within the last hour.
func DefaultCachePolicy() CachePolicy {
	return CachePolicy{FreshWindow: time.Hour, FreshRatio: 0.5}
}

// AggregatorDeps wires the store and the upstream source into the read path.
type AggregatorDeps struct {
	Store  ports.ArticleCache
	Source ports.NewsSource
	Policy CachePolicy
	Logger *slog.Logger
	Now    func() time.Time
}

// Aggregator serves filtered article reads cache-first and never fails.
type Aggregator struct {
	store  ports.ArticleCache
	source ports.NewsSource
	policy CachePolicy
	logger *slog.Logger
	now    func() time.Time
}

// NewAggregator constructs the read orchestrator.
func NewAggregator(deps AggregatorDeps) *Aggregator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	policy := deps.Policy
	if policy.FreshWindow <= 0 {
		policy = DefaultCachePolicy()
	}
	return &Aggregator{
		store:  deps.Store,
		source: deps.Source,
		policy: policy,
		logger: logger.With("component", "aggregator"),
		now:    now,
	}
}

// Articles returns at most filter.Limit articles. A fresh enough store page is
// served as is; otherwise the source is queried and its results written back.
// When the source fails the store is re-read, and placeholders are returned
// only if the store has nothing.
func (a *Aggregator) Articles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, Origin) {
	filter = filter.Normalized()

	stored := a.readStore(ctx, filter)
	if a.isFresh(stored, filter.Limit) {
		a.logger.Debug("serving from store", "count", len(stored))
		return stored, OriginCache
	}

	if a.source == nil {
		return a.fallback(ctx, filter)
	}
	fresh, err := a.source.Fetch(ctx, filter)
	if err != nil {
		a.logger.Warn("news source failed, falling back", "error", err)
		return a.fallback(ctx, filter)
	}

	a.writeBack(ctx, fresh)
	return mergeArticles(fresh, stored, filter.Limit), OriginSource
}

func (a *Aggregator) readStore(ctx context.Context, filter domain.ArticleFilter) []domain.Article {
	if a.store == nil {
		return nil
	}
	stored, err := a.store.Read(ctx, filter)
	if err != nil {
		a.logger.Warn("store read failed", "error", err)
		return nil
	}
	return stored
}

func (a *Aggregator) isFresh(stored []domain.Article, limit int) bool {
	if len(stored) == 0 || len(stored) < limit {
		return false
	}
	cutoff := a.now().Add(-a.policy.FreshWindow)
	recent := lo.CountBy(stored, func(article domain.Article) bool {
		return article.PublishedAt.After(cutoff)
	})
	return float64(recent) >= float64(limit)*a.policy.FreshRatio
}

func (a *Aggregator) writeBack(ctx context.Context, fresh []domain.Article) {
	if a.store == nil {
		return
	}
	inserted := 0
	for _, article := range fresh {
		ok, err := a.store.InsertIfAbsent(ctx, article)
		if err != nil {
			a.logger.Warn("store insert failed", "url", article.URL, "error", err)
			continue
		}
		if ok {
			inserted++
		}
	}
	a.logger.Info("stored fetched articles", "fetched", len(fresh), "inserted", inserted)
}

func (a *Aggregator) fallback(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, Origin) {
	if stored := a.readStore(ctx, filter); len(stored) > 0 {
		return stored, OriginStore
	}
	a.logger.Info("store empty, serving placeholders", "topic", filter.Topic)
	return Placeholders(filter, a.now()), OriginPlaceholder
}

// mergeArticles puts fresh results first and tops up with stored rows, unique by URL.
// A fresh article already in the store is replaced by its stored copy so the id
// and counters match what interaction endpoints see.
func mergeArticles(fresh, stored []domain.Article, limit int) []domain.Article {
	storedByURL := lo.KeyBy(stored, func(article domain.Article) string { return article.URL })
	seen := make(map[string]struct{}, len(fresh)+len(stored))
	merged := make([]domain.Article, 0, min(limit, len(fresh)+len(stored)))

	add := func(article domain.Article) {
		if _, dup := seen[article.URL]; dup {
			return
		}
		seen[article.URL] = struct{}{}
		merged = append(merged, article)
	}
	for _, article := range fresh {
		if existing, ok := storedByURL[article.URL]; ok {
			article = existing
		}
		add(article)
	}
	for _, article := range stored {
		add(article)
	}

	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}
