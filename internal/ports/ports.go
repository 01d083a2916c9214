package ports

import (
	"context"
	"time"

	"NewsDigest/internal/domain"
)

// ArticleCache is the slice of the store the aggregation flow needs.
type ArticleCache interface {
	InsertIfAbsent(ctx context.Context, article domain.Article) (bool, error)
	Read(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
}

// ArticleStore persists articles and their engagement.
type ArticleStore interface {
	ArticleCache
	Get(ctx context.Context, id string) (domain.Article, error)
	UpdateSummary(ctx context.Context, id, summary string) (bool, error)
	IncrementCounter(ctx context.Context, id string, kind domain.InteractionKind) (bool, error)
	RecordInteraction(ctx context.Context, interaction domain.UserInteraction) error
	AggregateByTopic(ctx context.Context, window time.Duration, limit int) ([]domain.TopicAggregate, error)
	Statistics(ctx context.Context) (domain.Statistics, error)
}

// NewsSource pulls fresh articles from the upstream news search API.
type NewsSource interface {
	Fetch(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
}

// TextGenerator sends a prompt to a hosted language model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TextExtractor downloads a page and returns its readable text.
type TextExtractor interface {
	Extract(ctx context.Context, pageURL string) (string, error)
}
