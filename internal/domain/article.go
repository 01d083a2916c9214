package domain

import "time"

// NewsSource carries the display metadata of the publisher an article came from.
type NewsSource struct {
	Name    string `json:"name"`
	Favicon string `json:"favicon"`
	Color   string `json:"color"`
}

// Article is the core entity served to the frontend and persisted in the store.
// URL is the external deduplication key; ID is assigned on creation.
type Article struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Source          NewsSource `json:"source"`
	OriginalExcerpt string     `json:"original_excerpt"`
	Summary         string     `json:"summary,omitempty"`
	PublishedAt     time.Time  `json:"published_at"`
	Topic           Topic      `json:"topic"`
	URL             string     `json:"url"`
	ImageURL        string     `json:"image_url,omitempty"`
	ViewCount       int        `json:"view_count"`
	LikeCount       int        `json:"like_count"`
	Region          Region     `json:"region,omitempty"`
}

// InteractionKind enumerates tracked user interactions.
type InteractionKind string

const (
	InteractionView  InteractionKind = "view"
	InteractionLike  InteractionKind = "like"
	InteractionShare InteractionKind = "share"
)

// ParseInteractionKind accepts the lowercase kind names.
func ParseInteractionKind(value string) (InteractionKind, error) {
	switch kind := InteractionKind(value); kind {
	case InteractionView, InteractionLike, InteractionShare:
		return kind, nil
	default:
		return "", &ValidationError{Field: "interaction_type", Reason: "must be one of view, like, share"}
	}
}

// Counted reports whether the interaction bumps an article counter.
func (k InteractionKind) Counted() bool {
	return k == InteractionView || k == InteractionLike
}

// UserInteraction is an append-only engagement event.
type UserInteraction struct {
	ID         string
	ArticleID  string
	Kind       InteractionKind
	ClientID   string
	OccurredAt time.Time
}

// Statistics summarises the stored article set.
type Statistics struct {
	TotalArticles    int             `json:"total_articles"`
	ArticlesByTopic  map[string]int  `json:"articles_by_topic"`
	ArticlesBySource map[string]int  `json:"articles_by_source"`
	TrendingTopics   []TrendingTopic `json:"trending_topics"`
}
