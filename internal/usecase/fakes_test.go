package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

var errBoom = errors.New("boom")

type memoryStore struct {
	mu           sync.Mutex
	articles     []domain.Article
	interactions []domain.UserInteraction
	readErr      error
	statsErr     error
	reads        int
}

var _ ports.ArticleStore = (*memoryStore)(nil)

func (m *memoryStore) InsertIfAbsent(_ context.Context, article domain.Article) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.articles {
		if existing.URL == article.URL {
			return false, nil
		}
	}
	m.articles = append(m.articles, article)
	return true, nil
}

func (m *memoryStore) Read(_ context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.readErr != nil {
		return nil, m.readErr
	}
	filter = filter.Normalized()
	since := filter.DateRange.Since(testNow)

	var out []domain.Article
	for _, a := range m.articles {
		if a.PublishedAt.Before(since) {
			continue
		}
		if filter.Topic != "" && a.Topic != filter.Topic {
			continue
		}
		if filter.SearchQuery != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(filter.SearchQuery)) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })

	start := min(filter.Offset(), len(out))
	end := min(start+filter.Limit, len(out))
	return out[start:end], nil
}

func (m *memoryStore) find(id string) int {
	for i, a := range m.articles {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (m *memoryStore) Get(_ context.Context, id string) (domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.find(id); i >= 0 {
		return m.articles[i], nil
	}
	return domain.Article{}, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
}

func (m *memoryStore) UpdateSummary(_ context.Context, id, summary string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return false, nil
	}
	m.articles[i].Summary = summary
	return true, nil
}

func (m *memoryStore) IncrementCounter(_ context.Context, id string, kind domain.InteractionKind) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(id)
	if i < 0 {
		return false, nil
	}
	switch kind {
	case domain.InteractionView:
		m.articles[i].ViewCount++
	case domain.InteractionLike:
		m.articles[i].LikeCount++
	}
	return true, nil
}

func (m *memoryStore) RecordInteraction(ctx context.Context, interaction domain.UserInteraction) error {
	ok, err := m.IncrementCounter(ctx, interaction.ArticleID, interaction.Kind)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("article %s: %w", interaction.ArticleID, domain.ErrNotFound)
	}
	m.mu.Lock()
	m.interactions = append(m.interactions, interaction)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) AggregateByTopic(context.Context, time.Duration, int) ([]domain.TopicAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byTopic := map[string]*domain.TopicAggregate{}
	var order []string
	for _, a := range m.articles {
		agg, ok := byTopic[string(a.Topic)]
		if !ok {
			agg = &domain.TopicAggregate{Topic: string(a.Topic)}
			byTopic[agg.Topic] = agg
			order = append(order, agg.Topic)
		}
		agg.Count++
		agg.TotalViews += a.ViewCount
		agg.TotalLikes += a.LikeCount
	}
	out := make([]domain.TopicAggregate, 0, len(order))
	for _, name := range order {
		out = append(out, *byTopic[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score() > out[j].Score() })
	return out, nil
}

func (m *memoryStore) Statistics(context.Context) (domain.Statistics, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statsErr != nil {
		return domain.Statistics{}, m.statsErr
	}
	stats := domain.Statistics{
		TotalArticles:    len(m.articles),
		ArticlesByTopic:  map[string]int{},
		ArticlesBySource: map[string]int{},
	}
	for _, a := range m.articles {
		stats.ArticlesByTopic[string(a.Topic)]++
		stats.ArticlesBySource[a.Source.Name]++
	}
	return stats, nil
}

type stubSource struct {
	articles []domain.Article
	err      error
	calls    int
}

func (s *stubSource) Fetch(context.Context, domain.ArticleFilter) ([]domain.Article, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

type stubExtractor struct {
	text string
	err  error
}

func (e stubExtractor) Extract(context.Context, string) (string, error) {
	return e.text, e.err
}

func newsArticle(n int, topic domain.Topic, age time.Duration) domain.Article {
	return domain.Article{
		ID:              fmt.Sprintf("id-%d", n),
		Title:           fmt.Sprintf("Headline %d", n),
		Source:          domain.SourceFor("Reuters"),
		OriginalExcerpt: fmt.Sprintf("First sentence %d. Second sentence. Third sentence.", n),
		PublishedAt:     testNow.Add(-age),
		Topic:           topic,
		URL:             fmt.Sprintf("https://news.example.org/%d", n),
		ViewCount:       n * 10,
		LikeCount:       n,
		Region:          domain.RegionGlobal,
	}
}

func newTestAggregator(store ports.ArticleCache, source ports.NewsSource) *Aggregator {
	return NewAggregator(AggregatorDeps{
		Store:  store,
		Source: source,
		Now:    func() time.Time { return testNow },
	})
}
