package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
)

func testClient(baseURL string) *Client {
	cfg := config.Default().NewsAPI
	cfg.BaseURL = baseURL
	cfg.APIKey = "test-key"
	c := NewClient(cfg, nil)
	c.now = func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) }
	c.intN = func(n int) int { return n - 1 }
	return c
}

func TestBuildURLEverything(t *testing.T) {
	t.Parallel()

	c := testClient("https://newsapi.example.org/v2")
	filter := domain.DefaultFilter()
	filter.Topic = domain.TopicScience
	filter.DateRange = domain.DateRangeLast7Days
	filter.Limit = 150

	parsed, err := url.Parse(c.buildURL(filter))
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if parsed.Path != "/v2/everything" {
		t.Fatalf("unexpected path: %s", parsed.Path)
	}

	q := parsed.Query()
	if q.Get("q") != "science" {
		t.Fatalf("expected topic as query, got %q", q.Get("q"))
	}
	if q.Get("from") != "2025-03-03T12:00:00Z" {
		t.Fatalf("unexpected from: %s", q.Get("from"))
	}
	if q.Get("pageSize") != "100" {
		t.Fatalf("expected pageSize capped at 100, got %s", q.Get("pageSize"))
	}
	if q.Get("sortBy") != "publishedAt" || q.Get("language") != "en" {
		t.Fatalf("unexpected sort/language: %v", q)
	}
	if q.Has("country") || q.Has("category") {
		t.Fatalf("everything endpoint must not carry country/category: %v", q)
	}
}

func TestBuildURLTopHeadlines(t *testing.T) {
	t.Parallel()

	c := testClient("https://newsapi.example.org/v2")
	filter := domain.DefaultFilter()
	filter.Region = domain.RegionAsia
	filter.Topic = domain.TopicPolitics
	filter.SearchQuery = "budget"

	parsed, _ := url.Parse(c.buildURL(filter))
	if parsed.Path != "/v2/top-headlines" {
		t.Fatalf("unexpected path: %s", parsed.Path)
	}
	q := parsed.Query()
	if q.Get("country") != "jp" || q.Get("category") != "general" || q.Get("q") != "budget" {
		t.Fatalf("unexpected params: %v", q)
	}
}

func TestCountryAndCategoryDefaults(t *testing.T) {
	t.Parallel()

	if CountryFor(domain.RegionEU) != "gb" || CountryFor(domain.Region("Mars")) != "us" {
		t.Fatal("unexpected country mapping")
	}
	if CategoryFor(domain.TopicSports) != "sports" || CategoryFor(domain.Topic("")) != "general" {
		t.Fatal("unexpected category mapping")
	}
}

func TestInferTopic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source, title string
		want          domain.Topic
	}{
		{"TechCrunch", "Startup raises money", domain.TopicTechnology},
		{"Reuters", "New AI model released", domain.TopicTechnology},
		{"ESPN", "Finals tonight", domain.TopicSports},
		{"Variety", "Box office weekend", domain.TopicEntertainment},
		{"Bloomberg", "Rates hold steady", domain.TopicBusiness},
		{"Reuters", "Study links sleep and memory", domain.TopicScience},
		{"AP", "Election results certified", domain.TopicPolitics},
		{"AP", "Officials said the storm passed", domain.TopicWorld},
	}
	for _, tt := range tests {
		if got := InferTopic(tt.source, tt.title); got != tt.want {
			t.Fatalf("InferTopic(%q, %q) = %s, want %s", tt.source, tt.title, got, tt.want)
		}
	}
}

const searchFixture = `{
  "status": "ok",
  "totalResults": 5,
  "articles": [
    {"source": {"id": "espn", "name": "ESPN"}, "title": "Cup final tonight", "description": "<p>Teams <b>ready</b></p>",
     "url": "https://espn.example.org/a", "urlToImage": "https://img.example.org/a.jpg", "publishedAt": "2025-03-10T09:00:00Z"},
    {"source": {"id": null, "name": "Wire"}, "title": "[Removed]", "url": "https://wire.example.org/removed", "publishedAt": "2025-03-10T09:00:00Z"},
    {"source": {"id": null, "name": "Wire"}, "title": "No link", "url": "not a url", "publishedAt": "2025-03-10T09:00:00Z"},
    {"source": {"id": null, "name": "Wire"}, "title": "Bad date", "url": "https://wire.example.org/bad", "publishedAt": "yesterday-ish"},
    {"source": {"id": null, "name": ""}, "title": "Quiet day", "description": null, "url": "https://wire.example.org/quiet", "publishedAt": "2025-03-10 08:30:00"}
  ]
}`

func TestFetchNormalizesAndSkipsMalformed(t *testing.T) {
	t.Parallel()

	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	c := testClient(server.URL)
	articles, err := c.Fetch(context.Background(), domain.DefaultFilter())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotKey != "test-key" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Topic != domain.TopicSports {
		t.Fatalf("expected inferred sports topic, got %s", first.Topic)
	}
	if first.OriginalExcerpt != "Teams ready" {
		t.Fatalf("expected stripped excerpt, got %q", first.OriginalExcerpt)
	}
	if first.Source.Favicon != "⚽" {
		t.Fatalf("expected ESPN favicon, got %q", first.Source.Favicon)
	}
	if first.ViewCount != 500 || first.LikeCount != 50 {
		t.Fatalf("expected seeded counts at range max, got %d/%d", first.ViewCount, first.LikeCount)
	}
	if first.ID == "" || first.ID == articles[1].ID {
		t.Fatalf("expected distinct ids, got %q and %q", first.ID, articles[1].ID)
	}

	second := articles[1]
	if second.Source.Name != "Unknown" {
		t.Fatalf("expected Unknown source, got %q", second.Source.Name)
	}
	if second.Region != domain.RegionGlobal {
		t.Fatalf("expected Global region, got %q", second.Region)
	}
}

func TestFetchTopicFilterWins(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	filter := domain.DefaultFilter()
	filter.Topic = domain.TopicBusiness

	articles, err := testClient(server.URL).Fetch(context.Background(), filter)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	for _, a := range articles {
		if a.Topic != domain.TopicBusiness {
			t.Fatalf("expected filter topic to win, got %s", a.Topic)
		}
	}
}

func TestFetchFailuresAreSourceUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/everything":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`))
		default:
			_, _ = w.Write([]byte(`{"status":"error","code":"parametersMissing","message":"missing"}`))
		}
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.Fetch(context.Background(), domain.DefaultFilter())
	if !errors.Is(err, domain.ErrSourceUnavailable) || !strings.Contains(err.Error(), "apiKeyInvalid") {
		t.Fatalf("expected source unavailable with provider code, got %v", err)
	}

	filter := domain.DefaultFilter()
	filter.Region = domain.RegionUS
	if _, err := c.Fetch(context.Background(), filter); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected source unavailable for error status payload, got %v", err)
	}

	noKey := NewClient(config.Default().NewsAPI, nil)
	if _, err := noKey.Fetch(context.Background(), domain.DefaultFilter()); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected source unavailable without api key, got %v", err)
	}

	server.Close()
	if _, err := c.Fetch(context.Background(), domain.DefaultFilter()); !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected source unavailable on transport failure, got %v", err)
	}
}
