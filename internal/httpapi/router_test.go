package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/logging"
)

type stubService struct {
	gotFilter  domain.ArticleFilter
	trackErr   error
	tracked    []domain.InteractionKind
	trackedIP  string
	summaryErr error
}

func (s *stubService) Articles(_ context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	s.gotFilter = filter
	return []domain.Article{{ID: "a1", Title: "Headline", Topic: domain.TopicWorld, URL: "https://x.example/1"}}, nil
}

func (s *stubService) Trending(context.Context) []domain.TrendingTopic {
	return []domain.TrendingTopic{{Name: "World", Count: 3, TrendType: domain.TierHot, Emoji: "🌍"}}
}

func (s *stubService) Engagement(context.Context) ([]domain.TrendingTopic, error) {
	return nil, fmt.Errorf("%w: down", domain.ErrStore)
}

func (s *stubService) Stats(context.Context) domain.Statistics {
	return domain.Statistics{TotalArticles: 3, ArticlesByTopic: map[string]int{"World": 3}, ArticlesBySource: map[string]int{}}
}

func (s *stubService) Sources() []domain.NewsSource {
	return domain.KnownSources()
}

func (s *stubService) Track(_ context.Context, id string, kind domain.InteractionKind, clientID string) error {
	if s.trackErr != nil {
		return s.trackErr
	}
	if id == "missing" {
		return fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	s.tracked = append(s.tracked, kind)
	s.trackedIP = clientID
	return nil
}

func (s *stubService) Summarize(_ context.Context, title, _ string) (string, error) {
	return "Summary of " + title, nil
}

func (s *stubService) SummarizeArticle(_ context.Context, id string) (string, error) {
	if s.summaryErr != nil {
		return "", s.summaryErr
	}
	return "Stored summary " + id, nil
}

func newTestRouter(svc *stubService) http.Handler {
	return NewRouter(svc, Options{
		Version: "test",
		Logger:  logging.Discard(),
		Now:     func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC) },
	})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthAndRoot(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&stubService{})

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["status"] != "ok" || body["version"] != "test" || body["timestamp"] != "2025-03-10T12:00:00Z" {
		t.Fatalf("unexpected health body: %v", body)
	}

	if rec := do(t, h, http.MethodGet, "/", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for root, got %d", rec.Code)
	}
}

func TestListArticlesParsesFilter(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	h := newTestRouter(svc)

	rec := do(t, h, http.MethodGet, "/api/news/articles?region=asia&topic=technology&source=Reuters&date_range=Last+7+days&search_query=chips&page=2&limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	want := domain.ArticleFilter{
		Region:      domain.RegionAsia,
		Topic:       domain.TopicTechnology,
		Source:      "Reuters",
		DateRange:   domain.DateRangeLast7Days,
		SearchQuery: "chips",
		Page:        2,
		Limit:       5,
	}
	if svc.gotFilter != want {
		t.Fatalf("unexpected filter: %+v", svc.gotFilter)
	}

	articles := decode[[]map[string]any](t, rec)
	if len(articles) != 1 || articles[0]["id"] != "a1" || articles[0]["original_excerpt"] != "" {
		t.Fatalf("unexpected body: %v", articles)
	}
}

func TestListArticlesDefaultsAndRejects(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	h := newTestRouter(svc)

	if rec := do(t, h, http.MethodGet, "/api/news/articles", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotFilter != domain.DefaultFilter() {
		t.Fatalf("expected default filter, got %+v", svc.gotFilter)
	}

	for _, target := range []string{
		"/api/news/articles?limit=0",
		"/api/news/articles?limit=101",
		"/api/news/articles?page=0",
		"/api/news/articles?page=abc",
		"/api/news/articles?topic=Cooking",
		"/api/news/articles?region=Mars",
		"/api/news/articles?date_range=Yesterday",
	} {
		rec := do(t, h, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
		if decode[errorBody](t, rec).Detail == "" {
			t.Fatalf("%s: expected detail message", target)
		}
	}
}

func TestReadEndpoints(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&stubService{})

	trending := decode[[]domain.TrendingTopic](t, do(t, h, http.MethodGet, "/api/news/trending", ""))
	if len(trending) != 1 || trending[0].TrendType != domain.TierHot {
		t.Fatalf("unexpected trending: %+v", trending)
	}

	stats := do(t, h, http.MethodGet, "/api/news/stats", "")
	if !strings.Contains(stats.Body.String(), `"trending_topics":[]`) {
		t.Fatalf("expected empty trending array in stats, got %s", stats.Body.String())
	}

	sources := decode[[]domain.NewsSource](t, do(t, h, http.MethodGet, "/api/news/sources", ""))
	if len(sources) == 0 {
		t.Fatal("expected sources")
	}

	if rec := do(t, h, http.MethodGet, "/api/news/trending/engagement", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when the store is down, got %d", rec.Code)
	}
}

func TestTrackInteractions(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	h := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/news/articles/a1/view", nil)
	req.RemoteAddr = "203.0.113.9:5123"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["message"] != "View count incremented" || body["article_id"] != "a1" {
		t.Fatalf("unexpected body: %v", body)
	}
	if svc.trackedIP != "203.0.113.9" {
		t.Fatalf("expected client ip, got %q", svc.trackedIP)
	}

	if rec := do(t, h, http.MethodPost, "/api/news/articles/a1/like", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for like, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/news/articles/a1/share", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for share, got %d", rec.Code)
	}
	if len(svc.tracked) != 3 {
		t.Fatalf("expected 3 tracked interactions, got %v", svc.tracked)
	}

	if rec := do(t, h, http.MethodPost, "/api/news/articles/missing/view", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/news/articles/a1/bookmark", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown interaction, got %d", rec.Code)
	}

	svc.trackErr = fmt.Errorf("%w: connection refused", domain.ErrStore)
	rec = do(t, h, http.MethodPost, "/api/news/articles/a1/view", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("internal cause leaked: %s", rec.Body.String())
	}
}

func TestSummarizeEndpoints(t *testing.T) {
	t.Parallel()

	svc := &stubService{}
	h := newTestRouter(svc)

	rec := do(t, h, http.MethodPost, "/api/ai/summarize", `{"title":"Port","content":"The harbour reopened."}`)
	if rec.Code != http.StatusOK || decode[map[string]string](t, rec)["summary"] != "Summary of Port" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}

	for _, body := range []string{`{"title":"","content":"x"}`, `{"title":"x","content":"  "}`, `not json`} {
		if rec := do(t, h, http.MethodPost, "/api/ai/summarize", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
	}

	rec = do(t, h, http.MethodPost, "/api/news/articles/a1/summarize", "")
	if rec.Code != http.StatusOK || decode[map[string]string](t, rec)["summary"] != "Stored summary a1" {
		t.Fatalf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}

	svc.summaryErr = fmt.Errorf("article x: %w", domain.ErrNotFound)
	if rec := do(t, h, http.MethodPost, "/api/news/articles/x/summarize", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&stubService{})
	req := httptest.NewRequest(http.MethodOptions, "/api/news/articles", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS headers, got %v", rec.Header())
	}
}
