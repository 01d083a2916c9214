package httpapi

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"NewsDigest/internal/domain"
)

const maxBodyBytes = 1 << 20

var trackMessages = map[domain.InteractionKind]string{
	domain.InteractionView:  "View count incremented",
	domain.InteractionLike:  "Like count incremented",
	domain.InteractionShare: "Share recorded",
}

func (h *handlers) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "News Digest API",
		"version": h.version,
		"health":  "/health",
	})
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"version":   h.version,
	})
}

func parseFilter(r *http.Request) (domain.ArticleFilter, error) {
	q := r.URL.Query()
	filter := domain.DefaultFilter()

	var err error
	if filter.Region, err = domain.ParseRegion(q.Get("region")); err != nil {
		return filter, err
	}
	if filter.Topic, err = domain.ParseTopic(q.Get("topic")); err != nil {
		return filter, err
	}
	if filter.DateRange, err = domain.ParseDateRange(q.Get("date_range")); err != nil {
		return filter, err
	}
	filter.Source = q.Get("source")
	filter.SearchQuery = q.Get("search_query")

	if filter.Page, err = intParam(q.Get("page"), "page", 1); err != nil {
		return filter, err
	}
	if filter.Limit, err = intParam(q.Get("limit"), "limit", domain.DefaultPageSize); err != nil {
		return filter, err
	}
	return filter, filter.Validate()
}

func intParam(raw, field string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Reason: "must be an integer"}
	}
	return n, nil
}

func (h *handlers) listArticles(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	articles, err := h.svc.Articles(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(articles))
}

func (h *handlers) trending(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(h.svc.Trending(r.Context())))
}

func (h *handlers) engagement(w http.ResponseWriter, r *http.Request) {
	topics, err := h.svc.Engagement(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(topics))
}

func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	stats := h.svc.Stats(r.Context())
	stats.TrendingTopics = nonNil(stats.TrendingTopics)
	writeJSON(w, http.StatusOK, stats)
}

func (h *handlers) sources(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Sources())
}

func (h *handlers) track(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	kind, err := domain.ParseInteractionKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Not Found")
		return
	}

	if err := h.svc.Track(r.Context(), id, kind, clientIP(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":    trackMessages[kind],
		"article_id": id,
	})
}

func (h *handlers) summarizeArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	summary, err := h.svc.SummarizeArticle(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary, "article_id": id})
}

type summaryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *handlers) summarize(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeDetail(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	summary, err := h.svc.Summarize(r.Context(), req.Title, req.Content)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
