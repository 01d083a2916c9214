package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/infrastructure/parser"
	"NewsDigest/internal/ports"
)

const removedTitle = "[Removed]"

var errInvalidRecord = errors.New("invalid provider record")

// Client implements ports.NewsSource against a NewsAPI-compatible search service.
type Client struct {
	baseURL     string
	apiKey      string
	language    string
	maxPageSize int
	seedViews   config.IntRange
	seedLikes   config.IntRange
	httpClient  *http.Client
	logger      *slog.Logger
	now         func() time.Time
	intN        func(n int) int
}

var _ ports.NewsSource = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.NewsAPIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		language:    cfg.Language,
		maxPageSize: cfg.MaxPageSize,
		seedViews:   cfg.SeedViews,
		seedLikes:   cfg.SeedLikes,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
		now:         time.Now,
		intN:        rand.IntN,
	}
}

type searchResponse struct {
	Status       string       `json:"status"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []rawArticle `json:"articles"`
}

type rawArticle struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Author      *string `json:"author"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt *string `json:"publishedAt"`
	Content     *string `json:"content"`
}

// Fetch queries the provider once; any transport or status failure is ErrSourceUnavailable.
func (c *Client) Fetch(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: api key is not configured", domain.ErrSourceUnavailable)
	}

	endpoint := c.buildURL(filter.Normalized())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", domain.ErrSourceUnavailable, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("User-Agent", "NewsDigest/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %v", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	var payload searchResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			return nil, fmt.Errorf("%w: %s: %s (%s)", domain.ErrSourceUnavailable, resp.Status, payload.Message, payload.Code)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceUnavailable, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrSourceUnavailable, err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("%w: provider status %q: %s", domain.ErrSourceUnavailable, payload.Status, payload.Message)
	}

	articles := make([]domain.Article, 0, len(payload.Articles))
	for i, raw := range payload.Articles {
		article, err := c.normalize(raw, filter)
		if err != nil {
			if errors.Is(err, errInvalidRecord) {
				c.logger.Warn("skip malformed record", "index", i, "error", err)
			}
			continue
		}
		articles = append(articles, article)
	}

	c.logger.Debug("fetched articles", "endpoint", req.URL.Path, "received", len(payload.Articles), "kept", len(articles))
	return articles, nil
}

func (c *Client) buildURL(filter domain.ArticleFilter) string {
	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(min(filter.Limit, c.maxPageSize)))
	params.Set("page", strconv.Itoa(max(filter.Page, 1)))

	var path string
	if filter.Region != domain.RegionGlobal {
		path = "/top-headlines"
		params.Set("country", CountryFor(filter.Region))
		if filter.Topic != "" {
			params.Set("category", CategoryFor(filter.Topic))
		}
		if filter.SearchQuery != "" {
			params.Set("q", filter.SearchQuery)
		}
	} else {
		path = "/everything"
		params.Set("q", everythingQuery(filter))
		params.Set("from", filter.DateRange.Since(c.now()).UTC().Format(time.RFC3339))
		params.Set("sortBy", "publishedAt")
		if c.language != "" {
			params.Set("language", c.language)
		}
	}

	return c.baseURL + path + "?" + params.Encode()
}

// The everything endpoint rejects queries without search text.
func everythingQuery(filter domain.ArticleFilter) string {
	switch {
	case filter.SearchQuery != "":
		return filter.SearchQuery
	case filter.Topic != "":
		return strings.ToLower(string(filter.Topic))
	default:
		return "news"
	}
}

// A discarded record returns an error; only errInvalidRecord is worth a warning.
func (c *Client) normalize(raw rawArticle, filter domain.ArticleFilter) (domain.Article, error) {
	title := strings.TrimSpace(deref(raw.Title))
	if title == "" || title == removedTitle {
		return domain.Article{}, errors.New("removed or untitled record")
	}

	link := strings.TrimSpace(deref(raw.URL))
	parsed, err := url.Parse(link)
	if link == "" || err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return domain.Article{}, fmt.Errorf("%w: bad url %q", errInvalidRecord, link)
	}

	publishedAt, err := dateparse.ParseAny(strings.TrimSpace(deref(raw.PublishedAt)))
	if err != nil {
		return domain.Article{}, fmt.Errorf("%w: bad publishedAt for %s: %v", errInvalidRecord, link, err)
	}

	sourceName := strings.TrimSpace(raw.Source.Name)
	if sourceName == "" {
		sourceName = "Unknown"
	}

	topic := filter.Topic
	if topic == "" {
		topic = InferTopic(sourceName, title)
	}

	excerpt := parser.PlainText(deref(raw.Description))
	image := strings.TrimSpace(deref(raw.URLToImage))
	if image == "" {
		image = parser.FirstImage(deref(raw.Description))
	}

	region := filter.Region
	if region == "" {
		region = domain.RegionGlobal
	}

	return domain.Article{
		ID:              uuid.NewString(),
		Title:           title,
		Source:          domain.SourceFor(sourceName),
		OriginalExcerpt: excerpt,
		PublishedAt:     publishedAt.UTC(),
		Topic:           topic,
		URL:             link,
		ImageURL:        image,
		ViewCount:       c.draw(c.seedViews),
		LikeCount:       c.draw(c.seedLikes),
		Region:          region,
	}, nil
}

func (c *Client) draw(r config.IntRange) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + c.intN(r.Max-r.Min+1)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
