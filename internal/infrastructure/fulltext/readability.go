package fulltext

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"NewsDigest/internal/config"
	"NewsDigest/internal/ports"
)

const userAgent = "NewsDigest/1.0 (+fulltext)"

// ReadabilityExtractor downloads an article page and keeps its main readable text.
type ReadabilityExtractor struct {
	httpClient *http.Client
	maxBytes   int64
}

var _ ports.TextExtractor = (*ReadabilityExtractor)(nil)

// NewReadabilityExtractor builds an extractor from configuration.
func NewReadabilityExtractor(cfg config.FullTextConfig) *ReadabilityExtractor {
	return &ReadabilityExtractor{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		maxBytes:   cfg.MaxBytes,
	}
}

// Extract returns the page's readable text content.
func (e *ReadabilityExtractor) Extract(ctx context.Context, pageURL string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid page url %q", pageURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch page: unexpected status %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if e.maxBytes > 0 {
		body = io.LimitReader(resp.Body, e.maxBytes)
	}

	article, err := readability.FromReader(body, parsed)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if text == "" {
		return "", fmt.Errorf("page %s has no readable text", pageURL)
	}
	return text, nil
}
