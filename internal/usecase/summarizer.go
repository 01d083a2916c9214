package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"NewsDigest/internal/ports"
)

const (
	// DefaultMaxSummaryLength bounds every summary, ellipsis included.
	DefaultMaxSummaryLength = 300
	fallbackPlaceholder     = "This article discusses important developments in the news."
	ellipsis                = "..."
)

// SummarizerDeps wires the optional language model.
type SummarizerDeps struct {
	Generator ports.TextGenerator
	Logger    *slog.Logger
	MaxLength int
}

// Summarizer produces short summaries and always returns something usable.
type Summarizer struct {
	generator ports.TextGenerator
	logger    *slog.Logger
	maxLength int
}

// NewSummarizer constructs a summarizer. A nil generator means extractive only.
func NewSummarizer(deps SummarizerDeps) *Summarizer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxLength := deps.MaxLength
	if maxLength <= len(ellipsis) {
		maxLength = DefaultMaxSummaryLength
	}
	return &Summarizer{
		generator: deps.Generator,
		logger:    logger.With("component", "summarizer"),
		maxLength: maxLength,
	}
}

// Summarize asks the model for a 1-3 sentence summary and falls back to the
// leading sentences of content on any failure.
func (s *Summarizer) Summarize(ctx context.Context, title, content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return fallbackPlaceholder
	}

	if s.generator != nil {
		summary, err := s.generator.Generate(ctx, buildPrompt(title, content))
		summary = strings.TrimSpace(summary)
		switch {
		case err != nil:
			s.logger.Warn("summary generation failed, using fallback", "error", err)
		case summary == "":
			s.logger.Warn("empty summary from model, using fallback")
		default:
			return truncate(summary, s.maxLength)
		}
	}

	return truncate(FallbackSummary(content), s.maxLength)
}

// FallbackSummary keeps the first two ". "-separated sentences of content.
func FallbackSummary(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return fallbackPlaceholder
	}
	sentences := strings.Split(content, ". ")
	if len(sentences) < 2 {
		return content
	}
	return fmt.Sprintf("%s. %s.", sentences[0], strings.TrimSuffix(sentences[1], "."))
}

func truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength-len(ellipsis)])) + ellipsis
}

func buildPrompt(title, content string) string {
	return fmt.Sprintf(`Create a concise, informative summary that captures the key points of this news article in 1-3 sentences.
Focus on the most important facts and implications while keeping an engaging tone.

Title: %s
Content: %s

Reply with the summary only.`, strings.TrimSpace(title), content)
}
