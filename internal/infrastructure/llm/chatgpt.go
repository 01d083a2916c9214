package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"NewsDigest/internal/config"
	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

// ChatGPTClient implements ports.TextGenerator backed by OpenAI-compatible APIs.
type ChatGPTClient struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	maxTokens    int
	temperature  float64
	httpClient   *http.Client
}

var _ ports.TextGenerator = (*ChatGPTClient)(nil)

// NewChatGPTClient builds a client from configuration.
func NewChatGPTClient(cfg config.LLMConfig) *ChatGPTClient {
	return &ChatGPTClient{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		maxTokens:    cfg.MaxTokens,
		temperature:  cfg.Temperature,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate sends the prompt as a user message and returns the first completion.
// Every failure wraps domain.ErrGenerationFailure.
func (c *ChatGPTClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: chatgpt client is nil", domain.ErrGenerationFailure)
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("%w: chatgpt client misconfigured", domain.ErrGenerationFailure)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: safePrompt(c.systemPrompt)},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal chatgpt payload: %v", domain.ErrGenerationFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: new request: %v", domain.ErrGenerationFailure, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: send prompt: %v", domain.ErrGenerationFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: chatgpt error %s: %s", domain.ErrGenerationFailure, resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrGenerationFailure, err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%w: empty chatgpt response", domain.ErrGenerationFailure)
	}

	text := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: blank completion", domain.ErrGenerationFailure)
	}
	return text, nil
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You are a professional news summarizer."
	}
	return prompt
}
