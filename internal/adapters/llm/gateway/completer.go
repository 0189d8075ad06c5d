package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-translator/internal/platform/httpclient"
	"pet-translator/internal/ports/llm"
)

const DefaultModel = "google/gemini-2.5-flash"

// Config del gateway OpenAI-compatible (LLM_GATEWAY_URL + LOVABLE_API_KEY).
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	Transport http.RoundTripper
}

// Completer implementa llm.Completer contra POST {BaseURL}/chat/completions.
type Completer struct {
	http   *httpclient.Client
	apiKey string
	model  string
}

func New(cfg Config) (*Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gateway: api key is required")
	}
	c := httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("gateway: base url is required")
	}
	c.BaseURL = base

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Completer{http: c, apiKey: strings.TrimSpace(cfg.APIKey), model: model}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Completer) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	body := chatRequest{
		Model:       c.model,
		Messages:    make([]chatMessage, 0, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	var out chatResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/chat/completions", map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, body, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			return "", llm.NewUpstreamError(he.StatusCode, he.Body)
		}
		return "", fmt.Errorf("gateway: %w", err)
	}

	if len(out.Choices) == 0 {
		return "", llm.ErrEmptyCompletion
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", llm.ErrEmptyCompletion
	}
	return text, nil
}
