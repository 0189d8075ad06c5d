package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-translator/internal/ports/llm"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Completer implementa llm.Completer con el SDK de Google GenAI (LLM_PROVIDER=gemini).
type Completer struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, apiKey, model string) (*Completer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Completer{client: client, model: model}, nil
}

func (c *Completer) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	system, contents := splitMessages(req.Messages)

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		if status := apiErrorCode(err); status != 0 {
			return "", llm.NewUpstreamError(status, err.Error())
		}
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", llm.ErrEmptyCompletion
	}
	return text, nil
}

// splitMessages: los system van a SystemInstruction, el resto como contenido de usuario.
func splitMessages(msgs []llm.Message) (string, []*genai.Content) {
	var sys []string
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == llm.RoleSystem {
			sys = append(sys, m.Content)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}
	return strings.Join(sys, "\n"), contents
}

func apiErrorCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	return 0
}
