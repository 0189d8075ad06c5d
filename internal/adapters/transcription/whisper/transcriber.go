package whisper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-translator/internal/platform/httpclient"
)

// Config: endpoint OpenAI-compatible (TRANSCRIPTION_URL + OPENAI_API_KEY).
type Config struct {
	BaseURL  string
	APIKey   string
	Model    string
	Language string
	Timeout  time.Duration

	Transport http.RoundTripper
}

// Transcriber sube el audio a /audio/transcriptions y devuelve el text.
type Transcriber struct {
	http     *httpclient.Client
	apiKey   string
	model    string
	language string
}

func New(cfg Config) (*Transcriber, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("whisper: api key is required")
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("whisper: base url is required")
	}
	c := httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
	c.BaseURL = base

	t := &Transcriber{
		http:     c,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		model:    cfg.Model,
		language: cfg.Language,
	}
	if t.model == "" {
		t.model = "whisper-1"
	}
	if t.language == "" {
		t.language = "en"
	}
	return t, nil
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, fileName string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("whisper: empty audio")
	}
	if fileName == "" {
		fileName = "audio.webm"
	}

	var out struct {
		Text string `json:"text"`
	}
	err := t.http.DoMultipart(ctx, "/audio/transcriptions",
		map[string]string{"Authorization": "Bearer " + t.apiKey},
		map[string]string{"model": t.model, "language": t.language},
		httpclient.FilePart{Field: "file", FileName: fileName, ContentType: "audio/webm", Data: audio},
		&out,
	)
	if err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}
