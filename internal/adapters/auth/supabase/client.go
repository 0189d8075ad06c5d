package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-translator/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("supabase auth client not configured")
	ErrUnauthorized  = errors.New("supabase unauthorized")
	ErrUpstream      = errors.New("supabase auth upstream error")
)

// Config del cliente de Auth. URL y AnonKey vienen de SUPABASE_URL / SUPABASE_ANON_KEY.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration

	// Opcional (tests)
	Transport http.RoundTripper
}

type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		http:    httpclient.NewWithTransport(timeout, cfg.Transport),
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

// User es el subconjunto de /auth/v1/user que usamos.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// GetUser resuelve el usuario dueño del access token.
func (c *Client) GetUser(ctx context.Context, token string) (User, error) {
	if !c.IsConfigured() {
		return User{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return User{}, ErrUnauthorized
	}

	var out User
	err := c.http.DoJSON(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", map[string]string{
		"apikey":        c.apiKey,
		"Authorization": "Bearer " + token,
	}, nil, &out)
	if err != nil {
		switch httpclient.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return User{}, ErrUnauthorized
		case 0:
			return User{}, fmt.Errorf("%w: %v", ErrUpstream, err)
		default:
			return User{}, fmt.Errorf("%w: status=%d", ErrUpstream, httpclient.StatusOf(err))
		}
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return User{}, errors.New("supabase response missing user id")
	}
	return out, nil
}
