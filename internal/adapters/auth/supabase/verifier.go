package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-translator/internal/ports/auth"
)

// Verifier implementa auth.AuthVerifier contra el endpoint de usuario de Supabase.
type Verifier struct {
	client *Client
}

func NewVerifier(client *Client) *Verifier {
	return &Verifier{client: client}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.client == nil {
		return auth.Claims{}, ErrNotConfigured
	}

	u, err := v.client.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return auth.Claims{}, fmt.Errorf("%w: invalid or expired token", auth.ErrUnauthorized)
		}
		return auth.Claims{}, fmt.Errorf("supabase verify failed: %w", err)
	}

	return auth.Claims{
		UserID: u.ID,
		Email:  strings.TrimSpace(u.Email),
		Role:   u.Role,
	}, nil
}
