package auth

import (
	"context"
	"errors"
)

// ErrUnauthorized: token ausente, inválido o expirado.
var ErrUnauthorized = errors.New("unauthorized")

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
