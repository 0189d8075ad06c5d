package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pet-translator/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey  ctxKey = "claims"
	authErrKey ctxKey = "auth_error"
)

// AuthContext:
// - Si verifier != nil y viene Bearer token => intenta Verify() y setea claims.
// - Si verifier == nil => modo dev: header X-Debug-User-ID (y opcional X-Debug-User-Email).
// - Si no hay claims, el request sigue igual; los handlers deciden si exigen auth.
// El motivo del rechazo queda en el contexto (AuthError) para el detalle del 401.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID"))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				claims := auth.Claims{
					UserID: uid,
					Email:  strings.TrimSpace(r.Header.Get("X-Debug-User-Email")),
					Role:   "authenticated",
				}
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
				return
			}

			token := BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authErrKey, errMissingToken)))
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil || strings.TrimSpace(claims.UserID) == "" {
				if err == nil {
					err = auth.ErrUnauthorized
				}
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authErrKey, err)))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

var errMissingToken = errors.New("missing bearer token")

// WithClaims se usa en tests para simular un usuario autenticado.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// AuthError devuelve por qué no hay claims (nil si el request no pasó por verifier).
func AuthError(ctx context.Context) error {
	err, _ := ctx.Value(authErrKey).(error)
	return err
}

// BearerToken extrae el token de "Authorization: Bearer <token>".
func BearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
