package clerk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-translator/internal/ports/auth"

	clerksdk "github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
)

var ErrNotConfigured = errors.New("clerk secret key not configured")

// Verifier valida session tokens de Clerk (AUTH_PROVIDER=clerk).
// El user id es el subject del token.
type Verifier struct {
	configured bool
}

// NewVerifier fija la secret key global del SDK.
func NewVerifier(secretKey string) *Verifier {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey != "" {
		clerksdk.SetKey(secretKey)
	}
	return &Verifier{configured: secretKey != ""}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || !v.configured {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrUnauthorized
	}

	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{Token: token})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrUnauthorized, err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: token without subject", auth.ErrUnauthorized)
	}
	return auth.Claims{UserID: sub, Role: "authenticated"}, nil
}
