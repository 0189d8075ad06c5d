package llm

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindRateLimited    ErrorKind = "rate_limited"
	KindQuotaExhausted ErrorKind = "quota_exhausted"
	KindGeneric        ErrorKind = "generic"
)

// UpstreamError es un fallo del gateway de modelo con su status HTTP.
type UpstreamError struct {
	Kind   ErrorKind
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case KindRateLimited:
		return "Rate limit exceeded. Please try again in a moment."
	case KindQuotaExhausted:
		return "AI credits exhausted. Please add credits to continue."
	default:
		return fmt.Sprintf("AI Gateway error: %d", e.Status)
	}
}

// NewUpstreamError clasifica por status: 429 rate limit, 402 créditos agotados.
func NewUpstreamError(status int, body string) *UpstreamError {
	kind := KindGeneric
	switch status {
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	case http.StatusPaymentRequired:
		kind = KindQuotaExhausted
	}
	return &UpstreamError{Kind: kind, Status: status, Body: body}
}

// KindOf devuelve el kind de un error de upstream, o KindGeneric.
func KindOf(err error) ErrorKind {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return KindGeneric
}

// ErrEmptyCompletion: el modelo respondió sin choices/contenido.
var ErrEmptyCompletion = errors.New("no completion returned")
