package llm

import "context"

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role
	Content string
}

// CompletionRequest son los parámetros de sampling que usa la traducción.
type CompletionRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Completer devuelve el texto generado para una lista de mensajes.
// Errores de upstream se reportan como *UpstreamError cuando hay status disponible.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
