package transcription

import "context"

// Transcriber convierte audio en texto.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, fileName string) (string, error)
}
