package quota

import (
	"context"
	"errors"
	"time"
)

// ErrExceeded: el usuario agotó su cupo del día.
var ErrExceeded = errors.New("daily quota exceeded")

// Counter cuenta usos por key dentro de una ventana (un día UTC).
type Counter interface {
	// Incr suma 1 y devuelve el total de la ventana. ttl se aplica al crear la key.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Decr revierte un Incr (p.ej. si la traducción falló upstream).
	Decr(ctx context.Context, key string) error
}
