package profiles

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	Update(ctx context.Context, p Profile) error

	// AddTreatPoints suma delta de forma atómica y devuelve el nuevo total.
	AddTreatPoints(ctx context.Context, id string, delta int) (int, error)
	// SetTreatPoints es el ajuste administrativo (único camino que puede bajar puntos).
	SetTreatPoints(ctx context.Context, id string, total int) error
	// UpdateStreak guarda racha + último día con traducción.
	UpdateStreak(ctx context.Context, id string, streak int, day time.Time) error

	Count(ctx context.Context) (int, error)
}
