package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListActiveByOwner devuelve solo is_active=true, más nuevas primero.
	ListActiveByOwner(ctx context.Context, userID string) ([]Pet, error)
	Count(ctx context.Context) (int, error)
}
