package translations

import "context"

type Repository interface {
	Create(ctx context.Context, t Translation) error
	// ListByUser: más nuevas primero. limit <= 0 = sin límite.
	ListByUser(ctx context.Context, userID string, limit int) ([]Translation, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	Count(ctx context.Context) (int, error)
}
