package badges

import "context"

type Repository interface {
	// ListBadges ordenado por categoría.
	ListBadges(ctx context.Context) ([]Badge, error)
	// ListUserBadges con el Badge embebido, más recientes primero.
	ListUserBadges(ctx context.Context, userID string) ([]UserBadge, error)
	// Award devuelve ErrAlreadyAwarded si ya existe (user, badge).
	Award(ctx context.Context, ub UserBadge) error
	CountAwards(ctx context.Context) (int, error)
}
