package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pet-translator/internal/domain/badges"
)

type badgeRepo struct {
	mu      sync.RWMutex
	catalog []badges.Badge
	awards  map[string][]badges.UserBadge // por user
}

// NewBadgeRepo arranca con el catálogo por defecto.
func NewBadgeRepo() badges.Repository {
	return NewBadgeRepoWithCatalog(badges.DefaultCatalog(time.Now()))
}

func NewBadgeRepoWithCatalog(catalog []badges.Badge) badges.Repository {
	cp := append([]badges.Badge(nil), catalog...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Category < cp[j].Category })
	return &badgeRepo{
		catalog: cp,
		awards:  make(map[string][]badges.UserBadge),
	}
}

func (r *badgeRepo) ListBadges(ctx context.Context) ([]badges.Badge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]badges.Badge(nil), r.catalog...), nil
}

func (r *badgeRepo) ListUserBadges(ctx context.Context, userID string) ([]badges.UserBadge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]badges.UserBadge(nil), r.awards[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EarnedAt.After(out[j].EarnedAt) })
	if out == nil {
		out = []badges.UserBadge{}
	}
	return out, nil
}

func (r *badgeRepo) Award(ctx context.Context, ub badges.UserBadge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, have := range r.awards[ub.UserID] {
		if have.BadgeID == ub.BadgeID {
			return badges.ErrAlreadyAwarded
		}
	}
	for _, b := range r.catalog {
		if b.ID == ub.BadgeID {
			ub.Badge = b
			break
		}
	}
	r.awards[ub.UserID] = append(r.awards[ub.UserID], ub)
	return nil
}

func (r *badgeRepo) CountAwards(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, list := range r.awards {
		n += len(list)
	}
	return n, nil
}
