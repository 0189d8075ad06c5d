package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-translator/internal/domain/translations"
)

// translationRepo es append-only: no hay Update ni Delete.
type translationRepo struct {
	mu     sync.RWMutex
	byID   map[string]translations.Translation
	byUser map[string][]string

	failErr error
}

// TranslationRepo expone FailWith para simular rechazos del store en tests.
type TranslationRepo interface {
	translations.Repository
	FailWith(err error)
}

func NewTranslationRepo() TranslationRepo {
	return &translationRepo{
		byID:   make(map[string]translations.Translation),
		byUser: make(map[string][]string),
	}
}

func (r *translationRepo) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failErr = err
}

func (r *translationRepo) Create(ctx context.Context, t translations.Translation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failErr != nil {
		return r.failErr
	}
	if t.ID == "" {
		return errors.New("translation id required")
	}
	if t.UserID == "" {
		return errors.New("translation owner required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("translation already exists")
	}

	r.byID[t.ID] = t
	r.byUser[t.UserID] = append(r.byUser[t.UserID], t.ID)
	return nil
}

func (r *translationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]translations.Translation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	out := make([]translations.Translation, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, r.byID[ids[i]])
	}

	// más nuevas primero; a igual created_at queda el orden de inserción inverso
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *translationRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID]), nil
}

func (r *translationRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
