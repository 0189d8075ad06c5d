package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"pet-translator/internal/domain/profiles"
)

type profileRepo struct {
	mu   sync.RWMutex
	byID map[string]profiles.Profile
}

func NewProfileRepo() profiles.Repository {
	return &profileRepo{
		byID: make(map[string]profiles.Profile),
	}
}

func (r *profileRepo) Create(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("profile already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}

func (r *profileRepo) Update(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[p.ID]
	if !ok {
		return profiles.ErrNotFound
	}
	// Update no pisa contadores: tienen sus propios métodos
	p.TreatPoints = cur.TreatPoints
	p.DailyStreak = cur.DailyStreak
	p.LastTranslationDate = cur.LastTranslationDate
	r.byID[p.ID] = p
	return nil
}

func (r *profileRepo) AddTreatPoints(ctx context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return 0, profiles.ErrNotFound
	}
	p.TreatPoints += delta
	p.UpdatedAt = time.Now()
	r.byID[id] = p
	return p.TreatPoints, nil
}

func (r *profileRepo) SetTreatPoints(ctx context.Context, id string, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.ErrNotFound
	}
	p.TreatPoints = total
	p.UpdatedAt = time.Now()
	r.byID[id] = p
	return nil
}

func (r *profileRepo) UpdateStreak(ctx context.Context, id string, streak int, day time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.ErrNotFound
	}
	p.DailyStreak = streak
	p.LastTranslationDate = &day
	r.byID[id] = p
	return nil
}

func (r *profileRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
