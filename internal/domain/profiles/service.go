package profiles

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, userID)
}

// GetOrCreate devuelve el perfil; si no existe lo crea vacío (primer login).
func (s *Service) GetOrCreate(ctx context.Context, userID, email string) (Profile, error) {
	p, err := s.Get(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	now := s.now()
	p = Profile{
		ID:        strings.TrimSpace(userID),
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		// carrera con otro request que lo creó primero
		if existing, gerr := s.repo.GetByID(ctx, p.ID); gerr == nil {
			return existing, nil
		}
		return Profile{}, err
	}
	return p, nil
}

type UpdateInput struct {
	// nil = no tocar
	FullName  *string
	AvatarURL *string
}

// Update solo permite campos editables por el usuario; puntos/premium/racha no.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	if in.FullName == nil && in.AvatarURL == nil {
		return Profile{}, ErrInvalidInput
	}
	if in.FullName != nil {
		p.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// AddTreatPoints suma puntos (points > 0) y devuelve el nuevo total.
func (s *Service) AddTreatPoints(ctx context.Context, userID string, points int) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || points <= 0 {
		return 0, ErrInvalidInput
	}
	return s.repo.AddTreatPoints(ctx, userID, points)
}

// SetTreatPoints es la acción administrativa explícita.
func (s *Service) SetTreatPoints(ctx context.Context, userID string, total int) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || total < 0 {
		return ErrInvalidInput
	}
	return s.repo.SetTreatPoints(ctx, userID, total)
}

// RecordTranslationDay actualiza la racha diaria y devuelve el perfil resultante.
func (s *Service) RecordTranslationDay(ctx context.Context, userID string) (Profile, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	today := day(s.now())
	streak := NextStreak(p.DailyStreak, p.LastTranslationDate, today)
	if err := s.repo.UpdateStreak(ctx, p.ID, streak, today); err != nil {
		return Profile{}, err
	}
	p.DailyStreak = streak
	p.LastTranslationDate = &today
	return p, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// NextStreak: mismo día => igual; día anterior => +1; cualquier otro caso => 1.
func NextStreak(current int, last *time.Time, today time.Time) int {
	today = day(today)
	if last == nil {
		return 1
	}
	prev := day(*last)
	switch {
	case prev.Equal(today):
		if current < 1 {
			return 1
		}
		return current
	case prev.AddDate(0, 0, 1).Equal(today):
		return current + 1
	default:
		return 1
	}
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
