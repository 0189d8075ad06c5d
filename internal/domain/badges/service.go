package badges

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrAlreadyAwarded = errors.New("badge already awarded")
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

func (s *Service) List(ctx context.Context) ([]Badge, error) {
	return s.repo.ListBadges(ctx)
}

func (s *Service) ListEarned(ctx context.Context, userID string) ([]UserBadge, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListUserBadges(ctx, userID)
}

// CheckAndAward otorga los badges cuyo requisito se cumple y que el usuario aún no tiene.
// Devuelve solo los nuevos.
func (s *Service) CheckAndAward(ctx context.Context, userID string, p Progress) ([]UserBadge, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}

	all, err := s.repo.ListBadges(ctx)
	if err != nil {
		return nil, err
	}
	earned, err := s.repo.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(earned))
	for _, ub := range earned {
		have[ub.BadgeID] = struct{}{}
	}

	now := s.now()
	out := make([]UserBadge, 0)
	for _, b := range all {
		if _, ok := have[b.ID]; ok {
			continue
		}
		if !b.Met(p) {
			continue
		}
		ub := UserBadge{
			ID:       uuid.NewString(),
			UserID:   userID,
			BadgeID:  b.ID,
			EarnedAt: now,
			Badge:    b,
		}
		if err := s.repo.Award(ctx, ub); err != nil {
			if errors.Is(err, ErrAlreadyAwarded) {
				continue
			}
			return out, err
		}
		out = append(out, ub)
	}
	return out, nil
}

func (s *Service) CountAwards(ctx context.Context) (int, error) {
	return s.repo.CountAwards(ctx)
}
