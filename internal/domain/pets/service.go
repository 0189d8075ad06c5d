package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
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

type CreateInput struct {
	Name              string
	Type              string
	Breed             string
	Birthday          *time.Time
	PhotoURL          string
	FavoriteMode      string
	PersonalityTraits []string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(userID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	species, ok := ParseSpecies(strings.ToLower(strings.TrimSpace(in.Type)))
	if !ok {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:                uuid.NewString(),
		UserID:            userID,
		Name:              strings.TrimSpace(in.Name),
		Type:              species,
		Breed:             strings.TrimSpace(in.Breed),
		Birthday:          in.Birthday,
		PhotoURL:          strings.TrimSpace(in.PhotoURL),
		IsActive:          true,
		FavoriteMode:      strings.TrimSpace(in.FavoriteMode),
		PersonalityTraits: cleanTraits(in.PersonalityTraits),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListActive(ctx context.Context, userID string) ([]Pet, error) {
	return s.repo.ListActiveByOwner(ctx, userID)
}

// Birthday con presencia explícita: Present=false => no tocar; Value=nil => limpiar.
type BirthdayPatch struct {
	Present bool
	Value   *time.Time
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name              *string
	Type              *string
	Breed             *string
	Birthday          BirthdayPatch
	PhotoURL          *string
	IsActive          *bool
	FavoriteMode      *string
	PersonalityTraits *[]string
}

// Update aplica un PATCH; solo el dueño puede editar.
func (s *Service) Update(ctx context.Context, userID, petID string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.UserID != userID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Type != nil {
		species, ok := ParseSpecies(strings.ToLower(strings.TrimSpace(*in.Type)))
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.Type = species
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Birthday.Present {
		p.Birthday = in.Birthday.Value
	}
	if in.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.FavoriteMode != nil {
		p.FavoriteMode = strings.TrimSpace(*in.FavoriteMode)
	}
	if in.PersonalityTraits != nil {
		p.PersonalityTraits = cleanTraits(*in.PersonalityTraits)
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Deactivate es el "delete" de la app: soft delete.
func (s *Service) Deactivate(ctx context.Context, userID, petID string) (Pet, error) {
	inactive := false
	return s.Update(ctx, userID, petID, UpdateInput{IsActive: &inactive})
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func cleanTraits(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
