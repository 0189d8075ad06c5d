package badges

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type testRepo struct {
	catalog []Badge
	awarded map[string]UserBadge // user|badge
	failErr error
}

func newTestRepo(catalog []Badge) *testRepo {
	return &testRepo{catalog: catalog, awarded: map[string]UserBadge{}}
}

func (r *testRepo) ListBadges(ctx context.Context) ([]Badge, error) {
	return append([]Badge(nil), r.catalog...), nil
}

func (r *testRepo) ListUserBadges(ctx context.Context, userID string) ([]UserBadge, error) {
	out := make([]UserBadge, 0)
	for _, ub := range r.awarded {
		if ub.UserID == userID {
			out = append(out, ub)
		}
	}
	return out, nil
}

func (r *testRepo) Award(ctx context.Context, ub UserBadge) error {
	if r.failErr != nil {
		return r.failErr
	}
	k := ub.UserID + "|" + ub.BadgeID
	if _, ok := r.awarded[k]; ok {
		return ErrAlreadyAwarded
	}
	r.awarded[k] = ub
	return nil
}

func (r *testRepo) CountAwards(ctx context.Context) (int, error) {
	return len(r.awarded), nil
}

func ids(in []UserBadge) []string {
	out := make([]string, 0, len(in))
	for _, ub := range in {
		out = append(out, ub.BadgeID)
	}
	sort.Strings(out)
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCheckAndAward_AwardsOnlyNewlyMet(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	repo := newTestRepo(DefaultCatalog(now))
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	got, err := svc.CheckAndAward(ctx, "user-1", Progress{Translations: 1, Streak: 1, TreatPoints: 10})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !equal(ids(got), []string{"first-words"}) {
		t.Fatalf("expected first-words, got %v", ids(got))
	}
	if !got[0].EarnedAt.Equal(now) || got[0].Badge.Name != "First Words" {
		t.Fatalf("unexpected awarded badge %+v", got[0])
	}

	got, err = svc.CheckAndAward(ctx, "user-1", Progress{Translations: 10, Streak: 3, TreatPoints: 100})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !equal(ids(got), []string{"chatterbox", "on-a-roll", "treat-collector"}) {
		t.Fatalf("unexpected new badges %v", ids(got))
	}

	// nada nuevo
	got, err = svc.CheckAndAward(ctx, "user-1", Progress{Translations: 10, Streak: 3, TreatPoints: 100})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected nothing new, got %v err=%v", ids(got), err)
	}
	if n, _ := svc.CountAwards(ctx); n != 4 {
		t.Fatalf("expected 4 awards, got %d", n)
	}
}

func TestCheckAndAward_PremiumOnly(t *testing.T) {
	repo := newTestRepo(DefaultCatalog(time.Now()))
	svc := NewService(repo)
	ctx := context.Background()

	got, _ := svc.CheckAndAward(ctx, "free-user", Progress{TreatPoints: 600})
	for _, ub := range got {
		if ub.BadgeID == "golden-bowl" {
			t.Fatalf("premium-only badge awarded to free user")
		}
	}

	got, _ = svc.CheckAndAward(ctx, "premium-user", Progress{TreatPoints: 600, Premium: true})
	found := false
	for _, ub := range got {
		if ub.BadgeID == "golden-bowl" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected golden-bowl for premium user, got %v", ids(got))
	}
}

func TestCheckAndAward_RaceIsNotAnError(t *testing.T) {
	repo := newTestRepo(DefaultCatalog(time.Now()))
	svc := NewService(repo)
	ctx := context.Background()

	// otro request ganó la carrera
	repo.awarded["user-1|first-words"] = UserBadge{UserID: "user-1", BadgeID: "first-words"}
	repo.catalog = append(repo.catalog, Badge{ID: "ghost", RequirementType: RequirementTranslations, RequirementValue: 1})

	got, err := svc.CheckAndAward(ctx, "user-1", Progress{Translations: 1})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !equal(ids(got), []string{"ghost"}) {
		t.Fatalf("unexpected awards %v", ids(got))
	}
}

func TestCheckAndAward_RepoError(t *testing.T) {
	repo := newTestRepo(DefaultCatalog(time.Now()))
	repo.failErr = errors.New("db down")
	svc := NewService(repo)

	if _, err := svc.CheckAndAward(context.Background(), "user-1", Progress{Translations: 1}); err == nil {
		t.Fatalf("expected error from repo")
	}
	if _, err := svc.CheckAndAward(context.Background(), " ", Progress{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBadgeMet(t *testing.T) {
	b := Badge{RequirementType: RequirementStreak, RequirementValue: 7}
	if b.Met(Progress{Streak: 6}) {
		t.Fatalf("streak 6 must not meet 7")
	}
	if !b.Met(Progress{Streak: 7}) {
		t.Fatalf("streak 7 must meet 7")
	}
	unknown := Badge{RequirementType: "mystery", RequirementValue: 0}
	if unknown.Met(Progress{Translations: 100}) {
		t.Fatalf("unknown requirement must never be met")
	}
}
