package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fixed(n int) CountFunc {
	return func(context.Context) (int, error) { return n, nil }
}

func TestCollect(t *testing.T) {
	got, err := Collect(context.Background(), Sources{
		Users:        fixed(3),
		Pets:         fixed(5),
		Translations: fixed(12),
		BadgeAwards:  fixed(4),
	})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := Stats{TotalUsers: 3, TotalPets: 5, TotalTranslations: 12, TotalBadgesAwarded: 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_PropagatesError(t *testing.T) {
	boom := errors.New("db down")
	_, err := Collect(context.Background(), Sources{
		Users: fixed(1),
		Pets:  func(context.Context) (int, error) { return 0, boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected db error, got %v", err)
	}
}
