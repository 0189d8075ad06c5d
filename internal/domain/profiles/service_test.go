package profiles

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	mu   sync.Mutex
	byID map[string]Profile
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Profile{}}
}

func (r *testRepo) Create(ctx context.Context, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) Update(ctx context.Context, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) AddTreatPoints(ctx context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	p.TreatPoints += delta
	r.byID[id] = p
	return p.TreatPoints, nil
}

func (r *testRepo) SetTreatPoints(ctx context.Context, id string, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.TreatPoints = total
	r.byID[id] = p
	return nil
}

func (r *testRepo) UpdateStreak(ctx context.Context, id string, streak int, day time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.DailyStreak = streak
	p.LastTranslationDate = &day
	r.byID[id] = p
	return nil
}

func (r *testRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID), nil
}

// -------------------------
// Helpers
// -------------------------

func newTestService(now time.Time) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -------------------------
// Tests
// -------------------------

func TestNextStreak(t *testing.T) {
	today := date(2024, 3, 10)
	yesterday := date(2024, 3, 9)
	longAgo := date(2024, 2, 1)

	tests := []struct {
		name    string
		current int
		last    *time.Time
		want    int
	}{
		{"first translation ever", 0, nil, 1},
		{"same day keeps streak", 4, &today, 4},
		{"same day with zero streak", 0, &today, 1},
		{"consecutive day increments", 4, &yesterday, 5},
		{"gap resets", 9, &longAgo, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextStreak(tc.current, tc.last, today.Add(15*time.Hour)); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestNextStreak_MonthBoundary(t *testing.T) {
	last := date(2024, 2, 29)
	if got := NextStreak(2, &last, date(2024, 3, 1)); got != 3 {
		t.Fatalf("expected 3 across leap-day boundary, got %d", got)
	}
}

func TestGetOrCreate_CreatesOnce(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestService(now)
	ctx := context.Background()

	p, err := svc.GetOrCreate(ctx, "user-1", "a@b.test")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if p.ID != "user-1" || p.Email != "a@b.test" || p.TreatPoints != 0 || !p.CreatedAt.Equal(now) {
		t.Fatalf("unexpected profile %+v", p)
	}

	if _, err := svc.AddTreatPoints(ctx, "user-1", 3); err != nil {
		t.Fatalf("add points: %v", err)
	}
	again, err := svc.GetOrCreate(ctx, "user-1", "other@b.test")
	if err != nil {
		t.Fatalf("get or create again: %v", err)
	}
	if again.TreatPoints != 3 || again.Email != "a@b.test" {
		t.Fatalf("expected existing profile to be returned, got %+v", again)
	}
	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("expected 1 profile, got %d", n)
	}
}

func TestUpdate_OnlyEditableFields(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	if _, err := svc.GetOrCreate(ctx, "user-1", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddTreatPoints(ctx, "user-1", 10); err != nil {
		t.Fatalf("add points: %v", err)
	}

	name := "  Ana  "
	p, err := svc.Update(ctx, "user-1", UpdateInput{FullName: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.FullName != "Ana" || p.TreatPoints != 10 {
		t.Fatalf("unexpected profile %+v", p)
	}

	if _, err := svc.Update(ctx, "user-1", UpdateInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty patch, got %v", err)
	}
	if _, err := svc.Update(ctx, "ghost", UpdateInput{FullName: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestAddTreatPoints_RejectsNonPositive(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()
	if _, err := svc.GetOrCreate(ctx, "user-1", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, pts := range []int{0, -5} {
		if _, err := svc.AddTreatPoints(ctx, "user-1", pts); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("points=%d: expected ErrInvalidInput, got %v", pts, err)
		}
	}
	if _, err := svc.AddTreatPoints(ctx, "ghost", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddTreatPoints_Concurrent(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()
	if _, err := svc.GetOrCreate(ctx, "user-1", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddTreatPoints(ctx, "user-1", 2)
		}()
	}
	wg.Wait()

	p, _ := svc.Get(ctx, "user-1")
	if p.TreatPoints != 100 {
		t.Fatalf("expected 100 points, got %d", p.TreatPoints)
	}
}

func TestSetTreatPoints(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()
	if _, err := svc.GetOrCreate(ctx, "user-1", ""); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AddTreatPoints(ctx, "user-1", 40); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.SetTreatPoints(ctx, "user-1", 5); err != nil {
		t.Fatalf("set: %v", err)
	}
	p, _ := svc.Get(ctx, "user-1")
	if p.TreatPoints != 5 {
		t.Fatalf("expected 5, got %d", p.TreatPoints)
	}
	if err := svc.SetTreatPoints(ctx, "user-1", -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecordTranslationDay(t *testing.T) {
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)
	ctx := context.Background()
	if _, err := svc.GetOrCreate(ctx, "user-1", ""); err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := svc.RecordTranslationDay(ctx, "user-1")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if p.DailyStreak != 1 || p.LastTranslationDate == nil || !p.LastTranslationDate.Equal(date(2024, 3, 10)) {
		t.Fatalf("unexpected profile after first day %+v", p)
	}

	// mismo día: no cambia
	p, _ = svc.RecordTranslationDay(ctx, "user-1")
	if p.DailyStreak != 1 {
		t.Fatalf("expected streak 1 on same day, got %d", p.DailyStreak)
	}

	svc.now = func() time.Time { return now.AddDate(0, 0, 1) }
	p, _ = svc.RecordTranslationDay(ctx, "user-1")
	if p.DailyStreak != 2 {
		t.Fatalf("expected streak 2 next day, got %d", p.DailyStreak)
	}

	svc.now = func() time.Time { return now.AddDate(0, 0, 5) }
	p, _ = svc.RecordTranslationDay(ctx, "user-1")
	if p.DailyStreak != 1 {
		t.Fatalf("expected streak reset, got %d", p.DailyStreak)
	}
}

func TestPremiumActive(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		p    Profile
		want bool
	}{
		{"free", Profile{}, false},
		{"premium without expiry", Profile{IsPremium: true}, true},
		{"premium expired", Profile{IsPremium: true, PremiumExpiresAt: &past}, false},
		{"premium active", Profile{IsPremium: true, PremiumExpiresAt: &future}, true},
	}
	for _, tc := range cases {
		if got := tc.p.PremiumActive(now); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
