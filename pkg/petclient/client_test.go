package petclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pet-translator/internal/ports/llm"
	"pet-translator/internal/router"
	"pet-translator/pkg/petclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCompleter struct {
	text string
	err  error
}

func (f fixedCompleter) Complete(context.Context, llm.CompletionRequest) (string, error) {
	return f.text, f.err
}

type recorder struct {
	mu    sync.Mutex
	notes []petclient.Notification
}

func (r *recorder) Notify(n petclient.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) last(t *testing.T) petclient.Notification {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.notes)
	return r.notes[len(r.notes)-1]
}

// hits cuenta GETs por path para verificar el cache.
type hits struct {
	mu sync.Mutex
	n  map[string]int
}

func (h *hits) get(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n[path]
}

func newClient(t *testing.T, opts router.Options) (*petclient.Client, *recorder, *hits) {
	t.Helper()

	h := &hits{n: map[string]int{}}
	api := router.NewRouter(opts)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			h.mu.Lock()
			h.n[r.URL.Path]++
			h.mu.Unlock()
		}
		api.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	rec := &recorder{}
	c, err := petclient.New(petclient.Options{
		BaseURL:     ts.URL,
		DebugUserID: "user-1",
		Notifier:    rec,
	})
	require.NoError(t, err)
	return c, rec, h
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := petclient.New(petclient.Options{})
	require.Error(t, err)
}

func TestPets_CacheAndInvalidation(t *testing.T) {
	c, rec, h := newClient(t, router.Options{})
	ctx := context.Background()

	list, err := c.ListPets(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	_, _ = c.ListPets(ctx)
	assert.Equal(t, 1, h.get("/pets"), "second read must be served from cache")

	pet, err := c.CreatePet(ctx, petclient.NewPet{Name: "Rex", Type: "dog"})
	require.NoError(t, err)
	assert.Equal(t, "Rex", pet.Name)
	assert.Equal(t, petclient.Notification{
		Title:       "Pet added! 🐾",
		Description: "Your new furry friend is ready for translation!",
		Variant:     petclient.VariantDefault,
	}, rec.last(t))

	list, err = c.ListPets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, h.get("/pets"))

	breed := "Beagle"
	updated, err := c.UpdatePet(ctx, pet.ID, petclient.PetUpdate{Breed: &breed})
	require.NoError(t, err)
	assert.Equal(t, "Beagle", updated.Breed)
	assert.Equal(t, "Pet updated! ✅", rec.last(t).Title)

	list, _ = c.ListPets(ctx)
	assert.Equal(t, "Beagle", list[0].Breed)
	assert.Equal(t, 3, h.get("/pets"))
}

func TestCreatePet_FailureNotifiesAndKeepsCache(t *testing.T) {
	c, rec, h := newClient(t, router.Options{})
	ctx := context.Background()

	_, _ = c.ListPets(ctx)

	_, err := c.CreatePet(ctx, petclient.NewPet{Name: "Rex", Type: "dog", Birthday: "yesterday"})
	require.Error(t, err)

	var apiErr *petclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, petclient.Notification{
		Title:       "Failed to add pet",
		Description: "birthday must be YYYY-MM-DD",
		Variant:     petclient.VariantDestructive,
	}, rec.last(t))

	_, _ = c.ListPets(ctx)
	assert.Equal(t, 1, h.get("/pets"))
}

func TestProfile_Update(t *testing.T) {
	c, rec, h := newClient(t, router.Options{})
	ctx := context.Background()

	p, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.ID)

	name := "Ana"
	_, err = c.UpdateProfile(ctx, petclient.ProfileUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, petclient.Notification{
		Title:       "Profile updated! ✅",
		Description: "Your changes have been saved.",
		Variant:     petclient.VariantDefault,
	}, rec.last(t))

	p, err = c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.FullName)
	assert.Equal(t, 2, h.get("/me/profile"))
}

func TestTranslatePetSound_InvalidatesTranslationsAndProfile(t *testing.T) {
	c, rec, h := newClient(t, router.Options{Completer: fixedCompleter{text: "Walk time!"}})
	ctx := context.Background()

	p, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, p.TreatPoints)
	_, _ = c.ListTranslations(ctx, 5)
	_, _ = c.ListBadges(ctx)

	res, err := c.TranslatePetSound(ctx, petclient.TranslateRequest{PetType: "dog", PetID: "default"})
	require.NoError(t, err)
	assert.Equal(t, "Walk time!", res.Translation)
	assert.Equal(t, 1, res.TreatPoints)
	assert.Equal(t, petclient.Notification{
		Title:       "Translation complete! 🎉",
		Description: "You earned 1 treat points!",
		Variant:     petclient.VariantDefault,
	}, rec.last(t))

	p, _ = c.GetProfile(ctx)
	assert.Equal(t, 1, p.TreatPoints)

	items, err := c.ListTranslations(ctx, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, res.TranslationID, items[0].ID)

	// badges no se invalida con una traducción
	_, _ = c.ListBadges(ctx)
	assert.Equal(t, 2, h.get("/me/profile"))
	assert.Equal(t, 2, h.get("/translations"))
	assert.Equal(t, 1, h.get("/me/badges"))
}

func TestTranslatePetSound_UpstreamFailure(t *testing.T) {
	c, rec, _ := newClient(t, router.Options{Completer: fixedCompleter{err: llm.NewUpstreamError(http.StatusTooManyRequests, "slow down")}})
	ctx := context.Background()

	_, err := c.TranslatePetSound(ctx, petclient.TranslateRequest{PetType: "dog", PetID: "default"})
	require.Error(t, err)

	n := rec.last(t)
	assert.Equal(t, "Translation failed", n.Title)
	assert.Equal(t, "Rate limit exceeded. Please try again in a moment.", n.Description)
	assert.Equal(t, petclient.VariantDestructive, n.Variant)
}

func TestCall_RequiresCredentials(t *testing.T) {
	c, err := petclient.New(petclient.Options{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = c.ListPets(context.Background())
	require.ErrorIs(t, err, petclient.ErrNotAuthenticated)
}
