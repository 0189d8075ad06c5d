// Package petclient es el SDK de la app: un método por operación de la UI,
// con cache de lecturas e invalidación + notificación tras cada mutación.
package petclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"pet-translator/internal/platform/httpclient"
)

// Variant del aviso mostrado al usuario.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier recibe los avisos de éxito/error de las mutaciones.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

var ErrNotAuthenticated = errors.New("petclient: not authenticated")

type Options struct {
	BaseURL string
	// Token es el access token del usuario (Authorization: Bearer).
	Token string
	// DebugUserID reemplaza al token contra un server en modo dev.
	DebugUserID string
	Timeout     time.Duration
	Notifier    Notifier
}

type Client struct {
	http        *httpclient.Client
	token       string
	debugUserID string
	notifier    Notifier
	cache       *queryCache
}

func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, errors.New("petclient: base url is required")
	}
	hc, err := httpclient.NewWithBaseURL(opts.BaseURL, opts.Timeout)
	if err != nil {
		return nil, fmt.Errorf("petclient: %w", err)
	}
	n := opts.Notifier
	if n == nil {
		n = nopNotifier{}
	}
	return &Client{
		http:        hc,
		token:       strings.TrimSpace(opts.Token),
		debugUserID: strings.TrimSpace(opts.DebugUserID),
		notifier:    n,
		cache:       newQueryCache(),
	}, nil
}

// Invalidate descarta lecturas cacheadas (sin argumentos: todo).
func (c *Client) Invalidate(keys ...string) {
	if len(keys) == 0 {
		keys = []string{KeyPets, KeyProfile, KeyTranslations, KeyBadges}
	}
	c.cache.invalidate(keys...)
}

// ---- pets

func (c *Client) ListPets(ctx context.Context) ([]Pet, error) {
	return cached(c.cache, KeyPets, func() ([]Pet, error) {
		var out []Pet
		err := c.call(ctx, http.MethodGet, "/pets", nil, &out)
		return out, err
	})
}

func (c *Client) CreatePet(ctx context.Context, in NewPet) (Pet, error) {
	var out Pet
	if err := c.call(ctx, http.MethodPost, "/pets", in, &out); err != nil {
		c.fail("Failed to add pet", err)
		return Pet{}, err
	}
	c.cache.invalidate(KeyPets)
	c.notifier.Notify(Notification{
		Title:       "Pet added! 🐾",
		Description: "Your new furry friend is ready for translation!",
		Variant:     VariantDefault,
	})
	return out, nil
}

func (c *Client) UpdatePet(ctx context.Context, petID string, in PetUpdate) (Pet, error) {
	var out Pet
	if err := c.call(ctx, http.MethodPatch, "/pets/"+url.PathEscape(petID), in, &out); err != nil {
		c.fail("Failed to update pet", err)
		return Pet{}, err
	}
	c.cache.invalidate(KeyPets)
	c.notifier.Notify(Notification{
		Title:       "Pet updated! ✅",
		Description: "Your pet's information has been saved.",
		Variant:     VariantDefault,
	})
	return out, nil
}

// ---- profile

func (c *Client) GetProfile(ctx context.Context) (Profile, error) {
	return cached(c.cache, KeyProfile, func() (Profile, error) {
		var out Profile
		err := c.call(ctx, http.MethodGet, "/me/profile", nil, &out)
		return out, err
	})
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (Profile, error) {
	var out Profile
	if err := c.call(ctx, http.MethodPatch, "/me/profile", in, &out); err != nil {
		c.fail("Failed to update profile", err)
		return Profile{}, err
	}
	c.cache.invalidate(KeyProfile)
	c.notifier.Notify(Notification{
		Title:       "Profile updated! ✅",
		Description: "Your changes have been saved.",
		Variant:     VariantDefault,
	})
	return out, nil
}

// ListBadges devuelve las medallas ganadas por el usuario.
func (c *Client) ListBadges(ctx context.Context) ([]UserBadge, error) {
	return cached(c.cache, KeyBadges, func() ([]UserBadge, error) {
		var out []UserBadge
		err := c.call(ctx, http.MethodGet, "/me/badges", nil, &out)
		return out, err
	})
}

// ---- translations

// ListTranslations: limit <= 0 trae todo el historial.
func (c *Client) ListTranslations(ctx context.Context, limit int) ([]Translation, error) {
	key, path := KeyTranslations, "/translations"
	if limit > 0 {
		key += ":" + strconv.Itoa(limit)
		path += "?limit=" + strconv.Itoa(limit)
	}
	return cached(c.cache, key, func() ([]Translation, error) {
		var out []Translation
		err := c.call(ctx, http.MethodGet, path, nil, &out)
		return out, err
	})
}

type translateBody struct {
	PetType   string `json:"petType"`
	PetID     string `json:"petId"`
	Mode      string `json:"mode,omitempty"`
	AudioData string `json:"audioData,omitempty"`
}

func (c *Client) TranslatePetSound(ctx context.Context, in TranslateRequest) (TranslateResult, error) {
	body := translateBody{PetType: in.PetType, PetID: in.PetID, Mode: in.Mode}
	if len(in.Audio) > 0 {
		body.AudioData = base64.StdEncoding.EncodeToString(in.Audio)
	}

	var out TranslateResult
	if err := c.call(ctx, http.MethodPost, "/functions/v1/translate-pet-sound", body, &out); err != nil {
		c.fail("Translation failed", err, "Failed to translate pet sound")
		return TranslateResult{}, err
	}
	c.cache.invalidate(KeyTranslations, KeyProfile)

	points := out.TreatPoints
	if points == 0 {
		points = 1
	}
	c.notifier.Notify(Notification{
		Title:       "Translation complete! 🎉",
		Description: fmt.Sprintf("You earned %d treat points!", points),
		Variant:     VariantDefault,
	})
	return out, nil
}

// ---- transport

// APIError es una respuesta no-2xx con el mensaje ya extraído del body.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	return e.Message
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	headers := map[string]string{}
	switch {
	case c.token != "":
		headers["Authorization"] = "Bearer " + c.token
	case c.debugUserID != "":
		headers["X-Debug-User-ID"] = c.debugUserID
	default:
		return ErrNotAuthenticated
	}

	err := c.http.DoJSON(ctx, method, path, headers, in, out)
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		return toAPIError(he)
	}
	return err
}

// toAPIError acepta {error, details} (functions) o texto plano (data API).
func toAPIError(he *httpclient.HTTPError) *APIError {
	e := &APIError{Status: he.StatusCode, Message: he.Body}
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if json.Unmarshal([]byte(he.Body), &body) == nil && body.Error != "" {
		e.Message, e.Details = body.Error, body.Details
	}
	if e.Message == "" {
		e.Message = http.StatusText(he.StatusCode)
	}
	return e
}

// fail notifica el error; fallback se usa si el server no devolvió mensaje.
func (c *Client) fail(title string, err error, fallback ...string) {
	desc := err.Error()
	var ae *APIError
	if errors.As(err, &ae) && ae.Message == http.StatusText(ae.Status) && len(fallback) > 0 {
		desc = fallback[0]
	}
	c.notifier.Notify(Notification{Title: title, Description: desc, Variant: VariantDestructive})
}
