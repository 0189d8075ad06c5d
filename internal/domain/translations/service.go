package translations

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-translator/internal/domain/badges"
	"pet-translator/internal/domain/pets"
	"pet-translator/internal/domain/profiles"
	"pet-translator/internal/domain/translations/canned"
	"pet-translator/internal/platform/logger"
	"pet-translator/internal/ports/llm"
	"pet-translator/internal/ports/storage"
	"pet-translator/internal/ports/transcription"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrModelNotConfigured = errors.New("translation model not configured")
)

// PersistenceError: el store rechazó una escritura necesaria para completar la traducción.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ProfileStore es lo que la traducción necesita de profiles.
// GetOrCreate cubre al usuario que traduce antes de leer su perfil.
type ProfileStore interface {
	GetOrCreate(ctx context.Context, userID, email string) (profiles.Profile, error)
	AddTreatPoints(ctx context.Context, userID string, points int) (int, error)
	RecordTranslationDay(ctx context.Context, userID string) (profiles.Profile, error)
}

type PetNamer interface {
	NameOf(ctx context.Context, userID, petID string) (string, error)
}

type BadgeChecker interface {
	CheckAndAward(ctx context.Context, userID string, p badges.Progress) ([]badges.UserBadge, error)
}

// Deps: Repo y Profiles son obligatorios; el resto puede ser nil.
// Objects nil => no se guarda audio; Transcriber nil => sin transcripción;
// Completer nil => la variante live responde ErrModelNotConfigured.
type Deps struct {
	Repo     Repository
	Profiles ProfileStore
	Pets     PetNamer
	Badges   BadgeChecker

	Objects     storage.ObjectStore
	Transcriber transcription.Transcriber
	Completer   llm.Completer

	Quota   *QuotaGuard
	Canned  *canned.Table
	Metrics *Metrics
	Logger  logger.Logger
}

type Service struct {
	repo     Repository
	profiles ProfileStore
	pets     PetNamer
	badges   BadgeChecker

	objects     storage.ObjectStore
	transcriber transcription.Transcriber
	completer   llm.Completer

	quota   *QuotaGuard
	canned  *canned.Table
	metrics *Metrics
	log     logger.Logger

	now func() time.Time
}

func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = logger.Nop()
	}
	table := d.Canned
	if table == nil {
		table = canned.Default()
	}
	return &Service{
		repo:        d.Repo,
		profiles:    d.Profiles,
		pets:        d.Pets,
		badges:      d.Badges,
		objects:     d.Objects,
		transcriber: d.Transcriber,
		completer:   d.Completer,
		quota:       d.Quota,
		canned:      table,
		metrics:     d.Metrics,
		log:         log,
		now:         time.Now,
	}
}

// Request es el cuerpo común a ambas variantes.
type Request struct {
	UserID    string
	Email     string
	PetType   string
	PetID     string
	Mode      string
	AudioData string // base64, opcional
}

type LiveResult struct {
	Translation   string
	TreatPoints   int
	TranslationID string
	AudioURL      *string
	Transcription *string
}

type CannedResult struct {
	Translation       string
	TreatPointsEarned int
	TranslationID     string
	AudioURL          *string
	NewBadges         []badges.UserBadge
}

func (in *Request) normalize() error {
	in.UserID = strings.TrimSpace(in.UserID)
	in.Email = strings.TrimSpace(in.Email)
	in.PetID = strings.TrimSpace(in.PetID)
	in.Mode = strings.TrimSpace(in.Mode)
	if in.UserID == "" {
		return ErrInvalidInput
	}
	sp, ok := pets.ParseSpecies(in.PetType)
	if !ok {
		return fmt.Errorf("%w: petType must be one of dog, cat, bird, rabbit, hamster, other", ErrInvalidInput)
	}
	in.PetType = string(sp)
	if in.PetID == "" {
		in.PetID = DefaultPetID
	}
	return nil
}

// Translate es la variante live: audio -> transcripción -> modelo -> persistencia -> puntos.
// Cada paso espera al anterior. Audio y transcripción son best-effort; el modelo no.
func (s *Service) Translate(ctx context.Context, in Request) (LiveResult, error) {
	if err := in.normalize(); err != nil {
		return LiveResult{}, err
	}
	if s.completer == nil {
		s.metrics.observe(VariantLive, outcomeNotConfigured)
		return LiveResult{}, ErrModelNotConfigured
	}

	profile, err := s.profiles.GetOrCreate(ctx, in.UserID, in.Email)
	if err != nil {
		s.metrics.observe(VariantLive, outcomePersistError)
		return LiveResult{}, &PersistenceError{Op: "load profile", Err: err}
	}

	release, err := s.acquireQuota(ctx, in.UserID, profile.PremiumActive(s.now()))
	if err != nil {
		s.metrics.observe(VariantLive, outcomeQuotaExceeded)
		return LiveResult{}, err
	}

	log := s.log.With(map[string]any{"user_id": in.UserID, "variant": VariantLive})

	audio, audioURL := s.storeAudio(ctx, log, in.UserID, in.AudioData)

	var transcript string
	if audioURL != nil {
		transcript = s.transcribe(ctx, log, audio)
	}

	text, err := s.completer.Complete(ctx, completionRequest(BuildPrompt(in.PetType, transcript, in.Mode)))
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = llm.ErrEmptyCompletion
		}
	}
	if err != nil {
		release()
		fields := map[string]any{"error": err, "kind": llm.KindOf(err)}
		var ue *llm.UpstreamError
		if errors.As(err, &ue) && ue.Body != "" {
			fields["upstream_body"] = ue.Body
		}
		log.Error("model call failed", fields)
		s.metrics.upstreamError("llm", string(llm.KindOf(err)))
		s.metrics.observe(VariantLive, outcomeUpstreamError)
		return LiveResult{}, err
	}

	confidence := ConfidenceWithoutTranscription
	if transcript != "" {
		confidence = ConfidenceWithTranscription
	}

	t := s.newTranslation(in, text, audioURL, LiveAward)
	t.ConfidenceScore = &confidence
	if err := s.repo.Create(ctx, t); err != nil {
		release()
		s.metrics.observe(VariantLive, outcomePersistError)
		return LiveResult{}, &PersistenceError{Op: "save translation", Err: err}
	}

	if _, err := s.profiles.AddTreatPoints(ctx, in.UserID, LiveAward); err != nil {
		if !errors.Is(err, profiles.ErrNotFound) {
			s.metrics.observe(VariantLive, outcomePersistError)
			return LiveResult{}, &PersistenceError{Op: "increment treat points", Err: err}
		}
		log.Warn("profile not found, treat points not awarded", map[string]any{"translation_id": t.ID})
	}

	s.metrics.observe(VariantLive, outcomeSuccess)
	log.Info("translation generated", map[string]any{"translation_id": t.ID, "has_audio": audioURL != nil})

	res := LiveResult{
		Translation:   text,
		TreatPoints:   LiveAward,
		TranslationID: t.ID,
		AudioURL:      audioURL,
	}
	if transcript != "" {
		res.Transcription = &transcript
	}
	return res, nil
}

// TranslateCanned elige una frase de la tabla estática, sin modelo ni transcripción.
// Después de guardar corre puntos, racha y badges.
func (s *Service) TranslateCanned(ctx context.Context, in Request) (CannedResult, error) {
	if err := in.normalize(); err != nil {
		return CannedResult{}, err
	}

	profile, err := s.profiles.GetOrCreate(ctx, in.UserID, in.Email)
	if err != nil {
		s.metrics.observe(VariantCanned, outcomePersistError)
		return CannedResult{}, &PersistenceError{Op: "load profile", Err: err}
	}

	release, err := s.acquireQuota(ctx, in.UserID, profile.PremiumActive(s.now()))
	if err != nil {
		s.metrics.observe(VariantCanned, outcomeQuotaExceeded)
		return CannedResult{}, err
	}

	log := s.log.With(map[string]any{"user_id": in.UserID, "variant": VariantCanned})

	phrase, ok := s.canned.Pick(in.PetType, in.Mode)
	if !ok {
		release()
		return CannedResult{}, fmt.Errorf("no canned phrases for %s", in.PetType)
	}
	if name := s.petName(ctx, in.UserID, in.PetID); name != "" {
		phrase = name + " says: " + phrase
	}

	_, audioURL := s.storeAudio(ctx, log, in.UserID, in.AudioData)

	t := s.newTranslation(in, phrase, audioURL, CannedAward)
	if err := s.repo.Create(ctx, t); err != nil {
		release()
		s.metrics.observe(VariantCanned, outcomePersistError)
		return CannedResult{}, &PersistenceError{Op: "save translation", Err: err}
	}

	total, err := s.profiles.AddTreatPoints(ctx, in.UserID, CannedAward)
	if err != nil {
		if !errors.Is(err, profiles.ErrNotFound) {
			s.metrics.observe(VariantCanned, outcomePersistError)
			return CannedResult{}, &PersistenceError{Op: "increment treat points", Err: err}
		}
		log.Warn("profile not found, treat points not awarded", map[string]any{"translation_id": t.ID})
	}

	newBadges := s.gamify(ctx, log, in.UserID, total)

	s.metrics.observe(VariantCanned, outcomeSuccess)
	return CannedResult{
		Translation:       phrase,
		TreatPointsEarned: CannedAward,
		TranslationID:     t.ID,
		AudioURL:          audioURL,
		NewBadges:         newBadges,
	}, nil
}

// List devuelve las traducciones del usuario, más nuevas primero.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]Translation, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || limit < 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) newTranslation(in Request, text string, audioURL *string, award int) Translation {
	t := Translation{
		ID:                uuid.NewString(),
		UserID:            in.UserID,
		OriginalAudioURL:  audioURL,
		TranslationText:   text,
		TreatPointsEarned: award,
		CreatedAt:         s.now(),
	}
	if in.PetID != DefaultPetID {
		id := in.PetID
		t.PetID = &id
	}
	if in.Mode != "" {
		mode := in.Mode
		t.TranslationMode = &mode
	}
	return t
}

func (s *Service) acquireQuota(ctx context.Context, userID string, premium bool) (func(), error) {
	if s.quota == nil {
		return func() {}, nil
	}

	release, err := s.quota.Acquire(ctx, userID, premium)
	if err != nil {
		if isQuotaExceeded(err) {
			return nil, err
		}
		// backend de cuota caído: no bloqueamos la traducción
		s.log.Warn("quota check failed", map[string]any{"user_id": userID, "error": err})
		return func() {}, nil
	}
	return release, nil
}

// storeAudio decodifica y sube el audio. Cualquier fallo deja url nil.
func (s *Service) storeAudio(ctx context.Context, log logger.Logger, userID, audioData string) ([]byte, *string) {
	audioData = strings.TrimSpace(audioData)
	if audioData == "" || s.objects == nil {
		return nil, nil
	}

	data, err := base64.StdEncoding.DecodeString(audioData)
	if err != nil {
		log.Error("audio decode failed", map[string]any{"error": err})
		s.metrics.upstreamError("storage", "decode")
		return nil, nil
	}

	key := fmt.Sprintf("%s/%d.webm", userID, s.now().UnixMilli())
	if err := s.objects.Upload(ctx, storage.UploadInput{
		Key:         key,
		ContentType: "audio/webm",
		Data:        data,
		Upsert:      false,
	}); err != nil {
		log.Error("audio upload failed", map[string]any{"error": err, "key": key})
		s.metrics.upstreamError("storage", "upload")
		return nil, nil
	}

	u := s.objects.PublicURL(key)
	return data, &u
}

func (s *Service) transcribe(ctx context.Context, log logger.Logger, audio []byte) string {
	if s.transcriber == nil || len(audio) == 0 {
		return ""
	}
	text, err := s.transcriber.Transcribe(ctx, audio, "audio.webm")
	if err != nil {
		log.Error("transcription failed", map[string]any{"error": err})
		s.metrics.upstreamError("transcription", "generic")
		return ""
	}
	return strings.TrimSpace(text)
}

func (s *Service) petName(ctx context.Context, userID, petID string) string {
	if s.pets == nil || petID == DefaultPetID {
		return ""
	}
	name, err := s.pets.NameOf(ctx, userID, petID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

// gamify: racha + badges. Fallos se loguean; la traducción ya quedó guardada.
func (s *Service) gamify(ctx context.Context, log logger.Logger, userID string, total int) []badges.UserBadge {
	p, err := s.profiles.RecordTranslationDay(ctx, userID)
	if err != nil {
		log.Warn("streak update failed", map[string]any{"error": err})
		return nil
	}
	if s.badges == nil {
		return nil
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		log.Warn("translation count failed", map[string]any{"error": err})
		return nil
	}
	if total == 0 {
		total = p.TreatPoints
	}

	awarded, err := s.badges.CheckAndAward(ctx, userID, badges.Progress{
		Translations: count,
		Streak:       p.DailyStreak,
		TreatPoints:  total,
		Premium:      p.PremiumActive(s.now()),
	})
	if err != nil {
		log.Warn("badge check failed", map[string]any{"error": err})
	}
	for _, ub := range awarded {
		log.Info("badge awarded", map[string]any{"badge_id": ub.BadgeID})
	}
	return awarded
}
