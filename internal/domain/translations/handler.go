package translations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-translator/internal/middleware"
	"pet-translator/internal/ports/auth"
	"pet-translator/internal/ports/llm"

	"github.com/go-chi/chi/v5"
)

const quotaExceededMessage = "Daily translation limit reached. Upgrade to premium for unlimited translations."

// RegisterFunctionRoutes monta los endpoints de traducción (estilo edge function).
func RegisterFunctionRoutes(r chi.Router, svc *Service) {
	r.Post("/translate-pet-sound", translateHandler(svc))
	r.Post("/translate-pet-sound-demo", translateCannedHandler(svc))
}

// RegisterRoutes monta el historial del usuario.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/translations", listTranslationsHandler(svc))
}

type translateRequest struct {
	PetType   string `json:"petType" enums:"dog,cat,bird,rabbit,hamster,other"`
	PetID     string `json:"petId"`
	Mode      string `json:"mode,omitempty"`
	AudioData string `json:"audioData,omitempty"` // base64
}

type translateResponse struct {
	Translation   string  `json:"translation"`
	TreatPoints   int     `json:"treatPoints"`
	TranslationID string  `json:"translationId"`
	AudioURL      *string `json:"audioUrl"`
	Transcription *string `json:"transcription"`
}

type cannedResponse struct {
	Translation       string  `json:"translation"`
	TreatPointsEarned int     `json:"treatPointsEarned"`
	TranslationID     string  `json:"translationId"`
	AudioURL          *string `json:"audioUrl"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type translationResponse struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	PetID             *string   `json:"pet_id"`
	OriginalAudioURL  *string   `json:"original_audio_url"`
	TranslationText   string    `json:"translation_text"`
	TranslationMode   *string   `json:"translation_mode"`
	ConfidenceScore   *float64  `json:"confidence_score"`
	TreatPointsEarned int       `json:"treat_points_earned"`
	CreatedAt         time.Time `json:"created_at"`
}

// translateHandler godoc
// @Summary Traducir sonido de mascota
// @Description Sube el audio (opcional), transcribe, llama al modelo y otorga 1 treat point.
// @Tags functions
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body translateRequest true "Contexto de la traducción"
// @Success 200 {object} translateResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 429 {object} errorResponse "cupo diario agotado"
// @Failure 500 {object} errorResponse
// @Router /functions/v1/translate-pet-sound [post]
func translateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, claims, ok := decodeTranslateRequest(w, r)
		if !ok {
			return
		}

		res, err := svc.Translate(r.Context(), Request{
			UserID:    claims.UserID,
			Email:     claims.Email,
			PetType:   req.PetType,
			PetID:     req.PetID,
			Mode:      req.Mode,
			AudioData: req.AudioData,
		})
		if err != nil {
			writeTranslateError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, translateResponse{
			Translation:   res.Translation,
			TreatPoints:   res.TreatPoints,
			TranslationID: res.TranslationID,
			AudioURL:      res.AudioURL,
			Transcription: res.Transcription,
		})
	}
}

// translateCannedHandler godoc
// @Summary Traducción demo (sin modelo)
// @Description Frase aleatoria por especie y mood. Otorga 10 treat points, actualiza racha y badges.
// @Tags functions
// @Accept json
// @Produce json
// @Param payload body translateRequest true "Contexto de la traducción"
// @Success 200 {object} cannedResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /functions/v1/translate-pet-sound-demo [post]
func translateCannedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, claims, ok := decodeTranslateRequest(w, r)
		if !ok {
			return
		}

		res, err := svc.TranslateCanned(r.Context(), Request{
			UserID:    claims.UserID,
			Email:     claims.Email,
			PetType:   req.PetType,
			PetID:     req.PetID,
			Mode:      req.Mode,
			AudioData: req.AudioData,
		})
		if err != nil {
			writeTranslateError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, cannedResponse{
			Translation:       res.Translation,
			TreatPointsEarned: res.TreatPointsEarned,
			TranslationID:     res.TranslationID,
			AudioURL:          res.AudioURL,
		})
	}
}

// decodeTranslateRequest valida auth antes que el body: sin credencial no se hace nada.
func decodeTranslateRequest(w http.ResponseWriter, r *http.Request) (translateRequest, auth.Claims, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		details := "missing or invalid bearer token"
		if err := middleware.AuthError(r.Context()); err != nil {
			details = err.Error()
		}
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized", Details: details})
		return translateRequest{}, auth.Claims{}, false
	}

	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json", Details: err.Error()})
		return translateRequest{}, auth.Claims{}, false
	}
	return req, claims, true
}

func writeTranslateError(w http.ResponseWriter, err error) {
	var ue *llm.UpstreamError
	var pe *PersistenceError

	switch {
	case errors.Is(err, ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case isQuotaExceeded(err):
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: quotaExceededMessage})
	case errors.Is(err, ErrModelNotConfigured):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	case errors.As(err, &ue):
		// 429/402 del gateway salen como 500 con el mensaje específico; el body del gateway solo va al log
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: ue.Error()})
	case errors.As(err, &pe):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to " + pe.Op, Details: pe.Err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Translation failed", Details: err.Error()})
	}
}

// listTranslationsHandler godoc
// @Summary Historial de traducciones
// @Description Más nuevas primero. limit opcional (default 20, máx 100).
// @Tags translations
// @Produce json
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} translationResponse
// @Failure 400 {string} string "invalid limit"
// @Failure 401 {string} string "unauthorized"
// @Router /translations [get]
func listTranslationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit := 20
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = min(n, 100)
		}

		items, err := svc.List(r.Context(), claims.UserID, limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]translationResponse, 0, len(items))
		for _, t := range items {
			out = append(out, translationResponse{
				ID:                t.ID,
				UserID:            t.UserID,
				PetID:             t.PetID,
				OriginalAudioURL:  t.OriginalAudioURL,
				TranslationText:   t.TranslationText,
				TranslationMode:   t.TranslationMode,
				ConfidenceScore:   t.ConfidenceScore,
				TreatPointsEarned: t.TreatPointsEarned,
				CreatedAt:         t.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
