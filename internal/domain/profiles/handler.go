package profiles

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-translator/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/me/profile", func(pr chi.Router) {
		pr.Get("/", getProfileHandler(svc))
		pr.Patch("/", updateProfileHandler(svc))
	})
}

type profileResponse struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	FullName            string     `json:"full_name"`
	AvatarURL           string     `json:"avatar_url"`
	TreatPoints         int        `json:"treat_points"`
	IsPremium           bool       `json:"is_premium"`
	PremiumExpiresAt    *time.Time `json:"premium_expires_at"`
	DailyStreak         int        `json:"daily_streak"`
	LastTranslationDate *string    `json:"last_translation_date"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
}

// getProfileHandler godoc
// @Summary Perfil del usuario
// @Description Devuelve el perfil del usuario autenticado; lo crea vacío en el primer acceso.
// @Tags profile
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetOrCreate(r.Context(), claims.UserID, claims.Email)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// updateProfileHandler godoc
// @Summary Actualizar perfil
// @Description Solo full_name y avatar_url son editables por el usuario.
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body updateProfileRequest true "Campos a actualizar"
// @Success 200 {object} profileResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "profile not found"
// @Router /me/profile [patch]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateProfileRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// Asegura que exista antes de editar.
		if _, err := svc.GetOrCreate(r.Context(), claims.UserID, claims.Email); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		p, err := svc.Update(r.Context(), claims.UserID, UpdateInput{
			FullName:  req.FullName,
			AvatarURL: req.AvatarURL,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "profile not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func toProfileResponse(p Profile) profileResponse {
	var last *string
	if p.LastTranslationDate != nil {
		s := p.LastTranslationDate.Format("2006-01-02")
		last = &s
	}
	return profileResponse{
		ID:                  p.ID,
		Email:               p.Email,
		FullName:            p.FullName,
		AvatarURL:           p.AvatarURL,
		TreatPoints:         p.TreatPoints,
		IsPremium:           p.IsPremium,
		PremiumExpiresAt:    p.PremiumExpiresAt,
		DailyStreak:         p.DailyStreak,
		LastTranslationDate: last,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
