package badges

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-translator/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/badges", listBadgesHandler(svc))
	r.Get("/me/badges", listMyBadgesHandler(svc))
}

type badgeResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Icon             string          `json:"icon"`
	Category         string          `json:"category"`
	RequirementType  RequirementType `json:"requirement_type"`
	RequirementValue int             `json:"requirement_value"`
	IsPremiumOnly    bool            `json:"is_premium_only"`
	CreatedAt        time.Time       `json:"created_at"`
}

type userBadgeResponse struct {
	ID       string        `json:"id"`
	UserID   string        `json:"user_id"`
	BadgeID  string        `json:"badge_id"`
	EarnedAt time.Time     `json:"earned_at"`
	Badge    badgeResponse `json:"badge"`
}

// listBadgesHandler godoc
// @Summary Catálogo de badges
// @Tags badges
// @Produce json
// @Success 200 {array} badgeResponse
// @Router /badges [get]
func listBadgesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]badgeResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBadgeResponse(b))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listMyBadgesHandler godoc
// @Summary Badges ganados
// @Tags badges
// @Produce json
// @Success 200 {array} userBadgeResponse
// @Failure 401 {string} string "unauthorized"
// @Router /me/badges [get]
func listMyBadgesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListEarned(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]userBadgeResponse, 0, len(items))
		for _, ub := range items {
			out = append(out, userBadgeResponse{
				ID:       ub.ID,
				UserID:   ub.UserID,
				BadgeID:  ub.BadgeID,
				EarnedAt: ub.EarnedAt,
				Badge:    toBadgeResponse(ub.Badge),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toBadgeResponse(b Badge) badgeResponse {
	return badgeResponse{
		ID:               b.ID,
		Name:             b.Name,
		Description:      b.Description,
		Icon:             b.Icon,
		Category:         b.Category,
		RequirementType:  b.RequirementType,
		RequirementValue: b.RequirementValue,
		IsPremiumOnly:    b.IsPremiumOnly,
		CreatedAt:        b.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
