package points

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pet-translator/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Incrementer: suma atómica de treat points. La implementa profiles.Service.
type Incrementer interface {
	AddTreatPoints(ctx context.Context, userID string, points int) (int, error)
}

type incrementRequest struct {
	UserUUID string `json:"user_uuid"`
	Points   int    `json:"points"`
}

type incrementResponse struct {
	Success  bool `json:"success"`
	NewTotal int  `json:"newTotal"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// RegisterRoutes monta el endpoint server-to-server. La autorización por service key
// va en el router, no acá.
func RegisterRoutes(r chi.Router, inc Incrementer, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Post("/increment-treat-points", incrementHandler(inc, log))
}

// incrementHandler godoc
// @Summary Sumar treat points
// @Description Suma atómica. Requiere service key (apikey o Authorization: Bearer).
// @Tags functions
// @Accept json
// @Produce json
// @Param apikey header string true "Service role key"
// @Param payload body incrementRequest true "Usuario y puntos (> 0)"
// @Success 200 {object} incrementResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /functions/v1/increment-treat-points [post]
func incrementHandler(inc Incrementer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req incrementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
			return
		}
		req.UserUUID = strings.TrimSpace(req.UserUUID)
		if req.UserUUID == "" || req.Points <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_uuid and positive points are required"})
			return
		}

		total, err := inc.AddTreatPoints(r.Context(), req.UserUUID, req.Points)
		if err != nil {
			log.Error("increment treat points failed", map[string]any{"user_id": req.UserUUID, "error": err})
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to increment treat points"})
			return
		}

		writeJSON(w, http.StatusOK, incrementResponse{Success: true, NewTotal: total})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
