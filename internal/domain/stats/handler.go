package stats

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// CountFunc devuelve el total de una tabla.
type CountFunc func(ctx context.Context) (int, error)

// Sources son los contadores que alimentan /admin/stats.
type Sources struct {
	Users        CountFunc
	Pets         CountFunc
	Translations CountFunc
	BadgeAwards  CountFunc
}

type Stats struct {
	TotalUsers         int `json:"total_users"`
	TotalPets          int `json:"total_pets"`
	TotalTranslations  int `json:"total_translations"`
	TotalBadgesAwarded int `json:"total_badges_awarded"`
}

// Collect consulta los cuatro contadores en paralelo.
func Collect(ctx context.Context, src Sources) (Stats, error) {
	var out Stats
	g, gctx := errgroup.WithContext(ctx)

	count := func(f CountFunc, dst *int) {
		g.Go(func() error {
			if f == nil {
				return nil
			}
			n, err := f(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(src.Users, &out.TotalUsers)
	count(src.Pets, &out.TotalPets)
	count(src.Translations, &out.TotalTranslations)
	count(src.BadgeAwards, &out.TotalBadgesAwarded)

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return out, nil
}

// RegisterRoutes monta GET /admin/stats. La basic auth la pone el router.
func RegisterRoutes(r chi.Router, src Sources) {
	r.Get("/admin/stats", statsHandler(src))
}

// statsHandler godoc
// @Summary Totales para el dashboard de admin
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Success 200 {object} Stats
// @Failure 401 {string} string "Unauthorized"
// @Router /admin/stats [get]
func statsHandler(src Sources) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := Collect(r.Context(), src)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(s)
	}
}
