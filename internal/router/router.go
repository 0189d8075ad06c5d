package router

import (
	"database/sql"
	"net/http"

	_ "pet-translator/docs"
	mem "pet-translator/internal/adapters/storage/memory"
	pg "pet-translator/internal/adapters/storage/postgres"
	"pet-translator/internal/domain/badges"
	"pet-translator/internal/domain/pets"
	"pet-translator/internal/domain/points"
	"pet-translator/internal/domain/profiles"
	"pet-translator/internal/domain/stats"
	"pet-translator/internal/domain/translations"
	"pet-translator/internal/domain/translations/canned"
	"pet-translator/internal/middleware"
	"pet-translator/internal/platform/logger"
	"pet-translator/internal/ports/auth"
	"pet-translator/internal/ports/llm"
	"pet-translator/internal/ports/quota"
	"pet-translator/internal/ports/storage"
	"pet-translator/internal/ports/transcription"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Logger logger.Logger
	// nil => registry nuevo (tests en paralelo no chocan)
	Registry *prometheus.Registry

	// Colaboradores del flujo de traducción; nil = deshabilitado.
	ObjectStore storage.ObjectStore
	Transcriber transcription.Transcriber
	Completer   llm.Completer
	Canned      *canned.Table

	// Cupo diario free; QuotaCounter nil o FreeDaily <= 0 => sin límite.
	QuotaCounter quota.Counter
	FreeDaily    int

	// Service key del endpoint de puntos (server-to-server).
	ServiceKey string

	// Basic auth de /metrics y /admin. Hash vacío => rutas cerradas.
	MetricsUser     string
	MetricsPassHash string

	// nil => /functions sin rate limit. El caller hace Close().
	RateLimiter *middleware.RateLimiter
	// Solo detrás de un proxy que pisa X-Forwarded-For / X-Real-IP; si no,
	// el cliente elige su IP y esquiva el rate limit.
	TrustProxyHeaders bool

	// Repos explícitos (tests); pisan DB/memory.
	Repos *Repos
}

// Repos agrupa los stores por módulo.
type Repos struct {
	Profiles     profiles.Repository
	Pets         pets.Repository
	Translations translations.Repository
	Badges       badges.Repository
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	httpMetrics := middleware.NewHTTPMetrics(reg)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestIDHeader)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(httpMetrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type", "x-debug-user-id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repos := buildRepos(opts)

	// Services por módulo
	profilesSvc := profiles.NewService(repos.Profiles)
	petsSvc := pets.NewService(repos.Pets)
	badgesSvc := badges.NewService(repos.Badges)
	translationsSvc := translations.NewService(translations.Deps{
		Repo:        repos.Translations,
		Profiles:    profilesSvc,
		Pets:        petsSvc,
		Badges:      badgesSvc,
		Objects:     opts.ObjectStore,
		Transcriber: opts.Transcriber,
		Completer:   opts.Completer,
		Quota:       translations.NewQuotaGuard(opts.QuotaCounter, opts.FreeDaily),
		Canned:      opts.Canned,
		Metrics:     translations.NewMetrics(reg),
		Logger:      log,
	})

	authCtx := middleware.AuthContext(opts.AuthVerifier)

	// Endpoints estilo edge function
	r.Route("/functions/v1", func(fr chi.Router) {
		if opts.RateLimiter != nil {
			fr.Use(opts.RateLimiter.Middleware)
		}
		fr.Group(func(g chi.Router) {
			g.Use(authCtx)
			translations.RegisterFunctionRoutes(g, translationsSvc)
		})
		fr.Group(func(g chi.Router) {
			g.Use(middleware.RequireServiceKey(opts.ServiceKey))
			points.RegisterRoutes(g, profilesSvc, log)
		})
	})

	// Data API de los hooks del cliente
	r.Group(func(g chi.Router) {
		g.Use(authCtx)
		pets.RegisterRoutes(g, petsSvc)
		profiles.RegisterRoutes(g, profilesSvc)
		badges.RegisterRoutes(g, badgesSvc)
		translations.RegisterRoutes(g, translationsSvc)
	})

	// Operación
	r.Group(func(g chi.Router) {
		g.Use(middleware.BasicAuth("Metrics", opts.MetricsUser, opts.MetricsPassHash))
		g.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		stats.RegisterRoutes(g, stats.Sources{
			Users:        profilesSvc.Count,
			Pets:         petsSvc.Count,
			Translations: translationsSvc.Count,
			BadgeAwards:  badgesSvc.CountAwards,
		})
	})

	return r
}

func buildRepos(opts Options) Repos {
	if opts.Repos != nil {
		return *opts.Repos
	}
	if opts.DB != nil {
		return Repos{
			Profiles:     pg.NewProfilesRepo(opts.DB),
			Pets:         pg.NewPetsRepo(opts.DB),
			Translations: pg.NewTranslationsRepo(opts.DB),
			Badges:       pg.NewBadgesRepo(opts.DB),
		}
	}
	return Repos{
		Profiles:     mem.NewProfileRepo(),
		Pets:         mem.NewPetRepo(),
		Translations: mem.NewTranslationRepo(),
		Badges:       mem.NewBadgeRepo(),
	}
}
