package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	clerkauth "pet-translator/internal/adapters/auth/clerk"
	supaauth "pet-translator/internal/adapters/auth/supabase"
	"pet-translator/internal/adapters/llm/gateway"
	"pet-translator/internal/adapters/llm/gemini"
	fbstore "pet-translator/internal/adapters/objectstore/firebase"
	memstore "pet-translator/internal/adapters/objectstore/memory"
	supastore "pet-translator/internal/adapters/objectstore/supabase"
	memquota "pet-translator/internal/adapters/quota/memory"
	redisquota "pet-translator/internal/adapters/quota/redis"
	pg "pet-translator/internal/adapters/storage/postgres"
	"pet-translator/internal/adapters/transcription/whisper"
	"pet-translator/internal/config"
	"pet-translator/internal/domain/badges"
	"pet-translator/internal/middleware"
	"pet-translator/internal/platform/logger"
	"pet-translator/internal/ports/auth"
	"pet-translator/internal/ports/llm"
	"pet-translator/internal/ports/quota"
	"pet-translator/internal/ports/storage"
	"pet-translator/internal/ports/transcription"
	"pet-translator/internal/router"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: logger.ParseFormat(os.Getenv("LOG_FORMAT")),
		App:    cfg.App.Name,
	})
	defer func() {
		if zl, ok := log.(*logger.ZapLogger); ok {
			_ = zl.Sync()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	verifier, err := buildVerifier(cfg)
	if err != nil {
		return err
	}

	var db *sql.DB
	if dsn := strings.TrimSpace(cfg.Database.DSN); dsn != "" {
		db, err = pg.Open(dsn)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		if err := pg.Migrate(ctx, db); err != nil {
			return err
		}
		if err := pg.NewBadgesRepo(db).Seed(ctx, badges.DefaultCatalog(time.Now())); err != nil {
			return fmt.Errorf("seed badges: %w", err)
		}
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	objects, err := buildObjectStore(ctx, cfg)
	if err != nil {
		if !cfg.App.IsDevelopment() {
			return err
		}
		log.Warn("object store not configured, using in-memory store", map[string]any{"error": err})
		objects = memstore.New(cfg.Storage.MemoryPublicURLPrefix)
	}
	completer, err := buildCompleter(ctx, cfg)
	if err != nil {
		log.Warn("translation model not configured", map[string]any{"error": err})
	}
	transcriber, err := buildTranscriber(cfg)
	if err != nil {
		log.Info("transcription disabled", map[string]any{"reason": err.Error()})
	}

	counter, closeCounter, err := buildQuotaCounter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCounter()

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	defer limiter.Close()

	handler := router.NewRouter(router.Options{
		AuthVerifier:    verifier,
		DB:              db,
		Logger:          log,
		ObjectStore:     objects,
		Transcriber:     transcriber,
		Completer:       completer,
		QuotaCounter:    counter,
		FreeDaily:       cfg.Quota.FreeDaily,
		ServiceKey:      cfg.Supabase.ServiceRoleKey,
		MetricsUser:     cfg.Metrics.User,
		MetricsPassHash: cfg.Metrics.PasswordHash,
		RateLimiter:     limiter,

		TrustProxyHeaders: cfg.Server.TrustProxy,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.App.Environment})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildVerifier: none solo se acepta en development (X-Debug-User-ID).
func buildVerifier(cfg *config.Config) (auth.AuthVerifier, error) {
	switch strings.ToLower(cfg.Auth.Provider) {
	case "none":
		if !cfg.App.IsDevelopment() {
			return nil, errors.New("AUTH_PROVIDER=none is only allowed with APP_ENV=development")
		}
		return nil, nil
	case "clerk":
		if cfg.Auth.ClerkSecretKey == "" {
			return nil, errors.New("CLERK_SECRET_KEY is required for AUTH_PROVIDER=clerk")
		}
		return clerkauth.NewVerifier(cfg.Auth.ClerkSecretKey), nil
	case "supabase", "":
		client := supaauth.NewClient(supaauth.Config{
			URL:     cfg.Supabase.URL,
			APIKey:  firstNonEmpty(cfg.Supabase.AnonKey, cfg.Supabase.ServiceRoleKey),
			Timeout: cfg.Auth.Timeout,
		})
		if !client.IsConfigured() {
			return nil, errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required for AUTH_PROVIDER=supabase")
		}
		return supaauth.NewVerifier(client), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", cfg.Auth.Provider)
	}
}

func buildObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	switch strings.ToLower(cfg.Storage.Provider) {
	case "memory":
		return memstore.New(cfg.Storage.MemoryPublicURLPrefix), nil
	case "firebase":
		return fbstore.New(ctx, firstNonEmpty(cfg.Storage.FirebaseBucket, cfg.Storage.Bucket), cfg.Storage.FirebaseCredentials)
	case "supabase", "":
		return supastore.New(supastore.Config{
			URL:        cfg.Supabase.URL,
			ServiceKey: cfg.Supabase.ServiceRoleKey,
			Bucket:     cfg.Storage.Bucket,
			Timeout:    cfg.Storage.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown STORAGE_PROVIDER %q", cfg.Storage.Provider)
	}
}

// buildCompleter devuelve (nil, err) si falta la key: el server arranca igual
// y la traducción live responde "translation model not configured".
func buildCompleter(ctx context.Context, cfg *config.Config) (llm.Completer, error) {
	switch strings.ToLower(cfg.LLM.Provider) {
	case "gemini":
		c, err := gemini.New(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "gateway", "":
		c, err := gateway.New(gateway.Config{
			BaseURL: cfg.LLM.GatewayURL,
			APIKey:  cfg.LLM.GatewayKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLM.Provider)
	}
}

func buildTranscriber(cfg *config.Config) (transcription.Transcriber, error) {
	t, err := whisper.New(whisper.Config{
		BaseURL: cfg.Transcription.BaseURL,
		APIKey:  cfg.Transcription.APIKey,
		Model:   cfg.Transcription.Model,
		Timeout: cfg.Transcription.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func buildQuotaCounter(ctx context.Context, cfg *config.Config) (quota.Counter, func(), error) {
	if cfg.Quota.FreeDaily <= 0 {
		return nil, func() {}, nil
	}
	if addr := strings.TrimSpace(cfg.Quota.RedisAddr); addr != "" {
		c, err := redisquota.New(ctx, redisquota.Config{
			Addr:     addr,
			Password: cfg.Quota.RedisPassword,
			DB:       cfg.Quota.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	}
	c := memquota.New()
	return c, func() { _ = c.Close() }, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
