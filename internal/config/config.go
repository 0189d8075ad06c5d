package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config agrupa toda la configuración leída de env (con .env opcional en dev).
type Config struct {
	Server        ServerConfig
	App           AppConfig
	Supabase      SupabaseConfig
	Auth          AuthConfig
	LLM           LLMConfig
	Transcription TranscriptionConfig
	Storage       StorageConfig
	Database      DatabaseConfig
	Quota         QuotaConfig
	Metrics       MetricsConfig
}

type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// Requests por segundo / burst por IP en /functions/*.
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"30"`
	// true solo si un proxy propio reescribe X-Forwarded-For.
	TrustProxy bool `envconfig:"TRUST_PROXY" default:"false"`
}

type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"pet-translator"`
	Environment string `envconfig:"APP_ENV" default:"development"`
}

// SupabaseConfig: URL del proyecto + service role key.
// La misma key autoriza el handler de puntos (server-to-server).
type SupabaseConfig struct {
	URL            string `envconfig:"SUPABASE_URL" default:""`
	AnonKey        string `envconfig:"SUPABASE_ANON_KEY" default:""`
	ServiceRoleKey string `envconfig:"SUPABASE_SERVICE_ROLE_KEY" default:""`
}

type AuthConfig struct {
	// supabase | clerk | none (none = modo dev con X-Debug-User-ID)
	Provider       string        `envconfig:"AUTH_PROVIDER" default:"supabase"`
	ClerkSecretKey string        `envconfig:"CLERK_SECRET_KEY" default:""`
	Timeout        time.Duration `envconfig:"AUTH_TIMEOUT" default:"5s"`
}

type LLMConfig struct {
	// gateway | gemini
	Provider     string        `envconfig:"LLM_PROVIDER" default:"gateway"`
	GatewayURL   string        `envconfig:"LLM_GATEWAY_URL" default:"https://ai.gateway.lovable.dev/v1"`
	GatewayKey   string        `envconfig:"LOVABLE_API_KEY" default:""`
	Model        string        `envconfig:"LLM_MODEL" default:"google/gemini-2.5-flash"`
	GeminiAPIKey string        `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel  string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	Timeout      time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
}

type TranscriptionConfig struct {
	BaseURL string        `envconfig:"TRANSCRIPTION_URL" default:"https://api.openai.com/v1"`
	APIKey  string        `envconfig:"OPENAI_API_KEY" default:""`
	Model   string        `envconfig:"TRANSCRIPTION_MODEL" default:"whisper-1"`
	Timeout time.Duration `envconfig:"TRANSCRIPTION_TIMEOUT" default:"30s"`
}

type StorageConfig struct {
	// supabase | firebase | memory
	Provider              string        `envconfig:"STORAGE_PROVIDER" default:"supabase"`
	Bucket                string        `envconfig:"STORAGE_BUCKET" default:"pet-audio"`
	FirebaseBucket        string        `envconfig:"FIREBASE_STORAGE_BUCKET" default:""`
	FirebaseCredentials   string        `envconfig:"FIREBASE_CREDENTIALS_FILE" default:"./serviceAccountKey.json"`
	MemoryPublicURLPrefix string        `envconfig:"STORAGE_MEMORY_URL" default:"http://localhost:8080/audio"`
	Timeout               time.Duration `envconfig:"STORAGE_TIMEOUT" default:"15s"`
}

type DatabaseConfig struct {
	DSN string `envconfig:"DB_DSN" default:""`
}

type QuotaConfig struct {
	// Traducciones diarias para usuarios free. 0 = sin límite.
	FreeDaily     int    `envconfig:"QUOTA_FREE_DAILY" default:"3"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:""`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MetricsConfig struct {
	User string `envconfig:"METRICS_USER" default:"admin"`
	// bcrypt hash; vacío = /metrics y /admin deshabilitados.
	PasswordHash string `envconfig:"METRICS_PASS_HASH" default:""`
}

// Address devuelve host:port.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (a *AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Environment, "development")
}

// Load lee .env (si existe) y luego variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Supabase.URL = strings.TrimRight(strings.TrimSpace(cfg.Supabase.URL), "/")
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
