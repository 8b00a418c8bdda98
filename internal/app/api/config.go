package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                   string
	StorageBackend         string
	PostgresDSN            string
	MongoURI               string
	MongoDatabase          string
	RedisURL               string
	TemporalAddress        string
	TemporalNamespace      string
	TemporalDisabled       bool
	JWTSecret              string
	TokenTTL               time.Duration
	SessionTTL             time.Duration
	LedgerRPCEndpoint      string
	LedgerCreateDelay      time.Duration
	LedgerUpdateDelay      time.Duration
	GenAIAPIKey            string
	GenAIModel             string
	CORSAllowedOrigins     []string
	AuthRateLimitPerMinute int
	PublicBaseURL          string
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		StorageBackend:     strings.ToLower(envDefault("STORAGE_BACKEND", StorageMemory)),
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		MongoURI:           strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDatabase:      envDefault("MONGO_DATABASE", "pharmatrack"),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		TemporalAddress:    envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:  envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:   isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		LedgerRPCEndpoint:  strings.TrimSpace(os.Getenv("LEDGER_RPC_ENDPOINT")),
		GenAIAPIKey:        strings.TrimSpace(os.Getenv("GENAI_API_KEY")),
		GenAIModel:         strings.TrimSpace(os.Getenv("GENAI_MODEL")),
		CORSAllowedOrigins: splitList(envDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		PublicBaseURL:      strings.TrimRight(envDefault("PUBLIC_BASE_URL", "http://localhost:3000"), "/"),
	}

	switch cfg.StorageBackend {
	case StorageMemory:
	case StoragePostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case StorageMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_BACKEND=mongo")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be memory, postgres or mongo, got %q", cfg.StorageBackend)
	}

	var err error
	if cfg.TokenTTL, err = positiveHours("TOKEN_TTL_HOURS", 24); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = positiveHours("SESSION_TTL_HOURS", 24); err != nil {
		return Config{}, err
	}
	if cfg.LedgerCreateDelay, err = positiveMillis("LEDGER_CREATE_DELAY_MS", 2000); err != nil {
		return Config{}, err
	}
	if cfg.LedgerUpdateDelay, err = positiveMillis("LEDGER_UPDATE_DELAY_MS", 1500); err != nil {
		return Config{}, err
	}
	if cfg.AuthRateLimitPerMinute, err = nonNegativeInt("AUTH_RATE_LIMIT_PER_MINUTE", 20); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func positiveHours(key string, fallback int) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.Duration(fallback) * time.Hour, nil
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(hours) * time.Hour, nil
}

func positiveMillis(key string, fallback int) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return time.Duration(fallback) * time.Millisecond, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func nonNegativeInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
