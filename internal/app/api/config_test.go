package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORAGE_BACKEND", "POSTGRES_DSN", "MONGO_URI", "REDIS_URL", "TOKEN_TTL_HOURS",
		"LEDGER_CREATE_DELAY_MS", "LEDGER_UPDATE_DELAY_MS", "AUTH_RATE_LIMIT_PER_MINUTE", "CORS_ALLOWED_ORIGINS", "TEMPORAL_DISABLED"} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 2*time.Second, cfg.LedgerCreateDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.LedgerUpdateDelay)
	assert.Equal(t, 20, cfg.AuthRateLimitPerMinute)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.TemporalDisabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "Postgres")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/pharmatrack")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("LEDGER_CREATE_DELAY_MS", "250")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TEMPORAL_DISABLED", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://pharmatrack.example/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.LedgerCreateDelay)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, "https://pharmatrack.example", cfg.PublicBaseURL)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown backend":       {"STORAGE_BACKEND": "sqlite"},
		"postgres without dsn":  {"STORAGE_BACKEND": "postgres", "POSTGRES_DSN": ""},
		"mongo without uri":     {"STORAGE_BACKEND": "mongo", "MONGO_URI": ""},
		"zero token ttl":        {"TOKEN_TTL_HOURS": "0"},
		"negative ledger delay": {"LEDGER_UPDATE_DELAY_MS": "-5"},
		"zero ledger delay":     {"LEDGER_CREATE_DELAY_MS": "0"},
		"non-numeric limit":     {"AUTH_RATE_LIMIT_PER_MINUTE": "lots"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("STORAGE_BACKEND", "")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
