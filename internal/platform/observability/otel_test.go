package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), "LOG_LEVEL=%q", raw)
	}
}

func TestInstrumentsFallBackToGlobalProviders(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("test"))
	assert.NotNil(t, instruments.Meter("test"))
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")

	settings := SettingsFromEnv("pharmatrack-api")
	assert.Equal(t, "pharmatrack-api", settings.ServiceName)
	assert.Equal(t, "staging", settings.Environment)
	assert.Equal(t, slog.LevelDebug, settings.LogLevel)
	assert.Equal(t, "text", settings.LogFormat)
	assert.Equal(t, ExporterNone, settings.TracesExporter)
	assert.False(t, settings.OTLPInsecure)
}

func TestNewLoggerTagsService(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Settings{ServiceName: "pharmatrack-worker", LogLevel: slog.LevelInfo, LogFormat: "json"})
	logger.Debug("hidden")
	logger.Info("ledger confirmed", slog.String("medicineId", "mdc-1"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "pharmatrack-worker", record["service"])
	assert.Equal(t, "ledger confirmed", record["msg"])
	assert.Equal(t, "mdc-1", record["medicineId"])
}

func TestInitWithoutExporter(t *testing.T) {
	instruments, shutdown, err := InitWithSettings(context.Background(), Settings{
		ServiceName:    "pharmatrack-test",
		TracesExporter: ExporterNone,
	})
	require.NoError(t, err)
	assert.NotNil(t, instruments.Tracer("test"))
	require.NoError(t, shutdown(context.Background()))
}
