package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel(" WARN "))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("nonsense"))
}

func TestSettingsFromEnv_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("SERVICE_VERSION", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg := settingsFromEnv()

	assert.Equal(t, "local", cfg.environment)
	assert.Equal(t, "dev", cfg.version)
	assert.Equal(t, slog.LevelInfo, cfg.logLevel)
	assert.Empty(t, cfg.logFormat)
}

func TestSettingsFromEnv_ReadsOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("SERVICE_VERSION", "1.4.2")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg := settingsFromEnv()

	assert.Equal(t, "staging", cfg.environment)
	assert.Equal(t, "1.4.2", cfg.version)
	assert.Equal(t, slog.LevelDebug, cfg.logLevel)
	assert.Equal(t, "text", cfg.logFormat)
}

func TestNewSpanExporter_StdoutWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	exporter, err := newSpanExporter(context.Background(), nil)

	require.NoError(t, err)
	assert.IsType(t, &stdouttrace.Exporter{}, exporter)
}
