package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/config"
)

func TestSetup(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		log, err := Setup(config.ServerConfig{Port: 8080, LogLevel: level})
		require.NoError(t, err, "level %q", level)
		assert.NotNil(t, log)
	}

	_, err := Setup(config.ServerConfig{Port: 8080, LogLevel: "verbose"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range tests {
		level, err := parseLevel(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, level)
	}
}

func TestContextRoundTrip(t *testing.T) {
	base := slog.Default()

	assert.Same(t, base, FromContext(context.Background()))

	scoped := base.With("trace_id", "abc123")
	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))

	fallback := slog.Default().With("component", "test")
	assert.Same(t, scoped, FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
}
