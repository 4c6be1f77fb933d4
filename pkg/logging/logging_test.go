package logging

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
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("should write json records at or above level", func(t *testing.T) {
		t.Parallel()

		// Given
		var buf bytes.Buffer
		logger := New(Config{Level: slog.LevelWarn, Format: FormatJSON, Output: &buf})

		// When
		logger.Info("hidden")
		logger.Warn("shown", "spec", "Stack")

		// Then
		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "shown", record["msg"])
		assert.Equal(t, "Stack", record["spec"])
	})

	t.Run("should default to text", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		New(Config{Level: slog.LevelInfo, Output: &buf}).Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	// Given
	cfg := DefaultConfig()

	// When
	logger := New(cfg)

	// Then
	assert.Equal(t, slog.LevelInfo, cfg.Level)
	assert.Equal(t, FormatText, cfg.Format)
	assert.NotNil(t, cfg.Output)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
