package internal

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.raw))
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() {
		SetLogLevel(slog.LevelInfo)
		SetInternalLogLevel(slog.LevelError)
	})

	SetRawLogLevel("debug")
	assert.True(t, GetLogger().Enabled(context.Background(), slog.LevelDebug))

	SetInternalLogLevel(slog.LevelWarn)
	assert.False(t, GetInternalLogger().Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, GetInternalLogger().Enabled(context.Background(), slog.LevelWarn))
}
