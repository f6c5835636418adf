package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Logger = (*SlogAdapter)(nil)

func newBufferedAdapter(level slog.Level) (*SlogAdapter, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))
	return NewSlogAdapter(logger), &buf
}

func TestNewSlogAdapter_NilSelectsDefault(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	require.NotNil(t, adapter)
	assert.Same(t, slog.Default(), adapter.Logger())
	assert.Same(t, slog.Default(), DefaultLogger().Logger())
}

func TestSlogAdapter_Levels(t *testing.T) {
	tests := []struct {
		level string
		log   func(Logger)
	}{
		{"DEBUG", func(l Logger) { l.Debug("listing servers", "zone", "is1a") }},
		{"INFO", func(l Logger) { l.Info("listing servers", "zone", "is1a") }},
		{"WARN", func(l Logger) { l.Warn("listing servers", "zone", "is1a") }},
		{"ERROR", func(l Logger) { l.Error("listing servers", "zone", "is1a") }},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			adapter, buf := newBufferedAdapter(slog.LevelDebug)
			tt.log(adapter)

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, tt.level, record["level"])
			assert.Equal(t, "listing servers", record["msg"])
			assert.Equal(t, "is1a", record["zone"])
		})
	}
}

func TestSlogAdapter_RespectsHandlerLevel(t *testing.T) {
	adapter, buf := newBufferedAdapter(slog.LevelInfo)
	adapter.Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestSlogAdapterWith(t *testing.T) {
	adapter, buf := newBufferedAdapter(slog.LevelInfo)

	adapter.With("zone", "is1a").Info("scoped message")
	assert.Contains(t, buf.String(), `"zone":"is1a"`)
	assert.Contains(t, buf.String(), "scoped message")

	buf.Reset()
	adapter.Info("unscoped message")
	assert.NotContains(t, buf.String(), "is1a")
}
