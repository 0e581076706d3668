package logger_adapter

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-service/internal/core/port"
)

func TestSlogAdapterWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug})

	logger.Info("search executed", port.Fields{"total": 14})

	out := buf.String()
	assert.Contains(t, out, "search executed")
	assert.Contains(t, out, "total=14")
}

func TestSlogAdapterLevelGate(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Debug("invisible", nil)
	logger.Info("also invisible", nil)
	assert.Empty(t, buf.String())

	logger.Warn("visible", nil)
	assert.Contains(t, buf.String(), "visible")
}

func TestSlogAdapterErrorAppendsError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug})

	logger.Error("query failed", errors.New("connection reset"), nil)

	assert.Contains(t, buf.String(), "connection reset")
}

func TestSlogAdapterWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug})

	enriched := logger.WithFields(port.Fields{"component": "app"})
	enriched.Info("hello", nil)

	assert.Contains(t, buf.String(), "component=app")
}

func TestMultiloggerFansOut(t *testing.T) {
	var first, second bytes.Buffer
	multi, err := NewMultiloggerAdapter(
		NewSlogAdapter(SlogConfig{Writer: &first, Level: slog.LevelDebug}),
		NewSlogAdapter(SlogConfig{Writer: &second, Level: slog.LevelDebug}),
	)
	require.NoError(t, err)

	multi.Info("broadcast", nil)

	assert.Contains(t, first.String(), "broadcast")
	assert.Contains(t, second.String(), "broadcast")
}

func TestMultiloggerRequiresAtLeastOne(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	assert.Error(t, err)
}
