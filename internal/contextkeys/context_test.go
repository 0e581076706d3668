package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-service/internal/core/port"
)

type recordingLogger struct {
	noopLogger
	infos []string
}

func (r *recordingLogger) Info(msg string, fields port.Fields) {
	r.infos = append(r.infos, msg)
}

func TestLoggerRoundTrip(t *testing.T) {
	rec := &recordingLogger{}
	ctx := ContextWithLogger(context.Background(), rec)

	LoggerFromContext(ctx).Info("hello", nil)

	require.Len(t, rec.infos, 1)
	assert.Equal(t, "hello", rec.infos[0])
}

func TestLoggerFallbackIsNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	require.NotNil(t, logger)

	// Must not panic without a configured logger.
	logger.Info("ignored", nil)
	logger.WithFields(port.Fields{"k": "v"}).Debug("also ignored", nil)
}

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "trace-123")
	assert.Equal(t, "trace-123", TraceIDFromContext(ctx))
	assert.Equal(t, "", TraceIDFromContext(context.Background()))
}
