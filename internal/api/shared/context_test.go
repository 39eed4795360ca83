package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID in original context")

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	assert.Len(t, traceID, 32, "Expected trace ID length to be 32 hex characters (16 bytes)")

	assert.Empty(t, GetTraceID(ctx), "Expected original context to remain unchanged")
}

func TestWithTraceID(t *testing.T) {
	t.Parallel()

	ctx := WithTraceID(context.Background(), "fixed-trace")
	assert.Equal(t, "fixed-trace", GetTraceID(ctx))
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx), "Expected empty trace ID when context has invalid type")
}

func TestGenerateTraceID(t *testing.T) {
	t.Parallel()

	const iterations = 1000
	seen := make(map[string]bool, iterations)
	for i := 0; i < iterations; i++ {
		id := generateTraceID()
		require.Len(t, id, 32)
		_, err := hex.DecodeString(id)
		require.NoError(t, err, "Expected valid hex string")
		assert.False(t, seen[id], "Expected all trace IDs to be unique")
		seen[id] = true
	}
}

func TestFallbackTraceID(t *testing.T) {
	t.Parallel()

	id := fallbackTraceID()
	assert.Len(t, id, 32)
	_, err := hex.DecodeString(id)
	assert.NoError(t, err, "Fallback ID must be valid hex")
	assert.NotEqual(t, id, fallbackTraceID())
}
