package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) Logger {
	return NewStructuredLogger(LoggerConfig{Level: "debug", Format: "json", ServiceName: "eventhub", Output: buf})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestStructuredLogger_CorrelationID(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)

	ctx := ContextWithCorrelationID(context.Background(), "req-123")
	log.Info(ctx, "hello", map[string]interface{}{"resource": "items"})

	line := decodeLine(t, &buf)
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "req-123", line["correlation_id"])
	assert.Equal(t, "items", line["resource"])
	assert.Equal(t, "eventhub", line["service"])
}

func TestStructuredLogger_ErrorAndWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf).WithFields(map[string]interface{}{"component": "store"})

	log.Error(context.Background(), "boom", errors.New("connection refused"), nil)

	line := decodeLine(t, &buf)
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "store", line["component"])
	assert.Contains(t, line["error"], "connection refused")
	_, hasCorrelation := line["correlation_id"]
	assert.False(t, hasCorrelation)
}

func TestLogMutation(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)
	requester := int64(7)

	LogMutation(context.Background(), log, "create", "item_categories", 1, &requester, nil)

	line := decodeLine(t, &buf)
	assert.Equal(t, "mutation", line["event_type"])
	assert.Equal(t, "create", line["action"])
	assert.Equal(t, float64(1), line["entity_id"])
	assert.Equal(t, float64(7), line["requester_id"])
}

func TestCorrelationIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
}
