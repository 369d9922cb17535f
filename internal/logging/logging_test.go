package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, time.UTC).With("service")

	log.Info("spot stored", map[string]any{"name": "Beach"})
	log.Error("fetch failed", errors.New("unavailable"), nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "spot stored", lines[0]["msg"])
	assert.Equal(t, "Beach", lines[0]["name"])
	assert.Equal(t, "service", lines[0]["component"])
	assert.NotEmpty(t, lines[0]["ts"])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "unavailable", lines[1]["error"])
}

func TestLogger_Event(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, nil)

	log.Event(map[string]any{"component": "database", "status": "error"})
	log.Event(map[string]any{"component": "database", "status": "success"})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "info", lines[1]["level"])
	assert.Equal(t, "database", lines[1]["component"])
}

func TestLogger_Timezone(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("WIB", 7*60*60)
	New(&buf, loc).Info("x", nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	ts, err := time.Parse(time.RFC3339Nano, lines[0]["ts"].(string))
	require.NoError(t, err)
	_, offset := ts.Zone()
	assert.Equal(t, 7*60*60, offset)
}
