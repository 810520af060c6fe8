package profiler

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	var out bytes.Buffer
	start := time.Unix(100, 0)
	clock := start

	p := NewProfiler(time.Second)
	p.logger = zerolog.New(&out)
	p.now = func() time.Time { return clock }
	p.lastTime = start

	for i := 0; i < 29; i++ {
		clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	clock = start.Add(2 * time.Second)
	require.True(t, p.Tick())
	assert.InDelta(t, 15.0, p.Last().StepsPerSecond, 1e-9)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "engine stats", entry["message"])
	assert.InDelta(t, 15.0, entry["steps_per_sec"], 1e-9)

	clock = clock.Add(10 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestDefaultInterval(t *testing.T) {
	p := NewProfiler(0)
	assert.Equal(t, time.Second, p.updateInterval)
}
