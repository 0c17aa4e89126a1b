package profiler

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfiler_TickBelowInterval(t *testing.T) {
	p := NewProfiler()
	assert.False(t, p.Tick(time.Millisecond), "no report before the interval elapses")
	assert.False(t, p.Tick(time.Millisecond))
}

func TestProfiler_ReportsGCDeltaPerInterval(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	p := NewProfiler()
	p.Tick(time.Millisecond)
	time.Sleep(1100 * time.Millisecond)

	assert.True(t, p.Tick(2*time.Millisecond), "a report fires once the interval has elapsed")
	out := buf.String()
	assert.Contains(t, out, "[Profiler]")
	assert.Contains(t, out, "GC: +", "GC activity is reported as a delta for the interval, not a running total")
	assert.Contains(t, out, "Advances:")

	// The stat windows reset after a report.
	buf.Reset()
	assert.False(t, p.Tick(time.Millisecond))
	assert.Empty(t, buf.String())
}
