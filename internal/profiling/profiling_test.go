package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackAccumulates(t *testing.T) {
	var p Profiler

	p.Track("a")()
	p.Track("a")()
	p.Track("b")()

	ss := p.Snapshot()
	assert.Len(t, ss, 2)
	assert.Contains(t, ss, "a")
	assert.Contains(t, ss, "b")

	p.Reset()
	assert.Empty(t, p.Snapshot())
}

func TestTopOrdersLongestFirst(t *testing.T) {
	var p Profiler
	p.add("short", time.Millisecond)
	p.add("long", 5*time.Millisecond)
	p.add("mid", 3*time.Millisecond)
	p.add("also-mid", 3*time.Millisecond)

	top := p.Top(3)
	require.Len(t, top, 3)
	assert.Equal(t, "long", top[0].Name)
	assert.Equal(t, "also-mid", top[1].Name, "ties sort by name")
	assert.Equal(t, "mid", top[2].Name)

	assert.Len(t, p.Top(10), 4)
	assert.Empty(t, p.Top(-1))
}

func TestTopN(t *testing.T) {
	var p Profiler
	p.add("element.frame", 4200*time.Microsecond)
	p.add("softgl.draw", 2*time.Millisecond)

	assert.Equal(t, "element.frame:4.2ms, softgl.draw:2ms", p.TopN(3))
	assert.Empty(t, p.TopN(0))
}

func TestFrameProfiler(t *testing.T) {
	ResetFrame()
	t.Cleanup(ResetFrame)

	Track("x")()
	assert.Contains(t, Snapshot(), "x")
	assert.Contains(t, TopN(1), "x:")

	ResetFrame()
	assert.Empty(t, Snapshot())
}

func TestFormatMs(t *testing.T) {
	assert.Equal(t, "0ms", formatMs(0))
	assert.Equal(t, "16.6ms", formatMs(16667*time.Microsecond))
	assert.Equal(t, "1ms", formatMs(time.Millisecond))
}
