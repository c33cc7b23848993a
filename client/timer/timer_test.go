package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func TestTimer(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	tm := New(clock.now)

	assert.Zero(t, tm.Elapsed())
	assert.Zero(t, tm.FrameTime())

	clock.advance(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, tm.FrameTime())

	t.Run("frame time is not idempotent", func(t *testing.T) {
		assert.Zero(t, tm.FrameTime())
	})

	clock.advance(20 * time.Millisecond)
	assert.Equal(t, 36*time.Millisecond, tm.Elapsed())
	assert.Equal(t, 36*time.Millisecond, tm.Elapsed(), "elapsed has no side effect")
	assert.Equal(t, 20*time.Millisecond, tm.FrameTime())
	assert.Equal(t, 36*time.Millisecond, tm.Elapsed(), "frame polls do not move the epoch")
}

func TestNewDefaultsToWallClock(t *testing.T) {
	tm := New(nil)
	assert.GreaterOrEqual(t, tm.Elapsed(), time.Duration(0))
}
