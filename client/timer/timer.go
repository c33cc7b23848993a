package timer

import "time"

// Timer measures time since construction and time between frames.
type Timer struct {
	now      func() time.Time
	epoch    time.Time
	lastPoll time.Time
}

// New starts a timer on the given clock. A nil clock means time.Now.
func New(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	start := now()
	return &Timer{
		now:      now,
		epoch:    start,
		lastPoll: start,
	}
}

// Elapsed is the time since the timer was created.
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.epoch)
}

// FrameTime returns the time since the previous FrameTime call (or since
// construction) and restarts the frame measurement. Call it once per frame.
func (t *Timer) FrameTime() time.Duration {
	current := t.now()
	dt := current.Sub(t.lastPoll)
	t.lastPoll = current
	return dt
}
