// Package timing provides the monotonic frame timer and the frame clock that
// accumulates per-frame delta, total runtime and frames per second.
package timing

import "time"

// Clock is a monotonic time source. Now returns the time elapsed since an
// arbitrary fixed epoch and never goes backwards.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the runtime's monotonic clock.
type SystemClock struct {
	epoch time.Time // Cached at creation to provide a stable monotonic base
}

// NewSystemClock creates a SystemClock anchored at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

// Now returns the monotonic time since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.epoch)
}

// Timer measures whole nanoseconds elapsed since its last Reset.
type Timer struct {
	clock Clock
	mark  time.Duration
}

// NewTimer creates a timer on the given clock, reset to the current instant.
// A nil clock uses the system monotonic clock.
func NewTimer(clock Clock) *Timer {
	if clock == nil {
		clock = NewSystemClock()
	}
	t := &Timer{clock: clock}
	t.Reset()
	return t
}

// Reset records the current instant as the new zero point.
func (t *Timer) Reset() {
	t.mark = t.clock.Now()
}

// Nanoseconds returns the nanoseconds elapsed since the last Reset.
func (t *Timer) Nanoseconds() uint64 {
	d := t.clock.Now() - t.mark
	if d < 0 {
		return 0
	}
	return uint64(d)
}
