package timing

// NanosPerSecond is the rollover window used by the engine loop.
const NanosPerSecond uint64 = 1_000_000_000

// TimeUnit selects the unit a runtime value is reported in.
type TimeUnit int

const (
	Hours TimeUnit = iota
	Minutes
	Seconds
	Milliseconds
	Microseconds
	Nanoseconds
)

// String returns a human-readable name for the unit.
func (u TimeUnit) String() string {
	switch u {
	case Hours:
		return "hours"
	case Minutes:
		return "minutes"
	case Seconds:
		return "seconds"
	case Milliseconds:
		return "milliseconds"
	case Microseconds:
		return "microseconds"
	case Nanoseconds:
		return "nanoseconds"
	default:
		return "unknown"
	}
}

// ParseTimeUnit maps a unit name (as returned by String) back to a TimeUnit.
func ParseTimeUnit(s string) (TimeUnit, bool) {
	for u := Hours; u <= Nanoseconds; u++ {
		if u.String() == s {
			return u, true
		}
	}
	return 0, false
}

// Sample is a value snapshot of the clock taken at an FPS rollover.
type Sample struct {
	FPS        int     // Frames counted in the window that just closed
	Frames     uint64  // Frames since Start
	Delta      float32 // Duration of the last frame in seconds
	TotalNanos uint64  // Runtime since Start
}

// FrameClock tracks time within the engine loop.
//
// It is owned by the render goroutine: Start is called once right before the
// first iteration and AddFrame exactly once per rendered frame.
type FrameClock struct {
	timer *Timer

	delta                  float32
	elapsedNanosThisSecond uint64
	totalNanos             uint64
	frameCount             int
	previousFPS            int
	frames                 uint64
}

// NewFrameClock creates a zeroed frame clock reading from clock.
// A nil clock uses the system monotonic clock.
func NewFrameClock(clock Clock) *FrameClock {
	return &FrameClock{timer: NewTimer(clock)}
}

// Start resets the timer and zeroes all accumulators.
func (c *FrameClock) Start() {
	c.timer.Reset()
	c.delta = 0
	c.totalNanos = 0
	c.elapsedNanosThisSecond = 0
	c.frameCount = 0
	c.previousFPS = 0
	c.frames = 0
}

// AddFrame records a completed frame. It returns true when the accumulated
// time in the current window reaches rolloverNanos; the frame count is then
// archived as the FPS value and the window starts over.
func (c *FrameClock) AddFrame(rolloverNanos uint64) bool {
	elapsed := c.timer.Nanoseconds()
	c.totalNanos += elapsed
	c.elapsedNanosThisSecond += elapsed
	c.frameCount++
	c.frames++

	rolled := false
	if c.elapsedNanosThisSecond >= rolloverNanos {
		c.previousFPS = c.frameCount
		c.frameCount = 0
		c.elapsedNanosThisSecond = 0
		rolled = true
	}

	c.delta = float32(float64(elapsed) / 1e9)

	c.timer.Reset()
	return rolled
}

// FPS returns the frame count of the last completed rollover window.
func (c *FrameClock) FPS() int {
	return c.previousFPS
}

// Delta returns the duration of the most recent frame in seconds.
func (c *FrameClock) Delta() float32 {
	return c.delta
}

// Frames returns the number of frames recorded since Start.
func (c *FrameClock) Frames() uint64 {
	return c.frames
}

// RuntimeHours returns the runtime since Start in hours.
func (c *FrameClock) RuntimeHours() float32 {
	return float32(float64(c.totalNanos) / 3.6e12)
}

// RuntimeMinutes returns the runtime since Start in minutes.
func (c *FrameClock) RuntimeMinutes() float32 {
	return float32(float64(c.totalNanos) / 6e10)
}

// RuntimeSeconds returns the runtime since Start in seconds.
func (c *FrameClock) RuntimeSeconds() float32 {
	return float32(float64(c.totalNanos) / 1e9)
}

// RuntimeMillis returns the runtime since Start in milliseconds.
func (c *FrameClock) RuntimeMillis() float32 {
	return float32(float64(c.totalNanos) / 1e6)
}

// RuntimeMicros returns the runtime since Start in microseconds.
func (c *FrameClock) RuntimeMicros() float32 {
	return float32(float64(c.totalNanos) / 1e3)
}

// RuntimeNanoseconds returns the raw runtime counter.
func (c *FrameClock) RuntimeNanoseconds() uint64 {
	return c.totalNanos
}

// Runtime returns the runtime in the given unit. Nanoseconds are narrowed
// to float32 like every other unit, so precision drops on long runs.
func (c *FrameClock) Runtime(unit TimeUnit) float32 {
	switch unit {
	case Hours:
		return c.RuntimeHours()
	case Minutes:
		return c.RuntimeMinutes()
	case Seconds:
		return c.RuntimeSeconds()
	case Milliseconds:
		return c.RuntimeMillis()
	case Microseconds:
		return c.RuntimeMicros()
	case Nanoseconds:
		return float32(c.totalNanos)
	}
	return 0
}

// Sample returns a snapshot of the current clock state.
func (c *FrameClock) Sample() Sample {
	return Sample{
		FPS:        c.previousFPS,
		Frames:     c.frames,
		Delta:      c.delta,
		TotalNanos: c.totalNanos,
	}
}
