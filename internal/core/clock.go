package core

import "time"

//go:generate go tool mockgen -destination=./mocks/clock_mock.go -package=mocks . Clock

// Clock is the monotonic time source for the simulation.
// Now returns the time elapsed since an arbitrary fixed origin.
type Clock interface {
	Now() time.Duration
}

// Ticker is implemented by clocks the game loop drives one frame at a time.
type Ticker interface {
	Tick()
}

// TickClock is a deterministic Clock that advances by a fixed step per Tick.
// It is the default clock: one tick equals one simulation frame.
type TickClock struct {
	now  time.Duration
	step time.Duration
}

// NewTickClock creates a clock advancing 1/tickRate seconds per Tick.
func NewTickClock(tickRate int) *TickClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &TickClock{step: time.Second / time.Duration(tickRate)}
}

// Now returns the accumulated time.
func (c *TickClock) Now() time.Duration {
	return c.now
}

// Tick advances the clock by one frame.
func (c *TickClock) Tick() {
	c.now += c.step
}

// SystemClock reads the process monotonic clock. Frames then last as long
// as the platform loop takes between steps.
type SystemClock struct {
	origin time.Time
}

// NewSystemClock creates a SystemClock with its origin at the current instant.
func NewSystemClock() *SystemClock {
	return &SystemClock{origin: time.Now()}
}

// Now returns the wall time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.origin)
}
