package game

import "time"

// Clock is the monotonic time source behind gravity, lock delay, and the
// countdown. Injecting it lets tests advance time without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real monotonic clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// FakeClock is a manually advanced clock for tests.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a fake clock at an arbitrary fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{current: time.Unix(1_000_000, 0)}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time { return c.current }

// Advance moves the fake clock forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
