package corost

import "time"

// fakeClock is an adjustable clock for tests that need to control timer
// firing without sleeping for real durations (WithClock's stated purpose).
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
