package sim

import "time"

// Clock supplies the current time to the flight state and runner.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system clock.
type WallClock struct{}

func (WallClock) Now() time.Time { return time.Now() }

// ManualClock only moves when advanced. It is used by headless runs and tests,
// where simulated time should advance exactly one tick per step.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// AdvanceTo moves the clock to t. Times before the current one are ignored.
func (c *ManualClock) AdvanceTo(t time.Time) {
	if t.After(c.now) {
		c.now = t
	}
}

// AdvanceSeconds moves the clock forward by s seconds.
func (c *ManualClock) AdvanceSeconds(s float64) {
	c.Advance(time.Duration(s * float64(time.Second)))
}
