// Package control gates recognized gestures behind a cooldown and runs their actions.
package control

import "time"

// DefaultCooldown is the minimum interval between two dispatched actions.
const DefaultCooldown = 1500 * time.Millisecond

// Cooldown tracks the last successful dispatch. Last is only meaningful
// when Dispatched is set.
type Cooldown struct {
	Last       time.Time
	Dispatched bool
	Interval   time.Duration
}

// Active reports whether now falls inside the cooldown window.
func (c Cooldown) Active(now time.Time) bool {
	if !c.Dispatched {
		return false
	}
	return now.Sub(c.Last) < c.Interval
}

// Remaining returns the time left in the window, never negative.
func (c Cooldown) Remaining(now time.Time) time.Duration {
	if !c.Active(now) {
		return 0
	}
	return c.Interval - now.Sub(c.Last)
}

// mark starts a new window at now.
func (c *Cooldown) mark(now time.Time) {
	c.Last = now
	c.Dispatched = true
}

// clear forgets the last dispatch.
func (c *Cooldown) clear() {
	c.Last = time.Time{}
	c.Dispatched = false
}
