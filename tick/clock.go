package tick

import (
	"sync/atomic"
	"time"
)

// TimeSource supplies the clock steps are measured against; the host passes
// its pausable game clock
type TimeSource interface {
	Now() time.Time
}

// Clock turns "time since the last step" into the partial-step fraction
// frames pass to Sample
// Thread-Safety: Mark from the step goroutine, Fraction from any goroutine
type Clock struct {
	src      TimeSource
	interval int64        // nanoseconds per step
	last     atomic.Int64 // UnixNano of the last completed step, 0 = none yet
}

// NewClock creates a clock for steps every interval
func NewClock(src TimeSource, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second / 20
	}
	return &Clock{src: src, interval: int64(interval)}
}

// Mark records that a step just completed
func (c *Clock) Mark() {
	c.last.Store(c.src.Now().UnixNano())
}

// Fraction returns how far now is between the last step and the next one,
// clamped to [0,1]. Before the first step it is 1, so Sample returns current
func (c *Clock) Fraction() float64 {
	last := c.last.Load()
	if last == 0 {
		return 1
	}
	elapsed := c.src.Now().UnixNano() - last
	return clamp01(float64(elapsed) / float64(c.interval))
}

// Interval returns the step interval
func (c *Clock) Interval() time.Duration {
	return time.Duration(c.interval)
}
