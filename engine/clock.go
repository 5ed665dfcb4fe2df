package engine

import "time"

// FrameClock throttles the playback loop to a target frame rate
type FrameClock struct {
	tp    TimeProvider
	last  time.Time
	frame time.Duration // duration of the previous frame including the wait
}

// NewFrameClock creates a clock reading tp, started now
func NewFrameClock(tp TimeProvider) *FrameClock {
	return &FrameClock{tp: tp, last: tp.Now()}
}

// Tick blocks until at least 1/rate has passed since the previous Tick and
// returns the full frame duration. A non-positive rate does not wait.
func (c *FrameClock) Tick(rate float64) time.Duration {
	now := c.tp.Now()
	if rate > 0 {
		target := time.Duration(float64(time.Second) / rate)
		if wait := target - now.Sub(c.last); wait > 0 {
			c.tp.Sleep(wait)
			now = c.tp.Now()
		}
	}

	c.frame = now.Sub(c.last)
	c.last = now
	return c.frame
}

// FPS returns the measured rate of the previous frame, 0 before the first Tick
func (c *FrameClock) FPS() float64 {
	if c.frame <= 0 {
		return 0
	}
	return float64(time.Second) / float64(c.frame)
}
