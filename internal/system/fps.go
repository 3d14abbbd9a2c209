package system

import "time"

// FrameCounter measures frames per second over one-second windows. It only
// observes; nothing in the pipeline reads it.
type FrameCounter struct {
	windowStart time.Time
	inWindow    int
	fps         float64
	total       uint64
}

// Update records one frame at now and reports whether FPS was recomputed.
func (c *FrameCounter) Update(now time.Time) bool {
	c.total++
	if c.windowStart.IsZero() {
		c.windowStart = now
	}
	c.inWindow++
	elapsed := now.Sub(c.windowStart)
	if elapsed < time.Second {
		return false
	}
	c.fps = float64(c.inWindow) / elapsed.Seconds()
	c.inWindow = 0
	c.windowStart = now
	return true
}

// FPS returns the rate computed at the end of the last full window.
func (c *FrameCounter) FPS() float64 { return c.fps }

// Frames returns the number of frames recorded.
func (c *FrameCounter) Frames() uint64 { return c.total }
