package sdl2

import (
	"time"

	"github.com/phanxgames/meadow"
	"github.com/veandco/go-sdl2/sdl"
)

// Clock measures frame time and optionally caps the frame rate.
type Clock struct {
	last      time.Time
	delta     time.Duration
	target    time.Duration
	timeScale float64

	now   func() time.Time
	sleep func(time.Duration)
}

// NewClock starts a clock at the current time so the first frame does not
// report a large delta.
func NewClock() *Clock {
	return newClock(time.Now, func(d time.Duration) { sdl.Delay(uint32(d.Milliseconds())) })
}

func newClock(now func() time.Time, sleep func(time.Duration)) *Clock {
	return &Clock{last: now(), timeScale: 1, now: now, sleep: sleep}
}

// SetTargetFPS caps the frame rate. Zero or less means unlimited.
func (c *Clock) SetTargetFPS(fps int) {
	if fps <= 0 {
		c.target = 0
		meadow.Logger().Info("target FPS set to unlimited")
		return
	}
	c.target = time.Second / time.Duration(fps)
	meadow.Logger().WithField("fps", fps).Info("target FPS set")
}

// SetTimeScale scales the delta returned by Delta. Negative values are
// clamped to 0.
func (c *Clock) SetTimeScale(scale float64) {
	if scale < 0 {
		meadow.Logger().Warn("time scale cannot be negative, clamping to 0")
		scale = 0
	}
	c.timeScale = scale
}

// Tick ends the previous frame. With a target set it first waits out the
// rest of the frame budget.
func (c *Clock) Tick() {
	elapsed := c.now().Sub(c.last)
	if c.target > 0 && elapsed < c.target {
		c.sleep(c.target - elapsed)
		elapsed = c.now().Sub(c.last)
	}
	c.delta = elapsed
	c.last = c.now()
}

// Delta returns the scaled duration of the last frame in seconds.
func (c *Clock) Delta() float32 {
	return float32(c.delta.Seconds() * c.timeScale)
}

// UnscaledDelta returns the duration of the last frame in seconds.
func (c *Clock) UnscaledDelta() float32 {
	return float32(c.delta.Seconds())
}
