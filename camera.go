package meadow

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is a viewport-sized window onto world space. Position is the
// world coordinate of the viewport's top-left corner.
//
// When bounds are set, every mutation clamps the position so the visible
// area stays inside them. An axis whose bound extent is not positive is
// left unclamped.
type Camera struct {
	viewport Vec2
	position Vec2
	bounds   *Rect

	followTarget func() Vec2
	followOffset Vec2
	followLerp   float64

	scrollTween *scrollAnim
}

// NewCamera creates a camera with the given viewport size, initial
// position and optional bounds. The position is clamped immediately.
//
// The viewport size must be positive on both axes; a camera built with
// anything else projects correctly but its clamp range is meaningless.
func NewCamera(viewport, position Vec2, bounds *Rect) *Camera {
	c := &Camera{viewport: viewport, position: position}
	if bounds != nil {
		b := *bounds
		c.bounds = &b
	}
	if viewport.X <= 0 || viewport.Y <= 0 {
		logger.WithFields(logrus.Fields{"width": viewport.X, "height": viewport.Y}).
			Error("camera viewport size must be positive")
	}
	c.clamp()
	logger.WithFields(logrus.Fields{"x": c.position.X, "y": c.position.Y}).Trace("camera constructed")
	return c
}

// Position returns the world position of the viewport's top-left corner.
func (c *Camera) Position() Vec2 {
	return c.position
}

// SetPosition moves the camera to p, then clamps.
func (c *Camera) SetPosition(p Vec2) {
	c.position = p
	c.clamp()
}

// Move offsets the camera by d, then clamps.
func (c *Camera) Move(d Vec2) {
	c.position = c.position.Add(d)
	c.clamp()
}

// SetBounds installs or replaces the world-space bounds and re-clamps.
func (c *Camera) SetBounds(r Rect) {
	c.bounds = &r
	c.clamp()
}

// ClearBounds removes the bounds. The position is left where it is.
func (c *Camera) ClearBounds() {
	c.bounds = nil
}

// Bounds returns the current bounds, if any.
func (c *Camera) Bounds() (Rect, bool) {
	if c.bounds == nil {
		return Rect{}, false
	}
	return *c.bounds, true
}

// ViewportSize returns the viewport size in screen units.
func (c *Camera) ViewportSize() Vec2 {
	return c.viewport
}

// SetViewportSize changes the viewport size (for example after the logical
// resolution changes) and re-clamps.
func (c *Camera) SetViewportSize(v Vec2) {
	c.viewport = v
	c.clamp()
}

// VisibleBounds returns the world-space rectangle currently on screen.
func (c *Camera) VisibleBounds() Rect {
	return RectFrom(c.position, c.viewport)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	return p.Sub(c.position)
}

// WorldToScreenParallax converts world coordinates to screen coordinates
// with the camera displacement scaled per axis by factor. A factor of 0
// pins the point to the screen; 1 matches WorldToScreen.
func (c *Camera) WorldToScreenParallax(p, factor Vec2) Vec2 {
	return p.Sub(c.position.Mul(factor))
}

// ScreenToWorld converts screen coordinates to world coordinates. It is the
// inverse of WorldToScreen, not of WorldToScreenParallax.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	return p.Add(c.position)
}

// Follow makes the camera track target each Update with the given offset
// and lerp factor. A lerp of 1.0 snaps immediately; lower values give
// smoother following.
func (c *Camera) Follow(target func() Vec2, offset Vec2, lerp float64) {
	c.followTarget = target
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to world position p over duration seconds.
func (c *Camera) ScrollTo(p Vec2, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.position.X), float32(p.X), duration, easeFn),
		tweenY: gween.New(float32(c.position.Y), float32(p.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances follow and scroll animation by dt seconds, then clamps.
func (c *Camera) Update(dt float32) {
	if c.followTarget != nil {
		target := c.followTarget().Add(c.followOffset)
		c.position.X += (target.X - c.position.X) * c.followLerp
		c.position.Y += (target.Y - c.position.Y) * c.followLerp
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.position.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.position.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	c.clamp()
}

// clamp restricts the position to [min, max(min, bounds.max - viewport)]
// on every axis with positive bound extent.
func (c *Camera) clamp() {
	if c.bounds == nil {
		return
	}
	b := *c.bounds
	if b.Width > 0 {
		c.position.X = clampAxis(c.position.X, b.X, b.X+b.Width-c.viewport.X)
	}
	if b.Height > 0 {
		c.position.Y = clampAxis(c.position.Y, b.Y, b.Y+b.Height-c.viewport.Y)
	}
}

// clampAxis clamps v into [lo, max(lo, hi)]. When the bounded region is
// smaller than the viewport the camera is pinned to lo.
func clampAxis(v, lo, hi float64) float64 {
	return mgl64.Clamp(v, lo, math.Max(lo, hi))
}
