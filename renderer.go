package meadow

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Renderer turns sprites and world positions into backend draw calls.
// It does not own the surface, the texture provider or the cameras it is
// handed; all three must outlive it.
//
// Per-draw failures (missing texture, invalid region, rejected draw) are
// logged and the draw is skipped so one bad asset never stops a frame.
type Renderer[T any] struct {
	surface  Surface[T]
	textures TextureProvider[T]
	stats    FrameStats
}

// NewRenderer creates a Renderer drawing to surface with textures resolved
// through textures. Both are required. The draw color starts as opaque black.
func NewRenderer[T any](surface Surface[T], textures TextureProvider[T]) (*Renderer[T], error) {
	logger.Trace("constructing renderer")
	if surface == nil {
		return nil, fmt.Errorf("meadow: renderer: surface: %w", ErrNilDependency)
	}
	if textures == nil {
		return nil, fmt.Errorf("meadow: renderer: texture provider: %w", ErrNilDependency)
	}
	r := &Renderer[T]{surface: surface, textures: textures}
	r.SetDrawColor(ColorBlack)
	logger.Trace("renderer constructed")
	return r, nil
}

// DrawSprite draws sprite with its top-left corner at pos in world space,
// scaled by scale and rotated by angle degrees around its center.
// Sprites entirely outside the camera viewport are culled.
func (r *Renderer[T]) DrawSprite(cam *Camera, sprite Sprite, pos, scale Vec2, angle float64) {
	tex, src, ok := r.resolve(sprite)
	if !ok {
		return
	}

	screen := cam.WorldToScreen(pos)
	dst := RectFrom(screen, src.Size().Mul(scale))
	if !r.validDst(sprite, dst) {
		return
	}

	if !inViewport(dst, cam.ViewportSize()) {
		r.stats.Culled++
		return
	}

	if err := r.surface.DrawTexture(tex, src, dst, angle, sprite.Flipped()); err != nil {
		r.stats.Failures++
		logger.WithField("path", sprite.TexturePath()).WithError(err).Error("render rotated texture failed")
		return
	}
	r.stats.Draws++
}

// DrawParallax tiles sprite across the viewport as a background layer.
// The layer origin pos is projected with scrollFactor; on each axis where
// repeat is set the tiles cover the whole viewport, otherwise a single
// tile is drawn, cut off at the viewport edge.
func (r *Renderer[T]) DrawParallax(cam *Camera, sprite Sprite, pos, scrollFactor Vec2, repeat Repeat, scale Vec2) {
	tex, src, ok := r.resolve(sprite)
	if !ok {
		return
	}

	screen := cam.WorldToScreenParallax(pos, scrollFactor)
	tile := src.Size().Mul(scale)
	if tile.X <= 0 || tile.Y <= 0 {
		r.stats.Skipped++
		logger.WithFields(logrus.Fields{"path": sprite.TexturePath(), "width": tile.X, "height": tile.Y}).
			Error("parallax tile size is invalid")
		return
	}

	start, stop := parallaxRange(screen, tile, cam.ViewportSize(), repeat)

	for y := start.Y; y < stop.Y; y += tile.Y {
		for x := start.X; x < stop.X; x += tile.X {
			dst := Rect{X: x, Y: y, Width: tile.X, Height: tile.Y}
			if err := r.surface.DrawTexture(tex, src, dst, 0, false); err != nil {
				r.stats.Failures++
				logger.WithField("path", sprite.TexturePath()).WithError(err).Error("render parallax texture failed")
				return
			}
			r.stats.Tiles++
		}
	}
}

// parallaxRange computes the half-open tile range [start, stop) per axis.
// Repeating axes start one tile before the wrapped screen position so the
// pattern scrolls without seams.
func parallaxRange(screen, tile, viewport Vec2, repeat Repeat) (start, stop Vec2) {
	if repeat.X {
		start.X = floorMod(screen.X, tile.X) - tile.X
		stop.X = viewport.X
	} else {
		start.X = screen.X
		stop.X = math.Min(screen.X+tile.X, viewport.X)
	}
	if repeat.Y {
		start.Y = floorMod(screen.Y, tile.Y) - tile.Y
		stop.Y = viewport.Y
	} else {
		start.Y = screen.Y
		stop.Y = math.Min(screen.Y+tile.Y, viewport.Y)
	}
	return start, stop
}

// floorMod returns x mod m in [0, m) for m > 0.
func floorMod(x, m float64) float64 {
	return x - m*math.Floor(x/m)
}

// DrawUISprite draws sprite at its natural size with its top-left corner
// at pos in screen space. The camera is not involved.
func (r *Renderer[T]) DrawUISprite(sprite Sprite, pos Vec2) {
	r.drawUI(sprite, pos, nil)
}

// DrawUISpriteSize draws sprite stretched to size at pos in screen space.
func (r *Renderer[T]) DrawUISpriteSize(sprite Sprite, pos, size Vec2) {
	r.drawUI(sprite, pos, &size)
}

func (r *Renderer[T]) drawUI(sprite Sprite, pos Vec2, size *Vec2) {
	tex, src, ok := r.resolve(sprite)
	if !ok {
		return
	}

	dst := RectFrom(pos, src.Size())
	if size != nil {
		dst.Width, dst.Height = size.X, size.Y
	}
	if !r.validDst(sprite, dst) {
		return
	}

	if err := r.surface.DrawTexture(tex, src, dst, 0, sprite.Flipped()); err != nil {
		r.stats.Failures++
		logger.WithField("path", sprite.TexturePath()).WithError(err).Error("render UI sprite failed")
		return
	}
	r.stats.Draws++
}

// validDst reports whether dst has a positive size, logging and counting
// the skipped draw when it does not.
func (r *Renderer[T]) validDst(sprite Sprite, dst Rect) bool {
	if dst.Valid() {
		return true
	}
	r.stats.Skipped++
	logger.WithFields(logrus.Fields{"path": sprite.TexturePath(), "width": dst.Width, "height": dst.Height}).
		WithError(ErrInvalidGeometry).Error("destination size is invalid")
	return false
}

// resolve fetches the sprite's texture and source region. It reports false
// when the draw must be skipped.
func (r *Renderer[T]) resolve(sprite Sprite) (T, Rect, bool) {
	path := sprite.TexturePath()
	tex, err := r.textures.Texture(path)
	if err != nil {
		r.stats.Skipped++
		logger.WithField("path", path).WithError(err).Error("unable to get texture")
		return tex, Rect{}, false
	}

	if region, ok := sprite.SourceRegion(); ok {
		if !region.Valid() {
			r.stats.Skipped++
			logger.WithFields(logrus.Fields{"path": path, "region": region}).Error("source region size is invalid")
			return tex, Rect{}, false
		}
		return tex, region, true
	}

	size, err := r.textures.TextureSize(path)
	if err != nil {
		r.stats.Skipped++
		logger.WithField("path", path).WithError(err).Error("unable to get texture size")
		return tex, Rect{}, false
	}
	region := RectFrom(Vec2{}, size)
	if !region.Valid() {
		r.stats.Skipped++
		logger.WithFields(logrus.Fields{"path": path, "region": region}).Error("texture size is invalid")
		return tex, Rect{}, false
	}
	return tex, region, true
}

// inViewport reports whether rect overlaps the viewport [0,0]..viewport.
// Rectangles touching an edge count as visible.
func inViewport(rect Rect, viewport Vec2) bool {
	return rect.X+rect.Width >= 0 && rect.X <= viewport.X &&
		rect.Y+rect.Height >= 0 && rect.Y <= viewport.Y
}

// SetDrawColor sets the color used by ClearScreen.
func (r *Renderer[T]) SetDrawColor(c Color) {
	if err := r.surface.SetDrawColor(c); err != nil {
		logger.WithError(err).Error("set render draw color failed")
	}
}

// ClearScreen clears the surface with the draw color and starts a new
// frame of statistics.
func (r *Renderer[T]) ClearScreen() {
	r.stats = FrameStats{}
	if err := r.surface.Clear(); err != nil {
		logger.WithError(err).Error("clear renderer failed")
	}
}

// Present shows the frame.
func (r *Renderer[T]) Present() {
	r.stats.log()
	if err := r.surface.Present(); err != nil {
		logger.WithError(err).Error("present failed")
	}
}

// Stats returns the statistics gathered since the last ClearScreen.
func (r *Renderer[T]) Stats() FrameStats {
	return r.stats
}
