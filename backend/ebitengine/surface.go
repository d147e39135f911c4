// Package ebitengine is the default meadow backend, built on Ebitengine.
//
// It provides the draw Surface, texture and font loaders, and a Runtime that
// wires them with the audio loader into a ResourceManager and a Renderer and
// drives the frame loop.
package ebitengine

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/meadow"
)

// Surface draws onto an *ebiten.Image, normally the screen passed to
// ebiten.Game.Draw. Set the target with SetTarget at the start of each
// frame.
type Surface struct {
	target *ebiten.Image
	clear  color.RGBA

	// Filter is used when textures are scaled.
	Filter ebiten.Filter

	screenshots *screenshotQueue
	fps         *fpsOverlay
}

// NewSurface creates a surface without a target. Screenshots are written
// to screenshotDir.
func NewSurface(screenshotDir string) *Surface {
	return &Surface{
		clear:       color.RGBA{A: 0xff},
		Filter:      ebiten.FilterNearest,
		screenshots: &screenshotQueue{dir: screenshotDir},
	}
}

// SetTarget sets the image drawn to.
func (s *Surface) SetTarget(img *ebiten.Image) { s.target = img }

// Target returns the image drawn to.
func (s *Surface) Target() *ebiten.Image { return s.target }

// ShowFPS toggles the FPS/TPS overlay drawn at Present.
func (s *Surface) ShowFPS(show bool) {
	switch {
	case show && s.fps == nil:
		s.fps = newFPSOverlay()
	case !show && s.fps != nil:
		s.fps.dispose()
		s.fps = nil
	}
}

// Screenshot queues a labeled screenshot of the next presented frame.
func (s *Surface) Screenshot(label string) {
	s.screenshots.add(label)
}

func (s *Surface) checkTarget(op string) error {
	if s.target == nil {
		return fmt.Errorf("ebitengine: %s: no target image: %w", op, meadow.ErrBackend)
	}
	return nil
}

// DrawTexture draws the src region of tex into dst.
func (s *Surface) DrawTexture(tex *ebiten.Image, src, dst meadow.Rect, angle float64, flip bool) error {
	if err := s.checkTarget("draw"); err != nil {
		return err
	}
	if tex == nil {
		return fmt.Errorf("ebitengine: draw: nil texture: %w", meadow.ErrBackend)
	}
	rect := pixelRect(src)
	if rect.Empty() || !rect.In(tex.Bounds()) {
		return fmt.Errorf("ebitengine: draw: region %v not within texture %v: %w", rect, tex.Bounds(), meadow.ErrBackend)
	}
	sub := tex.SubImage(rect).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{GeoM: geoM(drawTransform(toRect(rect), dst, angle, flip))}
	op.Filter = s.Filter
	s.target.DrawImage(sub, op)
	return nil
}

// pixelRect rounds each edge of r to the nearest pixel.
func pixelRect(r meadow.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)), int(math.Round(r.Y+r.Height)),
	)
}

func toRect(r image.Rectangle) meadow.Rect {
	return meadow.Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), Width: float64(r.Dx()), Height: float64(r.Dy())}
}

// DrawText draws str with its top-left corner at pos.
func (s *Surface) DrawText(font *Font, str string, pos meadow.Vec2, c meadow.Color) error {
	if err := s.checkTarget("draw text"); err != nil {
		return err
	}
	if font == nil || font.face == nil {
		return fmt.Errorf("ebitengine: draw text: font is closed: %w", meadow.ErrBackend)
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	op.LineSpacing = font.LineHeight()
	text.Draw(s.target, str, font.face, op)
	return nil
}

// Clear fills the target with the draw color.
func (s *Surface) Clear() error {
	if err := s.checkTarget("clear"); err != nil {
		return err
	}
	s.target.Fill(s.clear)
	return nil
}

// Present finishes the frame: it draws the FPS overlay if enabled and
// writes queued screenshots. Ebitengine shows the screen itself once Draw
// returns.
func (s *Surface) Present() error {
	if err := s.checkTarget("present"); err != nil {
		return err
	}
	if s.fps != nil {
		s.fps.draw(s.target)
	}
	s.screenshots.flush(s.target)
	return nil
}

// SetDrawColor sets the color used by Clear.
func (s *Surface) SetDrawColor(c meadow.Color) error {
	r, g, b, a := c.RGBA8()
	// color.RGBA is premultiplied
	s.clear = premultiply(color.RGBA{R: r, G: g, B: b, A: a})
	return nil
}

func premultiply(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(c.A) / 0xff),
		G: uint8(uint16(c.G) * uint16(c.A) / 0xff),
		B: uint8(uint16(c.B) * uint16(c.A) / 0xff),
		A: c.A,
	}
}
