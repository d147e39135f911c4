package sdl2

import (
	"fmt"
	"math"

	"github.com/phanxgames/meadow"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Surface draws through an SDL renderer.
type Surface struct {
	renderer *sdl.Renderer
}

// NewSurface wraps r. The surface does not own it.
func NewSurface(r *sdl.Renderer) (*Surface, error) {
	if r == nil {
		return nil, fmt.Errorf("sdl2: surface: renderer: %w", meadow.ErrNilDependency)
	}
	return &Surface{renderer: r}, nil
}

// DrawTexture copies the src region of tex into dst, rotated clockwise by
// angle degrees around the center of dst.
func (s *Surface) DrawTexture(tex *sdl.Texture, src, dst meadow.Rect, angle float64, flip bool) error {
	srcRect := toRect(src)
	dstRect := toFRect(dst)
	if err := s.renderer.CopyExF(tex, &srcRect, &dstRect, angle, nil, flipFlag(flip)); err != nil {
		return fmt.Errorf("sdl2: copy: %w: %w", meadow.ErrBackend, err)
	}
	return nil
}

// DrawText renders str with font and copies it with its top-left corner at
// pos. The intermediate texture is destroyed before returning.
func (s *Surface) DrawText(font *ttf.Font, str string, pos meadow.Vec2, c meadow.Color) error {
	if str == "" {
		return nil
	}
	surf, err := font.RenderUTF8Blended(str, toColor(c))
	if err != nil {
		return fmt.Errorf("sdl2: render text: %w: %w", meadow.ErrBackend, err)
	}
	defer surf.Free()

	tex, err := s.renderer.CreateTextureFromSurface(surf)
	if err != nil {
		return fmt.Errorf("sdl2: text texture: %w: %w", meadow.ErrBackend, err)
	}
	defer tex.Destroy()

	dst := sdl.FRect{X: float32(pos.X), Y: float32(pos.Y), W: float32(surf.W), H: float32(surf.H)}
	if err := s.renderer.CopyF(tex, nil, &dst); err != nil {
		return fmt.Errorf("sdl2: copy text: %w: %w", meadow.ErrBackend, err)
	}
	return nil
}

// Clear fills the render target with the draw color.
func (s *Surface) Clear() error {
	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("sdl2: clear: %w: %w", meadow.ErrBackend, err)
	}
	return nil
}

// Present shows the frame.
func (s *Surface) Present() error {
	s.renderer.Present()
	return nil
}

// SetDrawColor sets the color used by Clear.
func (s *Surface) SetDrawColor(c meadow.Color) error {
	r, g, b, a := c.RGBA8()
	if err := s.renderer.SetDrawColor(r, g, b, a); err != nil {
		return fmt.Errorf("sdl2: set draw color: %w: %w", meadow.ErrBackend, err)
	}
	return nil
}

// toRect rounds r to an integer source rectangle.
func toRect(r meadow.Rect) sdl.Rect {
	return sdl.Rect{
		X: int32(math.Round(r.X)),
		Y: int32(math.Round(r.Y)),
		W: int32(math.Round(r.Width)),
		H: int32(math.Round(r.Height)),
	}
}

func toFRect(r meadow.Rect) sdl.FRect {
	return sdl.FRect{X: float32(r.X), Y: float32(r.Y), W: float32(r.Width), H: float32(r.Height)}
}

func flipFlag(flip bool) sdl.RendererFlip {
	if flip {
		return sdl.FLIP_HORIZONTAL
	}
	return sdl.FLIP_NONE
}

func toColor(c meadow.Color) sdl.Color {
	r, g, b, a := c.RGBA8()
	return sdl.Color{R: r, G: g, B: b, A: a}
}
