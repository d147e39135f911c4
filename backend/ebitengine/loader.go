package ebitengine

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/meadow"
	"github.com/phanxgames/meadow/assets"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	_ "golang.org/x/image/webp"
)

// TextureLoader decodes PNG, JPEG, GIF, BMP and WebP assets into
// Ebitengine images.
type TextureLoader struct {
	src assets.Source
}

// NewTextureLoader creates a loader reading from src.
func NewTextureLoader(src assets.Source) *TextureLoader {
	return &TextureLoader{src: src}
}

// LoadTexture decodes the image at path and uploads it.
func (l *TextureLoader) LoadTexture(path string) (*ebiten.Image, error) {
	data, err := assets.ReadFile(l.src, path)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ebitengine: decode %s: %w", path, err)
	}
	meadow.Logger().WithFields(logrus.Fields{"path": path, "format": format, "bounds": img.Bounds()}).Trace("image decoded")
	return ebiten.NewImageFromImage(img), nil
}

// TextureSize returns the image size in pixels.
func (l *TextureLoader) TextureSize(tex *ebiten.Image) (meadow.Vec2, error) {
	if tex == nil {
		return meadow.Vec2{}, fmt.Errorf("ebitengine: query nil texture: %w", meadow.ErrBackend)
	}
	b := tex.Bounds()
	return meadow.Vec2{X: float64(b.Dx()), Y: float64(b.Dy())}, nil
}

// FreeTexture releases the GPU memory of tex.
func (l *TextureLoader) FreeTexture(tex *ebiten.Image) {
	tex.Deallocate()
}

// Font is a TrueType/OpenType face at one point size.
type Font struct {
	face  text.Face
	xface font.Face
	size  int
	lh    float64 // cached line height
}

// Face returns the text/v2 face for direct Ebitengine rendering.
func (f *Font) Face() text.Face { return f.face }

// Size returns the point size.
func (f *Font) Size() int { return f.size }

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

// Measure returns the width and height of the rendered text.
func (f *Font) Measure(s string) meadow.Vec2 {
	w, h := text.Measure(s, f.face, f.lh)
	return meadow.Vec2{X: w, Y: h}
}

// Close releases the face. The font cannot draw afterwards.
func (f *Font) Close() error {
	if f.xface == nil {
		return nil
	}
	err := f.xface.Close()
	f.face, f.xface = nil, nil
	return err
}

// FontLoader opens fonts at a point size.
type FontLoader struct {
	src assets.Source
	// DPI is the resolution the point size is measured at. Zero means 72,
	// so one point is one pixel.
	DPI float64
}

// NewFontLoader creates a loader reading from src.
func NewFontLoader(src assets.Source) *FontLoader {
	return &FontLoader{src: src, DPI: 72}
}

// LoadFont parses the font file at path and creates a face of size points.
func (l *FontLoader) LoadFont(path string, size int) (*Font, error) {
	data, err := assets.ReadFile(l.src, path)
	if err != nil {
		return nil, err
	}
	otf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ebitengine: parse font %s: %w", path, err)
	}
	dpi := l.DPI
	if dpi == 0 {
		dpi = 72
	}
	xface, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("ebitengine: font face %s (%dpt): %w", path, size, err)
	}
	m := xface.Metrics()
	return &Font{
		face:  text.NewGoXFace(xface),
		xface: xface,
		size:  size,
		lh:    float64(m.Height) / 64,
	}, nil
}

// FreeFont closes f.
func (l *FontLoader) FreeFont(f *Font) {
	if err := f.Close(); err != nil {
		meadow.Logger().WithError(err).Warn("closing font failed")
	}
}
