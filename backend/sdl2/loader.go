package sdl2

import (
	"fmt"
	"path/filepath"

	"github.com/phanxgames/meadow"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/mix"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

func resolve(root, path string) string {
	if root == "" || filepath.IsAbs(path) {
		return filepath.FromSlash(path)
	}
	return filepath.Join(root, filepath.FromSlash(path))
}

// TextureLoader loads images with SDL_image straight into GPU textures.
type TextureLoader struct {
	Renderer *sdl.Renderer
	Root     string
}

// LoadTexture loads the image at path.
func (l *TextureLoader) LoadTexture(path string) (*sdl.Texture, error) {
	tex, err := img.LoadTexture(l.Renderer, resolve(l.Root, path))
	if err != nil {
		return nil, fmt.Errorf("sdl2: load texture %s: %w", path, err)
	}
	return tex, nil
}

// TextureSize queries the texture size.
func (l *TextureLoader) TextureSize(tex *sdl.Texture) (meadow.Vec2, error) {
	_, _, w, h, err := tex.Query()
	if err != nil {
		return meadow.Vec2{}, fmt.Errorf("sdl2: query texture: %w", err)
	}
	return meadow.Vec2{X: float64(w), Y: float64(h)}, nil
}

// FreeTexture destroys tex.
func (l *TextureLoader) FreeTexture(tex *sdl.Texture) {
	if err := tex.Destroy(); err != nil {
		meadow.Logger().WithError(err).Warn("destroying texture failed")
	}
}

// SoundLoader loads sound effects as mixer chunks and music as mixer
// music. It serves as both the sound and the music loader.
type SoundLoader struct {
	Root string
}

// LoadSound loads the sound effect at path.
func (l *SoundLoader) LoadSound(path string) (*mix.Chunk, error) {
	chunk, err := mix.LoadWAV(resolve(l.Root, path))
	if err != nil {
		return nil, fmt.Errorf("sdl2: load sound %s: %w", path, err)
	}
	return chunk, nil
}

// FreeSound frees chunk.
func (l *SoundLoader) FreeSound(chunk *mix.Chunk) { chunk.Free() }

// LoadMusic loads the music track at path.
func (l *SoundLoader) LoadMusic(path string) (*mix.Music, error) {
	music, err := mix.LoadMUS(resolve(l.Root, path))
	if err != nil {
		return nil, fmt.Errorf("sdl2: load music %s: %w", path, err)
	}
	return music, nil
}

// FreeMusic frees music.
func (l *SoundLoader) FreeMusic(music *mix.Music) { music.Free() }

// FontLoader opens fonts with SDL_ttf.
type FontLoader struct {
	Root string
}

// LoadFont opens the font at path at size points.
func (l *FontLoader) LoadFont(path string, size int) (*ttf.Font, error) {
	font, err := ttf.OpenFont(resolve(l.Root, path), size)
	if err != nil {
		return nil, fmt.Errorf("sdl2: open font %s (%dpt): %w", path, size, err)
	}
	return font, nil
}

// FreeFont closes font.
func (l *FontLoader) FreeFont(font *ttf.Font) { font.Close() }
