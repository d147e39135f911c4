// Package sdl2 is a meadow backend on SDL2 through go-sdl2: an SDL_Renderer
// surface and loaders built on SDL_image, SDL_ttf and SDL_mixer.
//
// The subsystems are global. Call Init once before creating any loader and
// Quit after every cache has been closed.
package sdl2

import (
	"fmt"

	"github.com/phanxgames/meadow"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/mix"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Renderer is a meadow.Renderer drawing SDL textures.
type Renderer = meadow.Renderer[*sdl.Texture]

// ResourceManager caches SDL textures, mixer chunks and music, and fonts.
type ResourceManager = meadow.ResourceManager[*sdl.Texture, *mix.Chunk, *mix.Music, *ttf.Font]

// AudioConfig configures SDL_mixer.
type AudioConfig struct {
	Frequency int
	Channels  int
	ChunkSize int
}

// DefaultAudioConfig returns 44.1kHz stereo with 2048-sample chunks.
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{Frequency: 44100, Channels: 2, ChunkSize: 2048}
}

// Init initializes SDL video, audio and events, SDL_image (PNG, JPG),
// SDL_ttf and SDL_mixer (OGG, MP3). Subsystems already started are shut
// down again if a later one fails.
func Init(audio AudioConfig) error {
	log := meadow.Logger()
	log.Trace("initializing SDL")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl2: init: %w", err)
	}
	if err := img.Init(img.INIT_PNG | img.INIT_JPG); err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl2: image init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		img.Quit()
		sdl.Quit()
		return fmt.Errorf("sdl2: ttf init: %w", err)
	}
	if err := mix.Init(mix.INIT_OGG | mix.INIT_MP3); err != nil {
		// decoders are optional; WAV still works
		log.WithError(err).Warn("SDL_mixer decoders unavailable")
	}
	if err := mix.OpenAudio(audio.Frequency, mix.DEFAULT_FORMAT, audio.Channels, audio.ChunkSize); err != nil {
		mix.Quit()
		ttf.Quit()
		img.Quit()
		sdl.Quit()
		return fmt.Errorf("sdl2: open audio: %w", err)
	}

	log.Trace("SDL initialized")
	return nil
}

// Quit shuts down every subsystem started by Init.
func Quit() {
	mix.CloseAudio()
	mix.Quit()
	ttf.Quit()
	img.Quit()
	sdl.Quit()
	meadow.Logger().Trace("SDL shut down")
}

// NewResourceManager creates a ResourceManager whose loaders read files
// below root and upload textures to r.
func NewResourceManager(r *sdl.Renderer, root string) (*ResourceManager, error) {
	if r == nil {
		return nil, fmt.Errorf("sdl2: resource manager: renderer: %w", meadow.ErrNilDependency)
	}
	return meadow.NewResourceManager(meadow.Loaders[*sdl.Texture, *mix.Chunk, *mix.Music, *ttf.Font]{
		Texture: &TextureLoader{Renderer: r, Root: root},
		Sound:   &SoundLoader{Root: root},
		Music:   &SoundLoader{Root: root},
		Font:    &FontLoader{Root: root},
	})
}
