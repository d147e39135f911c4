package meadow

import "fmt"

// FontKey identifies a cached font: the same file at two point sizes is
// two entries.
type FontKey struct {
	Path string
	Size int
}

func (k FontKey) String() string {
	return fmt.Sprintf("%s (%dpt)", k.Path, k.Size)
}

func validateFontKey(k FontKey) error {
	if k.Size <= 0 {
		return fmt.Errorf("%w: font %q point size %d <= 0", ErrInvalidGeometry, k.Path, k.Size)
	}
	return nil
}

// Loaders bundles the backend loaders used by a ResourceManager.
type Loaders[T, S, M, F any] struct {
	Texture TextureLoader[T]
	Sound   SoundLoader[S]
	Music   MusicLoader[M]
	Font    FontLoader[F]
}

// ResourceManager aggregates one Cache per resource kind: textures (T),
// sounds (S), music (M) and fonts (F). The backend subsystems behind the
// loaders must already be initialized.
type ResourceManager[T, S, M, F any] struct {
	textures      *Cache[string, T]
	textureLoader TextureLoader[T]
	sounds        *Cache[string, S]
	music         *Cache[string, M]
	fonts         *Cache[FontKey, F]
}

// NewResourceManager creates the four caches. Every loader is required.
func NewResourceManager[T, S, M, F any](l Loaders[T, S, M, F]) (*ResourceManager[T, S, M, F], error) {
	switch {
	case l.Texture == nil:
		return nil, fmt.Errorf("meadow: resource manager: texture loader: %w", ErrNilDependency)
	case l.Sound == nil:
		return nil, fmt.Errorf("meadow: resource manager: sound loader: %w", ErrNilDependency)
	case l.Music == nil:
		return nil, fmt.Errorf("meadow: resource manager: music loader: %w", ErrNilDependency)
	case l.Font == nil:
		return nil, fmt.Errorf("meadow: resource manager: font loader: %w", ErrNilDependency)
	}

	rm := &ResourceManager[T, S, M, F]{textureLoader: l.Texture}
	var err error
	if rm.textures, err = NewCache(CacheConfig[string, T]{
		Kind:    "texture",
		Load:    l.Texture.LoadTexture,
		Dispose: l.Texture.FreeTexture,
	}); err != nil {
		return nil, err
	}
	if rm.sounds, err = NewCache(CacheConfig[string, S]{
		Kind:    "sound",
		Load:    l.Sound.LoadSound,
		Dispose: l.Sound.FreeSound,
	}); err != nil {
		return nil, err
	}
	if rm.music, err = NewCache(CacheConfig[string, M]{
		Kind:    "music",
		Load:    l.Music.LoadMusic,
		Dispose: l.Music.FreeMusic,
	}); err != nil {
		return nil, err
	}
	if rm.fonts, err = NewCache(CacheConfig[FontKey, F]{
		Kind:     "font",
		Load:     func(k FontKey) (F, error) { return l.Font.LoadFont(k.Path, k.Size) },
		Dispose:  l.Font.FreeFont,
		Validate: validateFontKey,
	}); err != nil {
		return nil, err
	}

	logger.Trace("resource manager constructed")
	return rm, nil
}

// Textures returns the texture cache.
func (rm *ResourceManager[T, S, M, F]) Textures() *Cache[string, T] { return rm.textures }

// Sounds returns the sound cache.
func (rm *ResourceManager[T, S, M, F]) Sounds() *Cache[string, S] { return rm.sounds }

// MusicTracks returns the music cache.
func (rm *ResourceManager[T, S, M, F]) MusicTracks() *Cache[string, M] { return rm.music }

// Fonts returns the font cache.
func (rm *ResourceManager[T, S, M, F]) Fonts() *Cache[FontKey, F] { return rm.fonts }

// --- textures ---

// LoadTexture loads path into the texture cache, returning the cached
// texture if it is already loaded.
func (rm *ResourceManager[T, S, M, F]) LoadTexture(path string) (T, error) {
	return rm.textures.Load(path)
}

// Texture returns the texture for path, loading it on first use.
func (rm *ResourceManager[T, S, M, F]) Texture(path string) (T, error) {
	return rm.textures.Get(path)
}

// TextureSize returns the natural size of the texture at path, loading it
// if needed.
func (rm *ResourceManager[T, S, M, F]) TextureSize(path string) (Vec2, error) {
	tex, err := rm.textures.Get(path)
	if err != nil {
		logger.WithField("path", path).Error("cannot get size: texture not found")
		return Vec2{}, err
	}
	size, err := rm.textureLoader.TextureSize(tex)
	if err != nil {
		logger.WithField("path", path).WithError(err).Error("failed to query texture size")
		return Vec2{}, fmt.Errorf("meadow: texture size %q: %w", path, err)
	}
	return size, nil
}

// UnloadTexture evicts the texture at path.
func (rm *ResourceManager[T, S, M, F]) UnloadTexture(path string) { rm.textures.Unload(path) }

// ClearTextures evicts every texture.
func (rm *ResourceManager[T, S, M, F]) ClearTextures() { rm.textures.Clear() }

// --- sounds ---

// LoadSound loads path into the sound cache.
func (rm *ResourceManager[T, S, M, F]) LoadSound(path string) (S, error) {
	return rm.sounds.Load(path)
}

// Sound returns the sound for path, loading it on first use.
func (rm *ResourceManager[T, S, M, F]) Sound(path string) (S, error) {
	return rm.sounds.Get(path)
}

// UnloadSound evicts the sound at path.
func (rm *ResourceManager[T, S, M, F]) UnloadSound(path string) { rm.sounds.Unload(path) }

// ClearSounds evicts every sound.
func (rm *ResourceManager[T, S, M, F]) ClearSounds() { rm.sounds.Clear() }

// --- music ---

// LoadMusic loads path into the music cache.
func (rm *ResourceManager[T, S, M, F]) LoadMusic(path string) (M, error) {
	return rm.music.Load(path)
}

// Music returns the music track for path, loading it on first use.
func (rm *ResourceManager[T, S, M, F]) Music(path string) (M, error) {
	return rm.music.Get(path)
}

// UnloadMusic evicts the music track at path.
func (rm *ResourceManager[T, S, M, F]) UnloadMusic(path string) { rm.music.Unload(path) }

// ClearMusic evicts every music track.
func (rm *ResourceManager[T, S, M, F]) ClearMusic() { rm.music.Clear() }

// ClearAudio evicts every sound and music track.
func (rm *ResourceManager[T, S, M, F]) ClearAudio() {
	rm.sounds.Clear()
	rm.music.Clear()
}

// --- fonts ---

// LoadFont loads the font at path and point size into the font cache.
func (rm *ResourceManager[T, S, M, F]) LoadFont(path string, size int) (F, error) {
	return rm.fonts.Load(FontKey{Path: path, Size: size})
}

// Font returns the font for path at size, loading it on first use.
func (rm *ResourceManager[T, S, M, F]) Font(path string, size int) (F, error) {
	return rm.fonts.Get(FontKey{Path: path, Size: size})
}

// UnloadFont evicts the font at path and size. Other sizes of the same
// file stay loaded.
func (rm *ResourceManager[T, S, M, F]) UnloadFont(path string, size int) {
	rm.fonts.Unload(FontKey{Path: path, Size: size})
}

// ClearFonts evicts every font.
func (rm *ResourceManager[T, S, M, F]) ClearFonts() { rm.fonts.Clear() }

// Clear evicts every resource of every kind.
func (rm *ResourceManager[T, S, M, F]) Clear() {
	rm.fonts.Clear()
	rm.ClearAudio()
	rm.textures.Clear()
	logger.Trace("resource manager cleared")
}

// Close releases every resource and closes all caches. Call it once at
// shutdown, before the backend subsystems are torn down.
func (rm *ResourceManager[T, S, M, F]) Close() {
	rm.fonts.Close()
	rm.sounds.Close()
	rm.music.Close()
	rm.textures.Close()
	logger.Trace("resource manager closed")
}
