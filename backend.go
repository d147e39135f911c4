package meadow

// The interfaces in this file are the boundary to platform backends.
// Implementations live in backend/ebitengine, backend/sdl2 and audio.

// TextureLoader decodes textures and reports their natural size.
type TextureLoader[T any] interface {
	LoadTexture(path string) (T, error)
	TextureSize(tex T) (Vec2, error)
	FreeTexture(tex T)
}

// SoundLoader decodes short sound effects.
type SoundLoader[S any] interface {
	LoadSound(path string) (S, error)
	FreeSound(s S)
}

// MusicLoader opens music tracks.
type MusicLoader[M any] interface {
	LoadMusic(path string) (M, error)
	FreeMusic(m M)
}

// FontLoader opens a font file at a point size.
type FontLoader[F any] interface {
	LoadFont(path string, size int) (F, error)
	FreeFont(f F)
}

// Surface is the draw target of a graphics backend.
//
// DrawTexture draws the src region of tex into dst, rotated by angle
// degrees clockwise around the center of dst and optionally mirrored
// horizontally.
type Surface[T any] interface {
	DrawTexture(tex T, src, dst Rect, angle float64, flip bool) error
	Clear() error
	Present() error
	SetDrawColor(c Color) error
}

// TextureProvider resolves texture paths to loaded textures.
// ResourceManager implements it.
type TextureProvider[T any] interface {
	Texture(path string) (T, error)
	TextureSize(path string) (Vec2, error)
}
