package meadow

// Sprite describes what to draw: a texture path, an optional source region
// within that texture and a horizontal flip. Position, scale and rotation
// are supplied per draw call.
//
// A Sprite holds no texture reference. The path is resolved through the
// texture cache on every draw, so a texture may be unloaded and reloaded
// between frames.
type Sprite struct {
	path    string
	region  Rect
	hasRect bool
	flipped bool
}

// NewSprite creates a sprite that draws the whole texture at path.
func NewSprite(path string) Sprite {
	return Sprite{path: path}
}

// NewSpriteRegion creates a sprite that draws region of the texture at path.
func NewSpriteRegion(path string, region Rect) Sprite {
	return Sprite{path: path, region: region, hasRect: true}
}

// TexturePath returns the texture path.
func (s Sprite) TexturePath() string { return s.path }

// SourceRegion returns the source region and whether one is set. Without a
// region the whole texture is drawn.
func (s Sprite) SourceRegion() (Rect, bool) { return s.region, s.hasRect }

// Flipped reports whether the sprite is mirrored horizontally.
func (s Sprite) Flipped() bool { return s.flipped }

// SetTexturePath sets the texture path.
func (s *Sprite) SetTexturePath(path string) { s.path = path }

// SetSourceRegion sets the source region.
func (s *Sprite) SetSourceRegion(r Rect) {
	s.region = r
	s.hasRect = true
}

// ClearSourceRegion makes the sprite draw the whole texture.
func (s *Sprite) ClearSourceRegion() {
	s.region = Rect{}
	s.hasRect = false
}

// SetFlipped sets horizontal mirroring.
func (s *Sprite) SetFlipped(flipped bool) { s.flipped = flipped }

// WithFlipped returns a copy of s with the flip flag set to flipped.
func (s Sprite) WithFlipped(flipped bool) Sprite {
	s.flipped = flipped
	return s
}
