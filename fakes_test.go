package meadow

import (
	"errors"
	"fmt"
)

// --- fake backend shared by the package tests ---

var errMissing = errors.New("no such file")

type fakeTexture struct {
	path  string
	size  Vec2
	freed int
}

// fakeLoader implements every loader interface with in-memory assets.
type fakeLoader struct {
	sizes     map[string]Vec2 // texture path -> natural size
	missing   map[string]bool // paths that fail to load
	loads     map[string]int  // path (or font key) -> load count
	sizeErr   bool
	freedSeen []string
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		sizes:   map[string]Vec2{},
		missing: map[string]bool{},
		loads:   map[string]int{},
	}
}

func (f *fakeLoader) LoadTexture(path string) (*fakeTexture, error) {
	f.loads[path]++
	if f.missing[path] {
		return nil, fmt.Errorf("open %s: %w", path, errMissing)
	}
	return &fakeTexture{path: path, size: f.sizes[path]}, nil
}

func (f *fakeLoader) TextureSize(tex *fakeTexture) (Vec2, error) {
	if f.sizeErr {
		return Vec2{}, errors.New("query failed")
	}
	return tex.size, nil
}

func (f *fakeLoader) FreeTexture(tex *fakeTexture) {
	tex.freed++
	f.freedSeen = append(f.freedSeen, tex.path)
}

type fakeSound struct {
	path  string
	freed int
}

func (f *fakeLoader) LoadSound(path string) (*fakeSound, error) {
	f.loads["sound:"+path]++
	if f.missing[path] {
		return nil, errMissing
	}
	return &fakeSound{path: path}, nil
}

func (f *fakeLoader) FreeSound(s *fakeSound) { s.freed++ }

type fakeMusic struct {
	path  string
	freed int
}

func (f *fakeLoader) LoadMusic(path string) (*fakeMusic, error) {
	f.loads["music:"+path]++
	if f.missing[path] {
		return nil, errMissing
	}
	return &fakeMusic{path: path}, nil
}

func (f *fakeLoader) FreeMusic(m *fakeMusic) { m.freed++ }

type fakeFont struct {
	key   FontKey
	freed int
}

func (f *fakeLoader) LoadFont(path string, size int) (*fakeFont, error) {
	key := FontKey{Path: path, Size: size}
	f.loads[key.String()]++
	if f.missing[path] {
		return nil, errMissing
	}
	return &fakeFont{key: key}, nil
}

func (f *fakeLoader) FreeFont(font *fakeFont) { font.freed++ }

type fakeManager = ResourceManager[*fakeTexture, *fakeSound, *fakeMusic, *fakeFont]

func newFakeManager(f *fakeLoader) *fakeManager {
	rm, err := NewResourceManager(Loaders[*fakeTexture, *fakeSound, *fakeMusic, *fakeFont]{
		Texture: f, Sound: f, Music: f, Font: f,
	})
	if err != nil {
		panic(err)
	}
	return rm
}

// drawCall records one Surface.DrawTexture call.
type drawCall struct {
	tex   *fakeTexture
	src   Rect
	dst   Rect
	angle float64
	flip  bool
}

// fakeSurface records draw calls and can reject them.
type fakeSurface struct {
	calls     []drawCall
	failAfter int // reject every call once len(calls) reaches this; <0 never
	clears    int
	presents  int
	colors    []Color
	clearErr  error
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{failAfter: -1}
}

func (s *fakeSurface) DrawTexture(tex *fakeTexture, src, dst Rect, angle float64, flip bool) error {
	if s.failAfter >= 0 && len(s.calls) >= s.failAfter {
		return ErrBackend
	}
	s.calls = append(s.calls, drawCall{tex, src, dst, angle, flip})
	return nil
}

func (s *fakeSurface) Clear() error {
	s.clears++
	return s.clearErr
}

func (s *fakeSurface) Present() error {
	s.presents++
	return nil
}

func (s *fakeSurface) SetDrawColor(c Color) error {
	s.colors = append(s.colors, c)
	return nil
}
