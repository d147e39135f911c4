package meadow

import (
	"errors"
	"testing"
)

// newTestRenderer builds a renderer over a fake surface and a resource
// manager whose "bg.png" and "hero.png" textures have known sizes.
func newTestRenderer(t *testing.T) (*Renderer[*fakeTexture], *fakeSurface, *fakeLoader) {
	t.Helper()
	f := newFakeLoader()
	f.sizes["bg.png"] = Vec2{100, 50}
	f.sizes["hero.png"] = Vec2{32, 48}
	s := newFakeSurface()
	r, err := NewRenderer[*fakeTexture](s, newFakeManager(f))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r, s, f
}

func TestNewRendererNilDependencies(t *testing.T) {
	rm := newFakeManager(newFakeLoader())
	if r, err := NewRenderer[*fakeTexture](nil, rm); r != nil || !errors.Is(err, ErrNilDependency) {
		t.Errorf("nil surface: (%v, %v)", r, err)
	}
	if r, err := NewRenderer[*fakeTexture](newFakeSurface(), nil); r != nil || !errors.Is(err, ErrNilDependency) {
		t.Errorf("nil provider: (%v, %v)", r, err)
	}
}

func TestNewRendererDefaultDrawColor(t *testing.T) {
	_, s, _ := newTestRenderer(t)
	if len(s.colors) != 1 || s.colors[0] != ColorBlack {
		t.Errorf("colors = %v, want [black]", s.colors)
	}
}

func TestDrawSpriteProjectsThroughCamera(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{640, 360}, Vec2{100, 50}, nil)

	r.DrawSprite(cam, NewSprite("hero.png"), Vec2{150, 80}, Vec2{2, 2}, 45)

	if len(s.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(s.calls))
	}
	c := s.calls[0]
	if c.dst != (Rect{X: 50, Y: 30, Width: 64, Height: 96}) {
		t.Errorf("dst = %+v", c.dst)
	}
	if c.src != (Rect{Width: 32, Height: 48}) {
		t.Errorf("src = %+v, want whole texture", c.src)
	}
	if c.angle != 45 || c.flip {
		t.Errorf("angle = %v flip = %v", c.angle, c.flip)
	}
	if st := r.Stats(); st.Draws != 1 || st.DrawCalls() != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestDrawSpriteFlipAndRegion(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	sprite := NewSpriteRegion("hero.png", Rect{X: 16, Y: 0, Width: 16, Height: 24}).WithFlipped(true)

	r.DrawSprite(cam, sprite, Vec2{10, 10}, Vec2{1, 1}, 0)

	if len(s.calls) != 1 {
		t.Fatalf("calls = %d", len(s.calls))
	}
	c := s.calls[0]
	if !c.flip || c.src != (Rect{X: 16, Width: 16, Height: 24}) || c.dst != (Rect{X: 10, Y: 10, Width: 16, Height: 24}) {
		t.Errorf("call = %+v", c)
	}
}

func TestDrawSpriteCulling(t *testing.T) {
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	tests := []struct {
		name string
		pos  Vec2
		want bool
	}{
		{"inside", Vec2{100, 100}, true},
		{"left", Vec2{-33, 100}, false},
		{"right", Vec2{641, 100}, false},
		{"above", Vec2{100, -49}, false},
		{"below", Vec2{100, 361}, false},
		{"touching left edge", Vec2{-32, 100}, true},
		{"touching right edge", Vec2{640, 100}, true},
		{"touching top edge", Vec2{100, -48}, true},
		{"touching bottom edge", Vec2{100, 360}, true},
		{"partially visible", Vec2{-10, -10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s, _ := newTestRenderer(t)
			r.DrawSprite(cam, NewSprite("hero.png"), tt.pos, Vec2{1, 1}, 0)
			drawn := len(s.calls) == 1
			if drawn != tt.want {
				t.Errorf("drawn = %v, want %v", drawn, tt.want)
			}
			if !tt.want && r.Stats().Culled != 1 {
				t.Errorf("Culled = %d, want 1", r.Stats().Culled)
			}
		})
	}
}

func TestDrawSpriteMissingTextureSkipped(t *testing.T) {
	r, s, f := newTestRenderer(t)
	f.missing["gone.png"] = true
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)

	r.DrawSprite(cam, NewSprite("gone.png"), Vec2{}, Vec2{1, 1}, 0)
	r.DrawSprite(cam, NewSprite("hero.png"), Vec2{}, Vec2{1, 1}, 0)

	if len(s.calls) != 1 || s.calls[0].tex.path != "hero.png" {
		t.Fatalf("calls = %+v, want only hero.png", s.calls)
	}
	if r.Stats().Skipped != 1 {
		t.Errorf("Skipped = %d", r.Stats().Skipped)
	}
}

func TestDrawSpriteInvalidRegionSkipped(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	for _, region := range []Rect{
		{Width: 0, Height: 10},
		{Width: 10, Height: -1},
	} {
		r.DrawSprite(cam, NewSpriteRegion("hero.png", region), Vec2{}, Vec2{1, 1}, 0)
	}
	if len(s.calls) != 0 {
		t.Errorf("calls = %d, want 0", len(s.calls))
	}
	if r.Stats().Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", r.Stats().Skipped)
	}
}

func TestDrawInvalidDestinationSkipped(t *testing.T) {
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	tests := []struct {
		name string
		draw func(r *Renderer[*fakeTexture])
	}{
		{"zero scale x", func(r *Renderer[*fakeTexture]) {
			r.DrawSprite(cam, NewSprite("hero.png"), Vec2{10, 10}, Vec2{0, 1}, 0)
		}},
		{"negative scale x", func(r *Renderer[*fakeTexture]) {
			r.DrawSprite(cam, NewSprite("hero.png"), Vec2{100, 10}, Vec2{-1, 1}, 0)
		}},
		{"negative scale y", func(r *Renderer[*fakeTexture]) {
			r.DrawSprite(cam, NewSprite("hero.png"), Vec2{100, 10}, Vec2{1, -2}, 0)
		}},
		{"ui zero size", func(r *Renderer[*fakeTexture]) {
			r.DrawUISpriteSize(NewSprite("hero.png"), Vec2{5, 5}, Vec2{0, -3})
		}},
		{"ui negative width", func(r *Renderer[*fakeTexture]) {
			r.DrawUISpriteSize(NewSprite("hero.png"), Vec2{5, 5}, Vec2{-10, 20})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s, _ := newTestRenderer(t)
			tt.draw(r)
			if len(s.calls) != 0 {
				t.Errorf("calls = %+v, want none", s.calls)
			}
			if st := r.Stats(); st.Skipped != 1 || st.Draws != 0 || st.Culled != 0 {
				t.Errorf("stats = %+v", st)
			}
		})
	}
}

func TestDrawSpriteZeroSizeTextureSkipped(t *testing.T) {
	r, s, f := newTestRenderer(t)
	f.sizes["empty.png"] = Vec2{}
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	r.DrawSprite(cam, NewSprite("empty.png"), Vec2{}, Vec2{1, 1}, 0)
	if len(s.calls) != 0 {
		t.Errorf("calls = %d", len(s.calls))
	}
}

func TestDrawSpriteBackendFailure(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	s.failAfter = 0
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	r.DrawSprite(cam, NewSprite("hero.png"), Vec2{}, Vec2{1, 1}, 0)
	if st := r.Stats(); st.Failures != 1 || st.Draws != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestDrawParallaxRepeatX(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)

	r.DrawParallax(cam, NewSprite("bg.png"), Vec2{1250, 10}, Vec2{1, 1}, Repeat{X: true}, Vec2{1, 1})

	wantX := []float64{-50, 50, 150, 250, 350, 450, 550}
	if len(s.calls) != len(wantX) {
		t.Fatalf("tiles = %d, want %d", len(s.calls), len(wantX))
	}
	for i, c := range s.calls {
		want := Rect{X: wantX[i], Y: 10, Width: 100, Height: 50}
		if c.dst != want {
			t.Errorf("tile %d dst = %+v, want %+v", i, c.dst, want)
		}
		if c.angle != 0 || c.flip {
			t.Errorf("tile %d angle=%v flip=%v", i, c.angle, c.flip)
		}
	}
	if r.Stats().Tiles != 7 {
		t.Errorf("Tiles = %d", r.Stats().Tiles)
	}
}

func TestDrawParallaxRepeatBoth(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{200, 100}, Vec2{}, nil)

	r.DrawParallax(cam, NewSprite("bg.png"), Vec2{0, 0}, Vec2{1, 1}, Repeat{X: true, Y: true}, Vec2{1, 1})

	// x: -100, 0, 100; y: -50, 0, 50
	if len(s.calls) != 9 {
		t.Fatalf("tiles = %d, want 9", len(s.calls))
	}
	if first := s.calls[0].dst; first.X != -100 || first.Y != -50 {
		t.Errorf("first tile = %+v", first)
	}
	if second := s.calls[1].dst; second.X != 0 || second.Y != -50 {
		t.Errorf("tiles must advance along x first, got %+v", second)
	}
}

func TestDrawParallaxScrollFactor(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{640, 360}, Vec2{400, 0}, nil)

	r.DrawParallax(cam, NewSprite("bg.png"), Vec2{10, 20}, Vec2{0, 0}, Repeat{}, Vec2{1, 1})

	if len(s.calls) != 1 {
		t.Fatalf("tiles = %d, want 1", len(s.calls))
	}
	if got := s.calls[0].dst; got != (Rect{X: 10, Y: 20, Width: 100, Height: 50}) {
		t.Errorf("dst = %+v, want layer pinned to screen", got)
	}
}

func TestDrawParallaxNoRepeatOffScreen(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	r.DrawParallax(cam, NewSprite("bg.png"), Vec2{700, 0}, Vec2{1, 1}, Repeat{}, Vec2{1, 1})
	if len(s.calls) != 0 {
		t.Errorf("tiles = %d, want 0", len(s.calls))
	}
}

func TestDrawParallaxUsesSourceRegion(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	region := Rect{X: 0, Y: 25, Width: 100, Height: 25}
	r.DrawParallax(cam, NewSpriteRegion("bg.png", region), Vec2{}, Vec2{1, 1}, Repeat{X: true}, Vec2{2, 2})
	if len(s.calls) == 0 {
		t.Fatal("no tiles drawn")
	}
	for i, c := range s.calls {
		if c.src != region {
			t.Errorf("tile %d src = %+v", i, c.src)
		}
		if c.dst.Width != 200 || c.dst.Height != 50 {
			t.Errorf("tile %d size = %vx%v", i, c.dst.Width, c.dst.Height)
		}
	}
}

func TestDrawParallaxNonPositiveTileSkipped(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	for _, scale := range []Vec2{{0, 1}, {1, -1}} {
		r.DrawParallax(cam, NewSprite("bg.png"), Vec2{}, Vec2{1, 1}, Repeat{X: true, Y: true}, scale)
	}
	if len(s.calls) != 0 {
		t.Errorf("tiles = %d, want 0", len(s.calls))
	}
	if r.Stats().Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", r.Stats().Skipped)
	}
}

func TestDrawParallaxStopsOnBackendFailure(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	s.failAfter = 2
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)
	r.DrawParallax(cam, NewSprite("bg.png"), Vec2{}, Vec2{1, 1}, Repeat{X: true, Y: true}, Vec2{1, 1})
	if len(s.calls) != 2 {
		t.Errorf("accepted tiles = %d, want 2", len(s.calls))
	}
	if st := r.Stats(); st.Failures != 1 || st.Tiles != 2 {
		t.Errorf("stats = %+v", st)
	}
}

func TestParallaxRange(t *testing.T) {
	start, stop := parallaxRange(Vec2{-130, 10}, Vec2{100, 50}, Vec2{640, 360}, Repeat{X: true})
	if start.X != -30 || stop.X != 640 {
		t.Errorf("x range = [%v, %v), want [-30, 640)", start.X, stop.X)
	}
	if start.Y != 10 || stop.Y != 60 {
		t.Errorf("y range = [%v, %v), want [10, 60)", start.Y, stop.Y)
	}
}

func TestFloorMod(t *testing.T) {
	tests := []struct{ x, m, want float64 }{
		{1250, 100, 50},
		{-130, 100, 70},
		{0, 100, 0},
		{-100, 100, 0},
	}
	for _, tt := range tests {
		if got := floorMod(tt.x, tt.m); !approxEqual(got, tt.want, epsilon) {
			t.Errorf("floorMod(%v, %v) = %v, want %v", tt.x, tt.m, got, tt.want)
		}
	}
}

func TestDrawUISprite(t *testing.T) {
	r, s, _ := newTestRenderer(t)

	r.DrawUISprite(NewSprite("hero.png").WithFlipped(true), Vec2{5, 6})
	r.DrawUISpriteSize(NewSprite("hero.png"), Vec2{5, 6}, Vec2{200, 20})

	if len(s.calls) != 2 {
		t.Fatalf("calls = %d", len(s.calls))
	}
	if got := s.calls[0]; got.dst != (Rect{X: 5, Y: 6, Width: 32, Height: 48}) || !got.flip || got.angle != 0 {
		t.Errorf("natural size call = %+v", got)
	}
	if got := s.calls[1].dst; got != (Rect{X: 5, Y: 6, Width: 200, Height: 20}) {
		t.Errorf("explicit size dst = %+v", got)
	}
}

func TestDrawUISpriteIgnoresViewport(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	r.DrawUISprite(NewSprite("hero.png"), Vec2{-1000, -1000})
	if len(s.calls) != 1 {
		t.Errorf("calls = %d, UI sprites are not culled", len(s.calls))
	}
}

func TestRendererFrameLifecycle(t *testing.T) {
	r, s, _ := newTestRenderer(t)
	cam := NewCamera(Vec2{640, 360}, Vec2{}, nil)

	r.SetDrawColor(ColorWhite)
	r.DrawSprite(cam, NewSprite("hero.png"), Vec2{}, Vec2{1, 1}, 0)
	r.Present()
	r.ClearScreen()

	if s.presents != 1 || s.clears != 1 {
		t.Errorf("presents = %d clears = %d", s.presents, s.clears)
	}
	if s.colors[len(s.colors)-1] != ColorWhite {
		t.Errorf("last color = %v", s.colors[len(s.colors)-1])
	}
	if r.Stats() != (FrameStats{}) {
		t.Errorf("stats after ClearScreen = %+v", r.Stats())
	}

	s.clearErr = ErrBackend
	r.ClearScreen()
	if s.clears != 2 {
		t.Errorf("clears = %d", s.clears)
	}
}
