package meadow

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecEqual(a, b Vec2) bool {
	return approxEqual(a.X, b.X, epsilon) && approxEqual(a.Y, b.Y, epsilon)
}

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left edge", 10, 40, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"containing", Rect{0, 0, 200, 200}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"adjacent top", Rect{10, -50, 50, 60}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint left", Rect{-100, 10, 50, 50}, false},
		{"disjoint above", Rect{10, -100, 50, 50}, false},
		{"disjoint below", Rect{10, 111, 50, 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Intersects(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Intersects(Rect%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

func TestRectValid(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{0, 0, 1, 1}, true},
		{Rect{5, 5, 0, 10}, false},
		{Rect{5, 5, 10, 0}, false},
		{Rect{5, 5, -1, 10}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Valid(); got != tt.want {
			t.Errorf("Rect%v.Valid() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestRectFrom(t *testing.T) {
	r := RectFrom(Vec2{1, 2}, Vec2{3, 4})
	if r != (Rect{1, 2, 3, 4}) {
		t.Fatalf("RectFrom = %v", r)
	}
	if r.Position() != (Vec2{1, 2}) || r.Size() != (Vec2{3, 4}) {
		t.Errorf("Position/Size = %v / %v", r.Position(), r.Size())
	}
}

func TestVec2Ops(t *testing.T) {
	a, b := Vec2{3, -2}, Vec2{0.5, 4}
	if got := a.Add(b); got != (Vec2{3.5, 2}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vec2{2.5, -6}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(b); got != (Vec2{1.5, -8}) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Scale(2); got != (Vec2{6, -4}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Min(b); got != (Vec2{0.5, -2}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec2{3, 4}) {
		t.Errorf("Max = %v", got)
	}
}

func TestColorRGBA8(t *testing.T) {
	r, g, b, a := Color{1, 0.5, -1, 2}.RGBA8()
	if r != 255 || g != 128 || b != 0 || a != 255 {
		t.Errorf("RGBA8 = %d,%d,%d,%d", r, g, b, a)
	}
	c := ColorFromRGBA8(0, 0, 0, 255)
	if c != ColorBlack {
		t.Errorf("ColorFromRGBA8(0,0,0,255) = %v, want %v", c, ColorBlack)
	}
}
