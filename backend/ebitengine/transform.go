package ebitengine

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/meadow"
)

// drawTransform maps the src region (in sub-image space, origin at its
// top-left) onto dst: mirror horizontally if flip is set, stretch to the
// dst size, rotate by angle degrees clockwise around the center and move
// the center to the center of dst.
func drawTransform(src, dst meadow.Rect, angle float64, flip bool) mgl64.Mat3 {
	sx, sy := dst.Width/src.Width, dst.Height/src.Height
	if flip {
		sx = -sx
	}
	center := mgl64.Translate2D(dst.X+dst.Width/2, dst.Y+dst.Height/2)
	rotate := mgl64.HomogRotate2D(mgl64.DegToRad(angle))
	scale := mgl64.Scale2D(sx, sy)
	origin := mgl64.Translate2D(-src.Width/2, -src.Height/2)
	return center.Mul3(rotate).Mul3(scale).Mul3(origin)
}

// geoM copies the affine part of m into an Ebitengine GeoM.
func geoM(m mgl64.Mat3) ebiten.GeoM {
	var g ebiten.GeoM
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			g.SetElement(i, j, m.At(i, j))
		}
	}
	return g
}
