package ecs

import (
	"github.com/phanxgames/meadow"

	"github.com/yohamta/donburi"
)

// TransformData places an entity in the world. A zero Scale draws at
// natural size.
type TransformData struct {
	Position meadow.Vec2
	Scale    meadow.Vec2
	Angle    float64
}

// SpriteRendererData draws a sprite at the entity's transform.
type SpriteRendererData struct {
	Sprite meadow.Sprite
	Layer  int
	Hidden bool
}

// ParallaxData draws a scrolling, optionally tiled layer anchored at the
// entity's transform. Angle is ignored.
type ParallaxData struct {
	Sprite       meadow.Sprite
	ScrollFactor meadow.Vec2
	Repeat       meadow.Repeat
	Layer        int
	Hidden       bool
}

// UISpriteData draws a sprite in screen space. A zero Size draws at
// natural size. UI sprites are drawn after every world-space entity.
type UISpriteData struct {
	Sprite   meadow.Sprite
	Position meadow.Vec2
	Size     meadow.Vec2
	Layer    int
	Hidden   bool
}

var (
	Transform      = donburi.NewComponentType[TransformData]()
	SpriteRenderer = donburi.NewComponentType[SpriteRendererData]()
	Parallax       = donburi.NewComponentType[ParallaxData]()
	UISprite       = donburi.NewComponentType[UISpriteData]()
)

// NewSpriteEntity creates an entity drawing sprite at pos on layer.
func NewSpriteEntity(w donburi.World, sprite meadow.Sprite, pos meadow.Vec2, layer int) donburi.Entity {
	e := w.Create(Transform, SpriteRenderer)
	entry := w.Entry(e)
	Transform.SetValue(entry, TransformData{Position: pos, Scale: meadow.Vec2{X: 1, Y: 1}})
	SpriteRenderer.SetValue(entry, SpriteRendererData{Sprite: sprite, Layer: layer})
	return e
}

// NewParallaxEntity creates a parallax layer anchored at pos.
func NewParallaxEntity(w donburi.World, sprite meadow.Sprite, pos, scrollFactor meadow.Vec2, repeat meadow.Repeat, layer int) donburi.Entity {
	e := w.Create(Transform, Parallax)
	entry := w.Entry(e)
	Transform.SetValue(entry, TransformData{Position: pos, Scale: meadow.Vec2{X: 1, Y: 1}})
	Parallax.SetValue(entry, ParallaxData{Sprite: sprite, ScrollFactor: scrollFactor, Repeat: repeat, Layer: layer})
	return e
}

// NewUISpriteEntity creates a screen-space sprite at pos.
func NewUISpriteEntity(w donburi.World, sprite meadow.Sprite, pos meadow.Vec2, layer int) donburi.Entity {
	e := w.Create(UISprite)
	UISprite.SetValue(w.Entry(e), UISpriteData{Sprite: sprite, Position: pos, Layer: layer})
	return e
}
