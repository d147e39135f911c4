// Package ecs connects meadow drawing to a [Donburi] world.
//
// Entities carry a [Transform] plus one of [SpriteRenderer] or [Parallax]
// for world-space drawing, or a [UISprite] for screen-space drawing.
// [Draw] renders them all through a meadow Renderer in layer order:
//
//	world := donburi.NewWorld()
//	ecs.NewSpriteEntity(world, meadow.NewSprite("textures/frog.png"), meadow.Vec2{X: 320, Y: 180}, 1)
//
//	func (g *game) Draw(r *ebitengine.Renderer) {
//		ecs.Draw(g.world, r, g.camera)
//	}
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
