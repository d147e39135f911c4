// Package meadow is the resource and rendering layer of a 2D game runtime.
//
// It loads textures, sounds, music and sized fonts on first use, shares
// them through keyed caches, and turns sprites plus camera state into
// draw calls on a backend surface. The core package does not depend on a
// graphics library: backends live in meadow/backend/ebitengine (the default,
// on [Ebitengine]) and meadow/backend/sdl2.
//
// # Quick start
//
// The simplest way to get started is the Ebitengine runtime, which opens a
// window, builds the caches and the renderer, and runs the frame loop:
//
//	cfg, err := meadow.LoadConfig(".env")
//	if err != nil {
//		log.Fatal(err)
//	}
//	rt, err := ebitengine.NewRuntime(cfg, assets.Dir(cfg.AssetRoot))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rt.Close()
//	log.Fatal(rt.Run(game))
//
// # Caches
//
// [Cache] maps a key to a loaded value. [Cache.Get] and [Cache.Load] load on
// first use and return the shared instance afterwards; failed loads are
// returned to the caller and never cached, so the next call retries.
// [Cache.Unload], [Cache.Clear] and [Cache.Close] run the dispose function
// exactly once per entry.
//
// [ResourceManager] groups four caches: textures, sounds and music keyed by
// path, and fonts keyed by (path, point size) so every size is loaded and
// released independently.
//
// # Cameras
//
// A [Camera] has a world position, a viewport size and optional bounds.
// With bounds set, the position is kept within
// [bounds.X, bounds.X+bounds.Width-viewport.X] on each axis; when the world
// is narrower than the viewport the camera pins to the lower bound.
//
//	cam := meadow.NewCamera(meadow.Vec2{X: 640, Y: 360}, meadow.Vec2{}, &meadow.Rect{Width: 2000, Height: 360})
//	cam.Follow(func() meadow.Vec2 { return player.Pos }, meadow.Vec2{X: -320, Y: -180}, 0.1)
//
// # Drawing
//
// A [Sprite] names a texture path, an optional source region and a flip
// flag. [Renderer] resolves the path through the texture cache on every
// draw and supports three kinds of draws: world sprites projected through a
// camera and culled against the viewport, parallax layers tiled across the
// viewport, and UI sprites in screen space. Failures are logged and the
// draw is skipped.
//
// # Logging
//
// meadow is silent by default. Install a [github.com/sirupsen/logrus]
// logger with [SetLogger] or build one from configuration with
// [Config.NewLogger].
//
// [Ebitengine]: https://ebitengine.org
package meadow
