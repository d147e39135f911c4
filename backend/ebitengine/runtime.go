package ebitengine

import (
	"errors"
	"fmt"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/meadow"
	"github.com/phanxgames/meadow/assets"
	"github.com/phanxgames/meadow/audio"
	"github.com/sirupsen/logrus"
)

// Renderer is a meadow.Renderer drawing Ebitengine images.
type Renderer = meadow.Renderer[*ebiten.Image]

// ResourceManager caches Ebitengine textures, beep audio and fonts.
type ResourceManager = meadow.ResourceManager[*ebiten.Image, *audio.Sound, *audio.Music, *Font]

// Game is the application driven by a Runtime.
type Game interface {
	// Update advances the game by dt seconds.
	Update(dt float32) error
	// Draw issues the frame's draw calls. The screen has already been
	// cleared and is presented when Draw returns.
	Draw(r *Renderer)
}

// Runtime owns the window, the resource caches, the renderer, the main
// camera and the audio player.
type Runtime struct {
	cfg       meadow.Config
	surface   *Surface
	resources *ResourceManager
	renderer  *Renderer
	camera    *meadow.Camera
	player    *audio.Player
	game      Game
	closed    bool
}

// NewRuntime installs a logger built from cfg, then creates the caches and
// the renderer reading assets from src. The window opens in Run.
func NewRuntime(cfg meadow.Config, src assets.Source) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("ebitengine: runtime: asset source: %w", meadow.ErrNilDependency)
	}
	l, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}
	meadow.SetLogger(l)

	rate := beep.SampleRate(cfg.SampleRate)
	sounds := audio.NewLoader(src, rate)
	resources, err := meadow.NewResourceManager(meadow.Loaders[*ebiten.Image, *audio.Sound, *audio.Music, *Font]{
		Texture: NewTextureLoader(src),
		Sound:   sounds,
		Music:   sounds,
		Font:    NewFontLoader(src),
	})
	if err != nil {
		return nil, err
	}

	surface := NewSurface(cfg.ScreenshotDir)
	surface.ShowFPS(cfg.ShowFPS || cfg.Debug)
	renderer, err := meadow.NewRenderer[*ebiten.Image](surface, resources)
	if err != nil {
		return nil, err
	}
	renderer.SetDrawColor(cfg.ClearColor)

	rt := &Runtime{
		cfg:       cfg,
		surface:   surface,
		resources: resources,
		renderer:  renderer,
		camera:    meadow.NewCamera(cfg.LogicalSize(), meadow.Vec2{}, nil),
		player:    audio.NewPlayer(rate),
	}
	l.WithFields(logrus.Fields{
		"title":   cfg.Title,
		"logical": cfg.LogicalSize(),
		"assets":  cfg.AssetRoot,
	}).Info("runtime created")
	return rt, nil
}

// Config returns the runtime configuration.
func (rt *Runtime) Config() meadow.Config { return rt.cfg }

// Resources returns the resource manager.
func (rt *Runtime) Resources() *ResourceManager { return rt.resources }

// Renderer returns the renderer.
func (rt *Runtime) Renderer() *Renderer { return rt.renderer }

// Surface returns the draw surface.
func (rt *Runtime) Surface() *Surface { return rt.surface }

// Camera returns the main camera. Its viewport is the logical resolution
// and it is updated after every Game.Update.
func (rt *Runtime) Camera() *meadow.Camera { return rt.camera }

// Player returns the audio player.
func (rt *Runtime) Player() *audio.Player { return rt.player }

// Run opens the window and runs game until it returns an error or the
// window is closed. ebiten.Termination ends the loop without an error.
func (rt *Runtime) Run(game Game) error {
	if game == nil {
		return fmt.Errorf("ebitengine: run: game: %w", meadow.ErrNilDependency)
	}
	rt.game = game

	if err := rt.player.Init(); err != nil {
		meadow.Logger().WithError(err).Warn("audio output unavailable; continuing without sound")
	}

	ebiten.SetWindowTitle(rt.cfg.Title)
	ebiten.SetWindowSize(rt.cfg.WindowWidth, rt.cfg.WindowHeight)
	if rt.cfg.TargetFPS > 0 {
		ebiten.SetTPS(rt.cfg.TargetFPS)
	}

	err := ebiten.RunGame(&loop{rt: rt})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close releases every cached resource and the audio device. It is safe to
// call more than once.
func (rt *Runtime) Close() {
	if rt.closed {
		return
	}
	rt.closed = true
	rt.player.Close()
	rt.resources.Close()
	rt.surface.ShowFPS(false)
	meadow.Logger().Info("runtime closed")
}

// loop adapts a Runtime to ebiten.Game.
type loop struct {
	rt *Runtime
}

func (l *loop) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	dt := float32(1 / float64(tps))
	if err := l.rt.game.Update(dt); err != nil {
		return err
	}
	l.rt.camera.Update(dt)
	return nil
}

func (l *loop) Draw(screen *ebiten.Image) {
	l.rt.surface.SetTarget(screen)
	l.rt.renderer.ClearScreen()
	l.rt.game.Draw(l.rt.renderer)
	l.rt.renderer.Present()
}

func (l *loop) Layout(_, _ int) (int, int) {
	return l.rt.cfg.LogicalWidth, l.rt.cfg.LogicalHeight
}
