package quill

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and game loop started by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool

	// Update runs every tick after Scene.Update. Returning an error stops
	// the loop; ebiten.Termination ends it cleanly.
	Update func() error

	// ExitWhenScriptDone ends the loop once an attached TestRunner has run
	// all of its steps and the last frame has been drawn.
	ExitWhenScriptDone bool
}

// Game adapts a Scene to ebiten.Game.
type Game struct {
	scene     *Scene
	cfg       RunConfig
	finishing bool
}

// NewGame wraps scene in an ebiten.Game. ShowFPS attaches an FPS widget to
// the scene root.
func NewGame(scene *Scene, cfg RunConfig) *Game {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.ShowFPS {
		scene.Root().AddChild(NewFPSWidget())
	}
	return &Game{scene: scene, cfg: cfg}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.finishing {
		return ebiten.Termination
	}
	g.scene.Update()
	if g.cfg.Update != nil {
		if err := g.cfg.Update(); err != nil {
			return err
		}
	}
	if g.cfg.ExitWhenScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() {
		g.finishing = true
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs scene until the window closes or an update
// returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	g := NewGame(scene, cfg)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("quill: run: %w", err)
	}
	return nil
}
