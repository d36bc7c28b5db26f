// Package app assembles the text-input program: it lays out the configured
// boxes on a quill scene, registers them as widgets in a Donburi world and
// runs the widget systems every frame.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/yohamta/donburi"

	"github.com/phanxgames/quill"
	"github.com/phanxgames/quill/config"
	"github.com/phanxgames/quill/ecs"
	"github.com/phanxgames/quill/textinput"
)

// Options are runtime switches that are not part of the config file.
type Options struct {
	// Debug enables scene debug checks and logs focus and text changes.
	Debug bool
	// ShowFPS draws the FPS widget.
	ShowFPS bool
	// Script is a JSON test script run through the scene's test runner.
	Script []byte
	// ExitWhenScriptDone stops Run after the script finishes.
	ExitWhenScriptDone bool
	// Clipboard overrides the system clipboard used for paste.
	Clipboard textinput.Clipboard
	// Log receives debug output. Nil means os.Stderr.
	Log io.Writer
}

// App is the running program.
type App struct {
	Scene   *quill.Scene
	Widgets *ecs.World
	Systems *ecs.Systems
	Boxes   []*Box

	cfg        *config.Config
	opts       Options
	lineHeight float64
	byID       map[uint32]*Box
	blinks     map[uint32]*quill.TweenGroup
}

// New builds the scene for cfg using font for every label.
func New(cfg *config.Config, font quill.Font, opts Options) (*App, error) {
	if opts.Log == nil {
		opts.Log = os.Stderr
	}
	a := &App{
		Scene:      quill.NewScene(),
		cfg:        cfg,
		opts:       opts,
		lineHeight: font.LineHeight(),
		byID:       make(map[uint32]*Box),
		blinks:     make(map[uint32]*quill.TweenGroup),
	}
	a.Scene.SetDebugMode(opts.Debug)

	world := donburi.NewWorld()
	a.Scene.SetEntityStore(ecs.NewDonburiStore(world))
	a.Widgets = ecs.NewWorld(world)

	boxes, err := Setup(a.Scene, a.Widgets, cfg, font)
	if err != nil {
		return nil, fmt.Errorf("app: setup: %w", err)
	}
	a.Boxes = boxes
	for _, b := range boxes {
		a.byID[b.Box.EntityID] = b
		if cfg.Cursor.Blink > 0 {
			a.addBlink(b)
		}
	}

	a.Systems = ecs.NewSystems(a.Widgets, palette(cfg.Palette), a.newEditor())
	a.Systems.OnFocus = a.onFocus

	if len(opts.Script) > 0 {
		runner, err := quill.LoadTestScript(opts.Script)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		a.Scene.SetTestRunner(runner)
	}
	return a, nil
}

func palette(p config.Palette) textinput.Palette {
	return textinput.Palette{
		Normal:  p.Normal.Quill(),
		Hovered: p.Hovered.Quill(),
		Pressed: p.Pressed.Quill(),
	}
}

func (a *App) newEditor() *textinput.Editor {
	ed := &textinput.Editor{
		Mapper:    quill.KeyToRune,
		MaxLength: a.cfg.Editor.MaxLength,
		OnChange:  a.onChange,
	}
	if a.cfg.Editor.Paste {
		ed.Clipboard = a.opts.Clipboard
		if ed.Clipboard == nil {
			ed.Clipboard = textinput.SystemClipboard{}
		}
	}
	return ed
}

// addBlink fades the box's cursor in and out while it is visible.
func (a *App) addBlink(b *Box) {
	blink := quill.Blink(b.Cursor, float32(a.cfg.Cursor.Blink))
	a.blinks[b.Box.EntityID] = blink
	b.Cursor.OnUpdate = func(dt float64) {
		blink.Update(float32(dt))
	}
}

func (a *App) onFocus(w textinput.Widget) {
	if blink, ok := a.blinks[w.ID()]; ok {
		blink.Restart()
	}
	if b, ok := a.byID[w.ID()]; ok {
		a.logf("focus %q", b.Input.Label)
	}
}

func (a *App) onChange(w textinput.Widget, text string) {
	b, ok := a.byID[w.ID()]
	if !ok {
		return
	}
	layoutBox(b, a.cfg.Cursor, a.lineHeight)
	if blink, ok := a.blinks[w.ID()]; ok {
		blink.Restart()
	}
	a.logf("text %q = %q", b.Input.Label, text)
}

func (a *App) logf(format string, args ...any) {
	if !a.opts.Debug {
		return
	}
	_, _ = fmt.Fprintf(a.opts.Log, "[textinput] "+format+"\n", args...)
}

// Focused returns the focused box, or nil.
func (a *App) Focused() *Box {
	w := a.Widgets.Focused()
	if w == nil {
		return nil
	}
	return a.byID[w.ID()]
}

// Text returns the text of box i.
func (a *App) Text(i int) string {
	w, ok := a.Widgets.Lookup(a.Boxes[i].Box.EntityID)
	if !ok {
		return ""
	}
	return w.Text()
}

// Step runs the widget systems for the current frame. It must follow
// Scene.Update.
func (a *App) Step() error {
	a.Systems.Update()
	return nil
}

// Frame runs one full update: scene input followed by the widget systems.
func (a *App) Frame() error {
	a.Scene.Update()
	return a.Step()
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	return quill.Run(a.Scene, quill.RunConfig{
		Title:              a.cfg.Window.Title,
		Width:              a.cfg.Window.Width,
		Height:             a.cfg.Window.Height,
		Resizable:          a.cfg.Window.Resizable,
		ShowFPS:            a.opts.ShowFPS,
		Update:             a.Step,
		ExitWhenScriptDone: a.opts.ExitWhenScriptDone,
	})
}
