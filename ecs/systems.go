package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/phanxgames/quill"
	"github.com/phanxgames/quill/textinput"
)

// Systems runs the widget logic once per frame. Update must be called after
// Scene.Update so the frame's events are already queued.
//
// The order within a frame is fixed:
//
//  1. interaction events update each widget's state
//  2. textinput.Colorize
//  3. textinput.TrackFocus
//  4. keyboard events are collected
//  5. Editor.Apply on the focused widget
//  6. changed flags are cleared
//
// Focus therefore moves before the same frame's keys are applied.
type Systems struct {
	World   *World
	Palette textinput.Palette
	// Editor applies key events. Nil disables editing.
	Editor *textinput.Editor
	// OnFocus is called when a widget receives focus.
	OnFocus func(w textinput.Widget)

	keys []quill.KeyEvent
}

// NewSystems creates the systems for w and subscribes them to the world's
// interaction and keyboard events.
func NewSystems(w *World, palette textinput.Palette, editor *textinput.Editor) *Systems {
	s := &Systems{World: w, Palette: palette, Editor: editor}
	InteractionEventType.Subscribe(w.world, s.onInteraction)
	KeyboardEventType.Subscribe(w.world, s.onKey)
	return s
}

func (s *Systems) onInteraction(_ donburi.World, ev quill.InteractionEvent) {
	s.World.applyInteraction(ev)
}

func (s *Systems) onKey(_ donburi.World, ev quill.KeyEvent) {
	s.keys = append(s.keys, ev)
}

// Update runs one frame of widget logic.
func (s *Systems) Update() {
	world := s.World.world

	InteractionEventType.ProcessEvents(world)
	textinput.Colorize(s.World, s.Palette)
	if focused := textinput.TrackFocus(s.World); focused != nil && s.OnFocus != nil {
		s.OnFocus(focused)
	}

	KeyboardEventType.ProcessEvents(world)
	if s.Editor != nil {
		s.Editor.Apply(s.World, s.keys)
	}
	clear(s.keys)
	s.keys = s.keys[:0]

	s.World.endFrame()
}
