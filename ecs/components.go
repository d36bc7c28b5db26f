package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/phanxgames/quill"
	"github.com/phanxgames/quill/textinput"
)

// WidgetNodes are the scene nodes that make up one text-input widget.
type WidgetNodes struct {
	// Box receives pointer events. It must have a HitShape.
	Box *quill.Node
	// Background is recolored from the palette.
	Background *quill.Node
	// Label displays the text buffer.
	Label *quill.Node
	// Cursor is visible only while the widget has focus.
	Cursor *quill.Node
}

// TextInputData is the per-widget interaction state.
type TextInputData struct {
	// ID is the EntityID stored on the box node.
	ID          uint32
	Nodes       WidgetNodes
	Interaction textinput.Interaction
	// Changed is set when Interaction changed this frame.
	Changed     bool
}

// LabelData holds a widget's text buffer.
type LabelData struct {
	Text string
}

var (
	TextInput = donburi.NewComponentType[TextInputData]()
	Label     = donburi.NewComponentType[LabelData]()

	// Focusable marks entities that can receive keyboard focus.
	Focusable = donburi.NewTag()
	// Focused marks the entity that currently has keyboard focus.
	Focused = donburi.NewTag()
)
