package textinput

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/quill"
)

// Interaction is a widget's pointer interaction state.
type Interaction uint8

const (
	InteractionNone    Interaction = iota // pointer is elsewhere
	InteractionHovered                    // pointer is over the widget
	InteractionClicked                    // pointer is pressed on the widget
)

var interactionNames = [...]string{
	InteractionNone:    "none",
	InteractionHovered: "hovered",
	InteractionClicked: "clicked",
}

func (i Interaction) String() string {
	if int(i) < len(interactionNames) {
		return interactionNames[i]
	}
	return "unknown"
}

// Widget is a text-input widget as seen by the colorizer, focus tracker and
// editor.
type Widget interface {
	// ID identifies the widget; it matches the scene node's EntityID.
	ID() uint32
	// Interaction returns the current state and whether it changed this frame.
	Interaction() (state Interaction, changed bool)
	SetColor(c quill.Color)
	Focused() bool
	// SetFocused sets the focus flag and shows or hides the widget's cursor.
	SetFocused(focused bool)
	Text() string
	SetText(text string)
}

// Registry gives the widget logic access to every widget.
type Registry interface {
	// Each calls fn for every widget in a stable order. fn may mutate the
	// widget it is given.
	Each(fn func(Widget))
}

// KeyMapper maps a key and modifier state to the printable character it
// types, if any.
type KeyMapper func(key ebiten.Key, mods quill.KeyModifiers) (rune, bool)

// Focused returns the focused widget, or nil when no widget has focus.
func Focused(reg Registry) Widget {
	var focused Widget
	reg.Each(func(w Widget) {
		if focused == nil && w.Focused() {
			focused = w
		}
	})
	return focused
}
