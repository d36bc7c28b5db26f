package textinput

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/quill"
)

// fakeWidget is an in-memory Widget.
type fakeWidget struct {
	id      uint32
	state   Interaction
	changed bool
	color   quill.Color
	focused bool
	cursor  bool
	text    string
	sets    int
}

func (w *fakeWidget) ID() uint32 { return w.id }
func (w *fakeWidget) Interaction() (Interaction, bool) { return w.state, w.changed }
func (w *fakeWidget) SetColor(c quill.Color) { w.color = c }
func (w *fakeWidget) Focused() bool { return w.focused }
func (w *fakeWidget) Text() string { return w.text }

func (w *fakeWidget) SetFocused(focused bool) {
	w.focused = focused
	w.cursor = focused
}

func (w *fakeWidget) SetText(text string) {
	w.text = text
	w.sets++
}

// fakeRegistry holds widgets in insertion order.
type fakeRegistry []*fakeWidget

func newRegistry(n int) fakeRegistry {
	reg := make(fakeRegistry, n)
	for i := range reg {
		reg[i] = &fakeWidget{id: uint32(i + 1)}
	}
	return reg
}

func (r fakeRegistry) Each(fn func(Widget)) {
	for _, w := range r {
		fn(w)
	}
}

// setInteraction simulates the host changing a widget's state this frame.
func (r fakeRegistry) setInteraction(i int, state Interaction) {
	w := r[i]
	w.changed = w.state != state
	w.state = state
}

// endFrame clears every changed flag.
func (r fakeRegistry) endFrame() {
	for _, w := range r {
		w.changed = false
	}
}

// click runs the press transition on widget i followed by a focus pass.
func (r fakeRegistry) click(i int) Widget {
	r.setInteraction(i, InteractionClicked)
	got := TrackFocus(r)
	r.endFrame()
	r.setInteraction(i, InteractionHovered)
	TrackFocus(r)
	r.endFrame()
	return got
}

func (r fakeRegistry) focusedCount() int {
	n := 0
	for _, w := range r {
		if w.focused {
			n++
		}
	}
	return n
}

func press(k ebiten.Key) quill.KeyEvent {
	return quill.KeyEvent{Key: k, State: quill.KeyPressed}
}

func release(k ebiten.Key) quill.KeyEvent {
	return quill.KeyEvent{Key: k, State: quill.KeyReleased}
}

func chord(k ebiten.Key, mods quill.KeyModifiers) quill.KeyEvent {
	return quill.KeyEvent{Key: k, State: quill.KeyPressed, Modifiers: mods}
}
