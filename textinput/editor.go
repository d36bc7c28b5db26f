package textinput

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/quill"
)

// Edit applies a single key event to text and reports whether text changed.
// Release events and keys without a character are ignored. Backspace removes
// the last grapheme cluster and does nothing on empty text. A nil mapper
// uses quill.KeyToRune.
func Edit(text string, ev quill.KeyEvent, mapper KeyMapper) (string, bool) {
	if !ev.Pressed() {
		return text, false
	}
	if ev.Key == ebiten.KeyBackspace {
		if text == "" {
			return text, false
		}
		return dropLastGrapheme(text), true
	}
	if mapper == nil {
		mapper = quill.KeyToRune
	}
	r, ok := mapper(ev.Key, ev.Modifiers)
	if !ok {
		return text, false
	}
	return text + string(r), true
}

// Editor applies key events to the focused widget's text.
type Editor struct {
	// Mapper converts keys to characters. Nil means quill.KeyToRune.
	Mapper KeyMapper
	// Clipboard enables paste on Ctrl+V, Meta+V and Shift+Insert when set.
	Clipboard Clipboard
	// MaxLength caps the text length in grapheme clusters. Zero means no limit.
	MaxLength int
	// OnChange is called after a widget's text changes.
	OnChange func(w Widget, text string)
}

// NewEditor returns an editor using the US key layout and the system
// clipboard.
func NewEditor() *Editor {
	return &Editor{
		Mapper:    quill.KeyToRune,
		Clipboard: SystemClipboard{},
	}
}

// isPaste reports whether ev is a paste chord.
func isPaste(ev quill.KeyEvent) bool {
	switch ev.Key {
	case ebiten.KeyV:
		return ev.Modifiers.Has(quill.ModCtrl) || ev.Modifiers.Has(quill.ModMeta)
	case ebiten.KeyInsert:
		return ev.Modifiers.Has(quill.ModShift)
	}
	return false
}

// Apply processes events in order against the focused widget and returns the
// number of events that changed its text. When no widget is focused the
// events are discarded.
func (e *Editor) Apply(reg Registry, events []quill.KeyEvent) int {
	if len(events) == 0 {
		return 0
	}
	w := Focused(reg)
	if w == nil {
		return 0
	}

	text := w.Text()
	edits := 0
	for _, ev := range events {
		next, changed := e.apply(text, ev)
		if !changed || next == text {
			continue
		}
		text = next
		edits++
	}
	if edits > 0 {
		w.SetText(text)
		if e.OnChange != nil {
			e.OnChange(w, text)
		}
	}
	return edits
}

func (e *Editor) apply(text string, ev quill.KeyEvent) (string, bool) {
	if ev.Pressed() && e.Clipboard != nil && isPaste(ev) {
		clip, err := e.Clipboard.ReadAll()
		if err != nil {
			return text, false
		}
		clip = printable(clip)
		if clip == "" {
			return text, false
		}
		return e.limit(text, text+clip)
	}
	next, changed := Edit(text, ev, e.Mapper)
	if !changed {
		return text, false
	}
	if ev.Key == ebiten.KeyBackspace {
		return next, true
	}
	return e.limit(text, next)
}

// limit enforces MaxLength on an insertion that turned prev into next.
func (e *Editor) limit(prev, next string) (string, bool) {
	if e.MaxLength <= 0 || graphemeCount(next) <= e.MaxLength {
		return next, true
	}
	if graphemeCount(prev) >= e.MaxLength {
		return prev, false
	}
	return truncateGraphemes(next, e.MaxLength), true
}
