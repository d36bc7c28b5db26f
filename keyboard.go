package quill

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyState is the pressed/released state of a key event.
type KeyState uint8

const (
	KeyPressed  KeyState = iota // key went down (or repeated while held)
	KeyReleased                 // key went up
)

func (s KeyState) String() string {
	if s == KeyReleased {
		return "released"
	}
	return "pressed"
}

// KeyEvent is a single keyboard event collected during Scene.Update.
type KeyEvent struct {
	Key       ebiten.Key
	State     KeyState
	Modifiers KeyModifiers
}

// Pressed reports whether the event is a key press.
func (e KeyEvent) Pressed() bool {
	return e.State == KeyPressed
}

// KeyRepeat configures synthesized presses for held keys, in ticks.
// A zero Delay disables repeating.
type KeyRepeat struct {
	Delay    int
	Interval int
}

// DefaultKeyRepeat repeats after half a second, then every 50ms at 60 TPS.
var DefaultKeyRepeat = KeyRepeat{Delay: 30, Interval: 3}

// repeats reports whether a key held for d ticks should emit a press this tick.
func (r KeyRepeat) repeats(d int) bool {
	if r.Delay <= 0 || d <= r.Delay {
		return false
	}
	interval := r.Interval
	if interval <= 0 {
		interval = 1
	}
	return (d-r.Delay)%interval == 0
}

// OnKey registers a scene-level callback for keyboard events. Callbacks run
// in event order during Scene.Update.
func (s *Scene) OnKey(fn func(KeyEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.key = append(s.handlers.key, handler[KeyEvent]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventKey}
}

// KeyEvents returns the keyboard events collected during the most recent
// Update, in arrival order. The slice is reused each frame and MUST NOT be
// retained or mutated.
func (s *Scene) KeyEvents() []KeyEvent {
	return s.keyEvents
}

// processKeyboard collects this frame's key events: injected events first,
// then real presses, repeats and releases.
func (s *Scene) processKeyboard(mods KeyModifiers) {
	s.keyEvents = s.keyEvents[:0]

	s.keyEvents = append(s.keyEvents, s.injectKeys...)
	clear(s.injectKeys)
	s.injectKeys = s.injectKeys[:0]

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.keyEvents = append(s.keyEvents, KeyEvent{Key: k, State: KeyPressed, Modifiers: mods})
	}

	s.keyBuf = inpututil.AppendPressedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		if s.KeyRepeat.repeats(inpututil.KeyPressDuration(k)) {
			s.keyEvents = append(s.keyEvents, KeyEvent{Key: k, State: KeyPressed, Modifiers: mods})
		}
	}

	s.keyBuf = inpututil.AppendJustReleasedKeys(s.keyBuf[:0])
	for _, k := range s.keyBuf {
		s.keyEvents = append(s.keyEvents, KeyEvent{Key: k, State: KeyReleased, Modifiers: mods})
	}

	for _, ev := range s.keyEvents {
		s.dispatchKey(ev)
	}
}

func (s *Scene) dispatchKey(ev KeyEvent) {
	for _, h := range s.handlers.key {
		h.fn(ev)
	}
	if s.store != nil {
		s.store.EmitKeyEvent(ev)
	}
	if s.debug {
		debugf("key %v %v mods=%04b", ev.Key, ev.State, ev.Modifiers)
	}
}
