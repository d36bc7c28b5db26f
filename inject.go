package quill

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// syntheticPointerEvent is one queued pointer sample in screen coordinates.
// It goes through the primary camera like real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

// InjectPress queues a pointer press event at the given screen coordinates
// (left button). The event is consumed on the next frame's input processing.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectHover queues a pointer move with no button held.
func (s *Scene) InjectHover(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		button: MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.InjectHover(x, y)
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectKey queues a press and a release of key with the given modifiers.
// All queued key events are delivered on the next frame, before real input.
func (s *Scene) InjectKey(key ebiten.Key, mods KeyModifiers) {
	s.injectKeys = append(s.injectKeys,
		KeyEvent{Key: key, State: KeyPressed, Modifiers: mods},
		KeyEvent{Key: key, State: KeyReleased, Modifiers: mods},
	)
}

// InjectText queues the key strokes that type text on a US layout.
// Returns an error naming the first rune that has no key.
func (s *Scene) InjectText(text string) error {
	for _, r := range text {
		if _, _, ok := RuneToKey(r); !ok {
			return fmt.Errorf("quill: no key types %q", r)
		}
	}
	for _, r := range text {
		key, mods, _ := RuneToKey(r)
		s.InjectKey(key, mods)
	}
	return nil
}

// processInjectedInput pops one event from the inject queue, converts
// screen to world via the primary camera, and feeds it through processPointer.
// Returns true if an event was consumed (real mouse input is skipped).
func (s *Scene) processInjectedInput(cam *Camera, mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	wx, wy := screenToWorld(cam, evt.screenX, evt.screenY)
	s.processPointer(0, wx, wy, evt.pressed, evt.button, mods)
	return true
}
