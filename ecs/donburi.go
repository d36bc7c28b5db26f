package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/quill"
)

// InteractionEventType is the Donburi event type for quill interaction events.
// Subscribe to it to receive pointer and click events for nodes with an
// EntityID.
var InteractionEventType = events.NewEventType[quill.InteractionEvent]()

// KeyboardEventType is the Donburi event type for quill key events.
var KeyboardEventType = events.NewEventType[quill.KeyEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are queued on InteractionEventType and KeyboardEventType and
// delivered by ProcessEvents.
func NewDonburiStore(world donburi.World) quill.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event quill.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

func (s *donburiStore) EmitKeyEvent(event quill.KeyEvent) {
	KeyboardEventType.Publish(s.world, event)
}
