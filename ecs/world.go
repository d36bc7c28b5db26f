package ecs

import (
	"errors"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"github.com/phanxgames/quill"
	"github.com/phanxgames/quill/textinput"
)

// ErrNoBox is returned by Spawn when WidgetNodes.Box is nil.
var ErrNoBox = errors.New("ecs: widget has no box node")

var focusedQuery = donburi.NewQuery(filter.Contains(TextInput, Focused))

// World is the widget registry. It maps scene EntityIDs to Donburi entities
// and iterates widgets in spawn order.
type World struct {
	world    donburi.World
	entities []donburi.Entity
	ids      []uint32
	byID     map[uint32]donburi.Entity
	nextID   uint32
}

// NewWorld wraps a Donburi world.
func NewWorld(world donburi.World) *World {
	return &World{
		world: world,
		byID:  make(map[uint32]donburi.Entity),
	}
}

// Donburi returns the underlying Donburi world.
func (w *World) Donburi() donburi.World {
	return w.world
}

// Spawn creates a widget entity for nodes and links nodes.Box to it through
// Node.EntityID. The label node's content becomes the initial text and the
// cursor starts hidden.
func (w *World) Spawn(nodes WidgetNodes) (donburi.Entity, error) {
	if nodes.Box == nil {
		return 0, ErrNoBox
	}
	w.nextID++
	id := w.nextID

	e := w.world.Create(TextInput, Label, Focusable)
	entry := w.world.Entry(e)
	TextInput.SetValue(entry, TextInputData{ID: id, Nodes: nodes})

	var text string
	if nodes.Label != nil && nodes.Label.TextBlock != nil {
		text = nodes.Label.TextBlock.Content
	}
	Label.SetValue(entry, LabelData{Text: text})

	if nodes.Cursor != nil {
		nodes.Cursor.Visible = false
	}
	nodes.Box.EntityID = id

	w.entities = append(w.entities, e)
	w.ids = append(w.ids, id)
	w.byID[id] = e
	return e, nil
}

// Despawn removes the widget with the given EntityID and unlinks its box.
// It reports whether the widget existed.
func (w *World) Despawn(id uint32) bool {
	e, ok := w.byID[id]
	if !ok {
		return false
	}
	if w.world.Valid(e) {
		data := TextInput.Get(w.world.Entry(e))
		if data.Nodes.Box != nil {
			data.Nodes.Box.EntityID = 0
		}
		w.world.Remove(e)
	}
	delete(w.byID, id)
	for i, wid := range w.ids {
		if wid == id {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of widgets.
func (w *World) Len() int {
	return len(w.entities)
}

// Each calls fn for every widget in spawn order.
func (w *World) Each(fn func(textinput.Widget)) {
	for i, e := range w.entities {
		if !w.world.Valid(e) {
			continue
		}
		fn(&widget{world: w.world, entity: e, id: w.ids[i]})
	}
}

// Lookup returns the widget linked to a scene EntityID.
func (w *World) Lookup(id uint32) (textinput.Widget, bool) {
	e, ok := w.byID[id]
	if !ok || !w.world.Valid(e) {
		return nil, false
	}
	return &widget{world: w.world, entity: e, id: id}, true
}

// Focused returns the focused widget, or nil.
func (w *World) Focused() textinput.Widget {
	entry, ok := focusedQuery.First(w.world)
	if !ok {
		return nil
	}
	return &widget{world: w.world, entity: entry.Entity(), id: TextInput.Get(entry).ID}
}

// applyInteraction updates a widget's interaction state from a scene event.
func (w *World) applyInteraction(ev quill.InteractionEvent) {
	e, ok := w.byID[ev.EntityID]
	if !ok || !w.world.Valid(e) {
		return
	}
	data := TextInput.Get(w.world.Entry(e))
	next, ok := transition(data.Interaction, ev)
	if !ok || next == data.Interaction {
		return
	}
	data.Interaction = next
	data.Changed = true
}

// endFrame clears every widget's changed flag.
func (w *World) endFrame() {
	for _, e := range w.entities {
		if w.world.Valid(e) {
			TextInput.Get(w.world.Entry(e)).Changed = false
		}
	}
}

// transition returns the interaction state that follows ev.
func transition(cur textinput.Interaction, ev quill.InteractionEvent) (textinput.Interaction, bool) {
	switch ev.Type {
	case quill.EventPointerEnter:
		if cur == textinput.InteractionClicked {
			return cur, true
		}
		return textinput.InteractionHovered, true
	case quill.EventPointerLeave:
		return textinput.InteractionNone, true
	case quill.EventPointerDown:
		if ev.Button != quill.MouseButtonLeft {
			return cur, false
		}
		return textinput.InteractionClicked, true
	case quill.EventPointerUp:
		if cur != textinput.InteractionClicked {
			return cur, false
		}
		return textinput.InteractionHovered, true
	}
	return cur, false
}

// widget adapts a Donburi entity to textinput.Widget.
type widget struct {
	world  donburi.World
	entity donburi.Entity
	id     uint32
}

func (w *widget) entry() *donburi.Entry {
	return w.world.Entry(w.entity)
}

func (w *widget) ID() uint32 {
	return w.id
}

func (w *widget) Interaction() (textinput.Interaction, bool) {
	data := TextInput.Get(w.entry())
	return data.Interaction, data.Changed
}

func (w *widget) SetColor(c quill.Color) {
	if bg := TextInput.Get(w.entry()).Nodes.Background; bg != nil {
		bg.Color = c
	}
}

func (w *widget) Focused() bool {
	return w.entry().HasComponent(Focused)
}

func (w *widget) SetFocused(focused bool) {
	entry := w.entry()
	switch {
	case focused && !entry.HasComponent(Focused):
		entry.AddComponent(Focused)
	case !focused && entry.HasComponent(Focused):
		entry.RemoveComponent(Focused)
	}
	if cursor := TextInput.Get(entry).Nodes.Cursor; cursor != nil {
		cursor.Visible = focused
	}
}

func (w *widget) Text() string {
	return Label.Get(w.entry()).Text
}

func (w *widget) SetText(text string) {
	entry := w.entry()
	Label.Get(entry).Text = text
	if label := TextInput.Get(entry).Nodes.Label; label != nil && label.TextBlock != nil {
		label.TextBlock.SetContent(text)
	}
}
