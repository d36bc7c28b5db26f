package quill

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// maxPointers bounds the pointer slots: slot 0 is the mouse, 1-9 are touches.
const maxPointers = 10

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// PointerContext carries pointer event data to scene-level and per-node
// callbacks.
type PointerContext struct {
	Node      *Node
	EntityID  uint32
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers
}

// ClickContext carries click event data.
type ClickContext = PointerContext

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	pressNode *Node       // node under the pointer when the button went down
	hoverNode *Node       // node currently hovered, for enter/leave
	button    MouseButton // button captured at press time
	touchID   ebiten.TouchID
	touchUsed bool
}

type handler[T any] struct {
	id uint32
	fn func(T)
}

func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

// handlerRegistry holds scene-level callbacks. Pointer handlers are indexed
// by EventType; every type below EventKey is a pointer event.
type handlerRegistry struct {
	pointer [EventKey][]handler[PointerContext]
	key     []handler[KeyEvent]
	nextID  uint32
}

func (r *handlerRegistry) add(event EventType, fn func(PointerContext)) CallbackHandle {
	r.nextID++
	r.pointer[event] = append(r.pointer[event], handler[PointerContext]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	switch {
	case h.reg == nil:
	case h.event == EventKey:
		h.reg.key = removeHandler(h.reg.key, h.id)
	case h.event < EventKey:
		h.reg.pointer[h.event] = removeHandler(h.reg.pointer[h.event], h.id)
	}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback fired when the pointer
// moves onto a node.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback fired when the pointer
// leaves the node it was hovering.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return s.handlers.add(EventClick, fn)
}

// CapturePointer routes all events for pointerID to the given node.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable appends interactable nodes to buf in painter order.
// Hidden or non-interactable subtrees are skipped.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range s.orderedChildren(n) {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest returns the topmost interactable node at (worldX, worldY), or nil.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

var modifierKeys = [...]struct {
	key ebiten.Key
	mod KeyModifiers
}{
	{ebiten.KeyShift, ModShift},
	{ebiten.KeyControl, ModCtrl},
	{ebiten.KeyAlt, ModAlt},
	{ebiten.KeyMeta, ModMeta},
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	for _, m := range modifierKeys {
		if ebiten.IsKeyPressed(m.key) {
			mods |= m.mod
		}
	}
	return mods
}

// processInput handles pointer and keyboard input for one frame. World
// transforms are already refreshed when it runs.
func (s *Scene) processInput() {
	mods := readModifiers()

	var cam *Camera
	if len(s.cameras) > 0 {
		cam = s.cameras[0]
	}

	if !s.processInjectedInput(cam, mods) {
		s.processMousePointer(cam, mods)
	}
	s.processTouchPointers(cam, mods)
	s.processKeyboard(mods)
}

// screenToWorld converts screen coordinates through the primary camera.
func screenToWorld(cam *Camera, sx, sy float64) (float64, float64) {
	if cam != nil {
		return cam.ScreenToWorld(sx, sy)
	}
	return sx, sy
}

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	mb MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// processMousePointer feeds the mouse through pointer slot 0.
func (s *Scene) processMousePointer(cam *Camera, mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	wx, wy := screenToWorld(cam, float64(mx), float64(my))

	pressed, button := false, MouseButtonLeft
	for _, b := range mouseButtons {
		if ebiten.IsMouseButtonPressed(b.eb) {
			pressed, button = true, b.mb
			break
		}
	}
	s.processPointer(0, wx, wy, pressed, button, mods)
}

// processTouchPointers feeds active touches through slots 1-9 and releases
// slots whose touch ended.
func (s *Scene) processTouchPointers(cam *Camera, mods KeyModifiers) {
	var active [maxPointers]bool
	for _, tid := range ebiten.AppendTouchIDs(nil) {
		slot := s.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		wx, wy := screenToWorld(cam, float64(tx), float64(ty))
		s.processPointer(slot, wx, wy, true, MouseButtonLeft, mods)
	}

	for i := 1; i < maxPointers; i++ {
		ps := &s.pointers[i]
		if !ps.touchUsed || active[i] {
			continue
		}
		if ps.down {
			s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft, mods)
		}
		ps.touchUsed = false
	}
}

// touchSlot returns the slot bound to tid, binding a free one if needed.
// Returns -1 when every touch slot is taken.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	free := -1
	for i := 1; i < maxPointers; i++ {
		ps := &s.pointers[i]
		if ps.touchUsed && ps.touchID == tid {
			return i
		}
		if !ps.touchUsed && free < 0 {
			free = i
		}
	}
	if free > 0 {
		s.pointers[free].touchUsed = true
		s.pointers[free].touchID = tid
	}
	return free
}

// processPointer advances one pointer's state machine. Hover changes fire
// leave then enter; a release over the node that saw the press fires a click
// before the up event.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointers[pointerID]

	target := s.captured[pointerID]
	if target == nil {
		target = s.hitTest(wx, wy)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.dispatch(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button, mods)
		}
		if target != nil {
			s.dispatch(EventPointerEnter, target, pointerID, wx, wy, button, mods)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.pressNode = target
		s.dispatch(EventPointerDown, target, pointerID, wx, wy, button, mods)

	case !pressed && ps.down:
		if ps.pressNode != nil && ps.pressNode == target {
			s.dispatch(EventClick, target, pointerID, wx, wy, ps.button, mods)
		}
		s.dispatch(EventPointerUp, target, pointerID, wx, wy, ps.button, mods)
		s.captured[pointerID] = nil
		ps.down = false
		ps.pressNode = nil

	case wx != ps.lastX || wy != ps.lastY:
		if ps.down {
			button = ps.button
		}
		s.dispatch(EventPointerMove, target, pointerID, wx, wy, button, mods)
	}
	ps.lastX, ps.lastY = wx, wy
}

// --- Event dispatch ---

// nodeCallback returns the per-node callback for a pointer event, or nil.
func nodeCallback(n *Node, event EventType) func(PointerContext) {
	switch event {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerMove:
		return n.OnPointerMove
	case EventClick:
		return n.OnClick
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	}
	return nil
}

// dispatch runs scene-level handlers, then the node's own callback, then
// forwards the event to the entity store.
func (s *Scene) dispatch(event EventType, node *Node, pointerID int, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := PointerContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		Button: button, PointerID: pointerID, Modifiers: mods,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	}

	for _, h := range s.handlers.pointer[event] {
		h.fn(ctx)
	}
	if node == nil {
		return
	}
	if cb := nodeCallback(node, event); cb != nil {
		cb(ctx)
	}
	if s.store != nil && node.EntityID != 0 {
		s.store.EmitEvent(InteractionEvent{
			Type: event, EntityID: node.EntityID, PointerID: pointerID,
			GlobalX: wx, GlobalY: wy, LocalX: ctx.LocalX, LocalY: ctx.LocalY,
			Button: button, Modifiers: mods,
		})
	}
	if s.debug && event != EventPointerMove {
		debugf("%v node=%q entity=%d", event, node.Name, node.EntityID)
	}
}
