package quill

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// nodeIDCounter is a plain counter (no atomic; quill is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y   float64
	ScaleX float64
	ScaleY float64
	PivotX float64
	PivotY float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Renderable   bool
	Interactable bool

	// Ordering
	ZIndex      int
	RenderLayer uint8
	GlobalOrder int

	// Metadata. EntityID links the node to an ECS entity; zero means none.
	UserData any
	EntityID uint32

	// Sprite fields (NodeTypeSprite). Without a custom image a sprite is a
	// 1x1 solid rectangle sized through ScaleX/ScaleY.
	BlendMode   BlendMode
	Color       Color
	customImage *ebiten.Image

	// Text fields (NodeTypeText)
	TextBlock *TextBlock

	// Hit testing
	HitShape HitShape

	// OnUpdate runs once per Scene.Update with the frame delta in seconds.
	OnUpdate func(dt float64)

	// Per-node callbacks (nil by default)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnClick        func(ClickContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a solid-color sprite node.
func NewSprite(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite}
	nodeDefaults(n)
	return n
}

// NewRect creates a sprite sized w x h with the given color.
func NewRect(name string, w, h float64, c Color) *Node {
	n := NewSprite(name)
	n.ScaleX = w
	n.ScaleY = h
	n.Color = c
	return n
}

// NewText creates a text node with the given content and font.
func NewText(name string, content string, font Font) *Node {
	n := &Node{
		Name: name,
		Type: NodeTypeText,
		TextBlock: &TextBlock{
			Content:     content,
			Font:        font,
			Color:       ColorWhite,
			layoutDirty: true,
		},
	}
	nodeDefaults(n)
	return n
}

// SetCustomImage sets a user-provided image to display instead of the
// solid-color rectangle.
func (n *Node) SetCustomImage(img *ebiten.Image) {
	n.customImage = img
}

// CustomImage returns the user-provided image, or nil if not set.
func (n *Node) CustomImage() *ebiten.Image {
	return n.customImage
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, detaching it from any
// previous parent. Panics if child is nil or an ancestor of n.
func (n *Node) AddChild(child *Node) {
	n.insert(child, -1)
}

// AddChildAt inserts child at the given index. Same reparenting and cycle
// rules as AddChild; panics if index is out of range.
func (n *Node) AddChildAt(child *Node, index int) {
	n.insert(child, index)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("quill: child's parent is not this node")
	}
	n.detach(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("quill: child index out of range")
	}
	child := n.children[index]
	n.detach(child)
	return child
}

// RemoveFromParent detaches this node from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.Parent != nil {
		n.Parent.detach(n)
	}
}

// RemoveChildren detaches all children. They are not disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at index, or nil when out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
// Panics if child.Parent != n or the index is out of range.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("quill: child's parent is not this node")
	}
	if index < 0 || index >= len(n.children) {
		panic("quill: child index out of range")
	}
	i := slices.Index(n.children, child)
	n.children = slices.Insert(slices.Delete(n.children, i, i+1), index, child)
	n.childrenSorted = false
}

// insert adds child at index, or appends when index is negative.
func (n *Node) insert(child *Node, index int) {
	if child == nil {
		panic("quill: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("quill: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.detach(child)
	}
	if index < 0 {
		index = len(n.children)
	}
	if index > len(n.children) {
		panic("quill: child index out of range")
	}
	child.Parent = n
	n.children = slices.Insert(n.children, index, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// detach removes child from n.children and clears its parent link.
func (n *Node) detach(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.customImage = nil
	if n.TextBlock != nil && n.TextBlock.image != nil {
		n.TextBlock.image.Deallocate()
	}
	n.TextBlock = nil
	n.UserData = nil
	n.OnUpdate = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnClick = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// updateNodes runs OnUpdate callbacks depth-first over visible nodes.
func updateNodes(n *Node, dt float64) {
	if !n.Visible {
		return
	}
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		updateNodes(child, dt)
	}
}
