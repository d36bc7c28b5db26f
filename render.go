package quill

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Transform   [6]float64
	Image       *ebiten.Image
	Color       Color
	BlendMode   BlendMode
	RenderLayer uint8
	GlobalOrder int
	treeOrder   int // assigned during traversal for stable sort
}

// traverse walks the node tree depth-first and emits render commands for
// visible, renderable nodes. World transforms must already be current; view is
// applied on top of them without modifying the node.
func (s *Scene) traverse(n *Node, view [6]float64, treeOrder *int) {
	if !n.Visible {
		return
	}

	// Culling only suppresses this node's own command. Children are always
	// traversed since their bounds may lie outside the parent's.
	culled := s.cullActive && n.Renderable && shouldCull(n, s.cullBounds)

	if n.Renderable && !culled && n.worldAlpha > 0 {
		var img *ebiten.Image
		switch n.Type {
		case NodeTypeSprite:
			img = n.customImage
			if img == nil {
				img = WhitePixel
			}
		case NodeTypeText:
			if n.TextBlock != nil {
				img = n.TextBlock.textImage()
			}
		}
		if img != nil {
			*treeOrder++
			c := n.Color
			c.A *= n.worldAlpha
			s.commands = append(s.commands, RenderCommand{
				Transform:   multiplyAffine(view, n.worldTransform),
				Image:       img,
				Color:       c,
				BlendMode:   n.BlendMode,
				RenderLayer: n.RenderLayer,
				GlobalOrder: n.GlobalOrder,
				treeOrder:   *treeOrder,
			})
		}
	}

	for _, child := range s.orderedChildren(n) {
		s.traverse(child, view, treeOrder)
	}
}

// orderedChildren returns n's children in ZIndex order, re-sorting the
// cached order when the child list or a ZIndex changed.
func (s *Scene) orderedChildren(n *Node) []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		n.sortedChildren = append(n.sortedChildren[:0], n.children...)
		slices.SortStableFunc(n.sortedChildren, func(a, b *Node) int {
			return cmp.Compare(a.ZIndex, b.ZIndex)
		})
		n.childrenSorted = true
	}
	if n.sortedChildren != nil {
		return n.sortedChildren
	}
	return n.children
}

// compareCommands orders commands by RenderLayer, then GlobalOrder, then
// tree order.
func compareCommands(a, b RenderCommand) int {
	return cmp.Or(
		cmp.Compare(a.RenderLayer, b.RenderLayer),
		cmp.Compare(a.GlobalOrder, b.GlobalOrder),
		cmp.Compare(a.treeOrder, b.treeOrder),
	)
}

// sortCommands sorts s.commands in draw order.
func (s *Scene) sortCommands() {
	slices.SortFunc(s.commands, compareCommands)
}

// submit draws the sorted commands onto target.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		op.GeoM = geoM(cmd.Transform)

		op.ColorScale.Reset()
		a := float32(clamp01(cmd.Color.A))
		op.ColorScale.Scale(
			float32(clamp01(cmd.Color.R))*a,
			float32(clamp01(cmd.Color.G))*a,
			float32(clamp01(cmd.Color.B))*a,
			a,
		)
		op.Blend = cmd.BlendMode.EbitenBlend()
		target.DrawImage(cmd.Image, &op)
	}
}

// geoM converts an [a, b, c, d, tx, ty] matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
