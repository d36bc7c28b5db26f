package app

import (
	"github.com/phanxgames/quill"
	"github.com/phanxgames/quill/config"
	"github.com/phanxgames/quill/ecs"
)

// Box is one text-input box in the scene.
type Box struct {
	ecs.WidgetNodes
	Input config.Input
}

// rowPositions places boxes of the given widths in a row of width rowW with
// equal auto margins on both sides of every box. Boxes wider than the row
// are packed from the left with no margins.
func rowPositions(rowW float64, widths []float64) []float64 {
	xs := make([]float64, len(widths))
	if len(widths) == 0 {
		return xs
	}
	total := 0.0
	for _, w := range widths {
		total += w
	}
	margin := (rowW - total) / float64(2*len(widths))
	if margin < 0 {
		margin = 0
	}
	x := 0.0
	for i, w := range widths {
		x += margin
		xs[i] = x
		x += w + margin
	}
	return xs
}

// align positions an item of size item inside [0, size) with padding.
func align(a config.Align, size, padding, item float64) float64 {
	switch a {
	case config.AlignCenter:
		return (size - item) / 2
	case config.AlignEnd:
		return size - padding - item
	default:
		return padding
	}
}

// layoutBox positions the label and cursor inside a box. The label and the
// cursor (with its margin on both sides) form one row that is justified
// horizontally; each is aligned vertically on its own.
func layoutBox(b *Box, cursor config.Cursor, lineHeight float64) {
	in := b.Input
	labelW, _ := b.Label.TextBlock.Measure()
	cursorW := cursor.Width + 2*cursor.Margin
	rowW := labelW + cursorW

	x := align(in.Justify, in.Width, in.Padding, rowW)
	b.Label.SetPosition(x, align(in.Align, in.Height, in.Padding, lineHeight))
	b.Cursor.SetPosition(
		x+labelW+cursor.Margin,
		align(in.Align, in.Height, in.Padding, cursor.Height+2*cursor.Margin)+cursor.Margin,
	)
}

// newBox builds the nodes for one input: an interactive container holding
// the background, the label and the cursor, in draw order.
func newBox(in config.Input, cfg *config.Config, font quill.Font) *Box {
	box := quill.NewContainer(in.Label)
	box.Interactable = true
	box.HitShape = quill.HitRect{Width: in.Width, Height: in.Height}

	bg := quill.NewRect(in.Label+"_bg", in.Width, in.Height, cfg.Palette.Normal.Quill())

	label := quill.NewText(in.Label+"_label", in.Label, font)
	label.TextBlock.Color = cfg.TextColor.Quill()

	cursor := quill.NewRect(in.Label+"_cursor", cfg.Cursor.Width, cfg.Cursor.Height, cfg.Cursor.Color.Quill())

	box.AddChild(bg)
	box.AddChild(label)
	box.AddChild(cursor)
	return &Box{
		WidgetNodes: ecs.WidgetNodes{Box: box, Background: bg, Label: label, Cursor: cursor},
		Input:       in,
	}
}

// Setup builds the scene: a UI camera over the window, a full-window row
// container and one box per configured input, each registered with widgets.
func Setup(scene *quill.Scene, widgets *ecs.World, cfg *config.Config, font quill.Font) ([]*Box, error) {
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)

	scene.NewUICamera(quill.Rect{Width: w, Height: h})
	scene.ClearColor = cfg.Window.Background.Quill()

	row := quill.NewContainer("row")
	row.Interactable = true
	scene.Root().AddChild(row)

	widths := make([]float64, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		widths[i] = in.Width
	}
	xs := rowPositions(w, widths)

	lineHeight := font.LineHeight()
	boxes := make([]*Box, 0, len(cfg.Inputs))
	for i, in := range cfg.Inputs {
		b := newBox(in, cfg, font)
		b.Box.SetPosition(xs[i], (h-in.Height)/2)
		row.AddChild(b.Box)
		layoutBox(b, cfg.Cursor, lineHeight)
		if _, err := widgets.Spawn(b.WidgetNodes); err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}
