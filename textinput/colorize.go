package textinput

import "github.com/phanxgames/quill"

// Palette holds the three widget background colors.
type Palette struct {
	Normal  quill.Color
	Hovered quill.Color
	Pressed quill.Color
}

// DefaultPalette returns near-black normal and hover colors and a green
// pressed color.
func DefaultPalette() Palette {
	return Palette{
		Normal:  quill.RGB(0.02, 0.02, 0.02),
		Hovered: quill.RGB(0.05, 0.05, 0.05),
		Pressed: quill.RGB(0.1, 0.5, 0.1),
	}
}

// ColorFor returns the color for an interaction state. Unknown states use
// the normal color.
func (p Palette) ColorFor(state Interaction) quill.Color {
	switch state {
	case InteractionHovered:
		return p.Hovered
	case InteractionClicked:
		return p.Pressed
	default:
		return p.Normal
	}
}

// Colorize sets the color of every widget whose interaction changed this
// frame and returns how many were recolored.
func Colorize(reg Registry, p Palette) int {
	n := 0
	reg.Each(func(w Widget) {
		state, changed := w.Interaction()
		if !changed {
			return
		}
		w.SetColor(p.ColorFor(state))
		n++
	})
	return n
}
