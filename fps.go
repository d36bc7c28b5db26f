package quill

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewFPSWidget creates a sprite that shows the current FPS and TPS, refreshed
// about twice a second. It draws above everything else.
func NewFPSWidget() *Node {
	img := ebiten.NewImage(100, 32)

	node := NewSprite("fps_widget")
	node.SetCustomImage(img)
	node.RenderLayer = 255

	var elapsed float64
	redraw := func() {
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	redraw()

	node.OnUpdate = func(dt float64) {
		elapsed += dt
		if elapsed < 0.5 {
			return
		}
		elapsed = 0
		redraw()
	}
	return node
}
