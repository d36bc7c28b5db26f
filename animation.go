package quill

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one with TweenPosition, TweenColor, TweenAlpha or Blink and call
// Update(dt) each frame. Values are written to the node, which is marked
// dirty. A disposed target stops the group.
type TweenGroup struct {
	tweens [4]*gween.Tween
	from   [4]float32
	to     [4]float32
	fields [4]*float64
	count  int
	dur    float32
	fn     ease.TweenFunc
	target *Node

	reversed bool

	// Yoyo reverses the group each time it finishes instead of stopping.
	Yoyo bool
	Done bool
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc) *TweenGroup {
	return &TweenGroup{target: node, dur: duration, fn: fn}
}

// add registers a field animated from its current value to to.
func (g *TweenGroup) add(field *float64, to float64) {
	i := g.count
	g.fields[i] = field
	g.from[i] = float32(*field)
	g.to[i] = float32(to)
	g.tweens[i] = gween.New(g.from[i], g.to[i], g.dur, g.fn)
	g.count++
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone && g.Yoyo {
		for i := 0; i < g.count; i++ {
			g.from[i], g.to[i] = g.to[i], g.from[i]
			g.tweens[i] = gween.New(g.from[i], g.to[i], g.dur, g.fn)
		}
		g.reversed = !g.reversed
		allDone = false
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Restart writes the starting values back to the fields and rewinds the group.
func (g *TweenGroup) Restart() {
	if g.reversed {
		for i := 0; i < g.count; i++ {
			g.from[i], g.to[i] = g.to[i], g.from[i]
		}
		g.reversed = false
	}
	for i := 0; i < g.count; i++ {
		g.tweens[i] = gween.New(g.from[i], g.to[i], g.dur, g.fn)
		*g.fields[i] = float64(g.from[i])
	}
	g.Done = false
	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(node, duration, fn)
	g.add(&node.X, toX)
	g.add(&node.Y, toY)
	return g
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(node, duration, fn)
	g.add(&node.Color.R, to.R)
	g.add(&node.Color.G, to.G)
	g.add(&node.Color.B, to.B)
	g.add(&node.Color.A, to.A)
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := newTweenGroup(node, duration, fn)
	g.add(&node.Alpha, to)
	return g
}

// Blink fades node.Alpha from 1 to 0 and back, each leg taking half of period
// seconds, until the node is disposed.
func Blink(node *Node, period float32) *TweenGroup {
	node.SetAlpha(1)
	g := TweenAlpha(node, 0, period/2, ease.InOutQuad)
	g.Yoyo = true
	return g
}
