package quill

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera maps a world-space region onto a screen viewport. UI cameras look
// at their own viewport so world and screen coordinates coincide; panning
// and zoom are available for scrolled or scaled layouts.
type Camera struct {
	// X and Y are the world position shown at the viewport center.
	X, Y float64
	// Zoom scales world units to screen pixels. 1 means no scaling.
	Zoom float64
	// Viewport is the screen rectangle this camera draws into.
	Viewport Rect

	// CullEnabled skips nodes that lie entirely outside VisibleBounds.
	CullEnabled bool

	view, inv [6]float64
	// seen holds the X, Y and Zoom the cached matrices were built from.
	seen  [3]float64
	fresh bool

	scroll [2]*gween.Tween
}

func newCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport, CullEnabled: true}
}

// center returns the viewport center in screen coordinates.
func (c *Camera) center() (float64, float64) {
	return c.Viewport.X + c.Viewport.Width/2, c.Viewport.Y + c.Viewport.Height/2
}

// LookAtViewport centers the camera on its own viewport at zoom 1, so world
// coordinates equal screen coordinates. Any scroll in progress stops.
func (c *Camera) LookAtViewport() {
	c.X, c.Y = c.center()
	c.Zoom = 1
	c.scroll = [2]*gween.Tween{}
}

// ScrollTo pans the camera to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, fn ease.TweenFunc) {
	c.scroll[0] = gween.New(float32(c.X), float32(x), duration, fn)
	c.scroll[1] = gween.New(float32(c.Y), float32(y), duration, fn)
}

// Scrolling reports whether a ScrollTo pan is still running.
func (c *Camera) Scrolling() bool {
	return c.scroll[0] != nil || c.scroll[1] != nil
}

// update advances the scroll tweens by dt seconds.
func (c *Camera) update(dt float32) {
	axes := [2]*float64{&c.X, &c.Y}
	for i, tw := range c.scroll {
		if tw == nil {
			continue
		}
		v, done := tw.Update(dt)
		*axes[i] = float64(v)
		if done {
			c.scroll[i] = nil
		}
	}
}

// MarkDirty drops the cached view matrix.
func (c *Camera) MarkDirty() {
	c.fresh = false
}

// matrices returns the view matrix and its inverse, rebuilding them when
// the camera moved or zoomed.
//
// view = Translate(viewport center) * Scale(Zoom) * Translate(-X, -Y)
func (c *Camera) matrices() (view, inv [6]float64) {
	state := [3]float64{c.X, c.Y, c.Zoom}
	if c.fresh && state == c.seen {
		return c.view, c.inv
	}
	cx, cy := c.center()
	z := c.Zoom
	c.view = [6]float64{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.inv = invertAffine(c.view)
	c.seen = state
	c.fresh = true
	return c.view, c.inv
}

func (c *Camera) computeViewMatrix() [6]float64 {
	view, _ := c.matrices()
	return view
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	view, _ := c.matrices()
	return transformPoint(view, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	_, inv := c.matrices()
	return transformPoint(inv, sx, sy)
}

// VisibleBounds returns the world-space rectangle shown in the viewport.
func (c *Camera) VisibleBounds() Rect {
	_, inv := c.matrices()
	vp := c.Viewport
	return transformedRect(inv, vp.X, vp.Y, vp.Width, vp.Height)
}

// transformedRect returns the axis-aligned bounds of the rectangle
// (x, y, w, h) after transforming its corners by m.
func transformedRect(m [6]float64, x, y, w, h float64) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}} {
		px, py := transformPoint(m, p[0], p[1])
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// worldAABB is the world bounding box of a node-local w x h rectangle.
func worldAABB(m [6]float64, w, h float64) Rect {
	return transformedRect(m, 0, 0, w, h)
}

// nodeDimensions returns the local width and height of a node. A sprite
// without a custom image is a unit square sized through its scale.
func nodeDimensions(n *Node) (w, h float64) {
	switch {
	case n.Type == NodeTypeSprite && n.customImage != nil:
		b := n.customImage.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	case n.Type == NodeTypeSprite:
		return 1, 1
	case n.Type == NodeTypeText && n.TextBlock != nil:
		return n.TextBlock.Measure()
	}
	return 0, 0
}

// shouldCull reports whether n lies entirely outside bounds. Containers and
// nodes with no size are never culled.
func shouldCull(n *Node, bounds Rect) bool {
	if n.Type == NodeTypeContainer {
		return false
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return !worldAABB(n.worldTransform, w, h).Intersects(bounds)
}
