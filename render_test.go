package quill

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// traverseScene runs the command-emission half of Draw with an identity view.
func traverseScene(s *Scene) {
	s.commands = s.commands[:0]
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	treeOrder := 0
	s.traverse(s.root, identityTransform, &treeOrder)
}

// --- Command emission ---

func TestTraverseEmission(t *testing.T) {
	tests := []struct {
		name  string
		setup func(root *Node)
		want  int
	}{
		{"single sprite", func(root *Node) { root.AddChild(NewSprite("s")) }, 1},
		{"container", func(root *Node) { root.AddChild(NewContainer("c")) }, 0},
		{"invisible", func(root *Node) {
			s := NewSprite("s")
			s.Visible = false
			root.AddChild(s)
		}, 0},
		{"invisible subtree", func(root *Node) {
			p := NewContainer("p")
			p.Visible = false
			p.AddChild(NewSprite("child"))
			root.AddChild(p)
		}, 0},
		{"non-renderable parent", func(root *Node) {
			p := NewSprite("p")
			p.Renderable = false
			p.AddChild(NewSprite("child"))
			root.AddChild(p)
		}, 1},
		{"transparent", func(root *Node) {
			s := NewSprite("s")
			s.Alpha = 0
			root.AddChild(s)
		}, 0},
		{"text without font", func(root *Node) { root.AddChild(NewText("t", "hello", nil)) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			tt.setup(s.Root())
			traverseScene(s)
			if len(s.commands) != tt.want {
				t.Errorf("commands = %d, want %d", len(s.commands), tt.want)
			}
		})
	}
}

func TestSpriteCommandUsesWhitePixel(t *testing.T) {
	s := NewScene()
	bg := NewRect("bg", 300, 65, RGB(0.1, 0.5, 0.1))
	bg.SetPosition(10, 20)
	s.Root().AddChild(bg)

	traverseScene(s)

	cmd := s.commands[0]
	if cmd.Image != WhitePixel {
		t.Error("plain sprite should draw the white pixel")
	}
	assertMatrix(t, "transform", cmd.Transform, [6]float64{300, 0, 0, 65, 10, 20})
	if cmd.Color != RGB(0.1, 0.5, 0.1) {
		t.Errorf("Color = %v", cmd.Color)
	}
}

func TestCustomImageCommand(t *testing.T) {
	s := NewScene()
	img := ebiten.NewImage(4, 4)
	n := NewSprite("img")
	n.SetCustomImage(img)
	s.Root().AddChild(n)

	traverseScene(s)
	if len(s.commands) != 1 || s.commands[0].Image != img {
		t.Error("custom image should be drawn directly")
	}
}

func TestWorldAlphaInCommand(t *testing.T) {
	s := NewScene()
	p := NewContainer("p")
	p.Alpha = 0.5
	c := NewSprite("c")
	c.Alpha = 0.5
	p.AddChild(c)
	s.Root().AddChild(p)

	traverseScene(s)
	if math.Abs(s.commands[0].Color.A-0.25) > 1e-9 {
		t.Errorf("alpha = %v, want 0.25", s.commands[0].Color.A)
	}
}

func TestViewTransformDoesNotMutateWorld(t *testing.T) {
	s := NewScene()
	n := NewSprite("n")
	n.SetPosition(5, 5)
	s.Root().AddChild(n)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	view := [6]float64{2, 0, 0, 2, 100, 0}
	treeOrder := 0
	s.commands = s.commands[:0]
	s.traverse(s.root, view, &treeOrder)

	assertMatrix(t, "command", s.commands[0].Transform, [6]float64{2, 0, 0, 2, 110, 10})
	assertMatrix(t, "world", n.worldTransform, [6]float64{1, 0, 0, 1, 5, 5})
}

func TestCullingSkipsOffscreen(t *testing.T) {
	s := NewScene()
	on := NewRect("on", 10, 10, ColorWhite)
	off := NewRect("off", 10, 10, ColorWhite)
	off.SetPosition(5000, 0)
	s.Root().AddChild(on)
	s.Root().AddChild(off)

	s.cullActive = true
	s.cullBounds = Rect{Width: 1280, Height: 720}
	traverseScene(s)
	if len(s.commands) != 1 {
		t.Errorf("commands = %d, want 1", len(s.commands))
	}
}

// --- Ordering ---

func TestTreeOrderAndZIndex(t *testing.T) {
	s := NewScene()
	a := NewSprite("a")
	b := NewSprite("b")
	c := NewSprite("c")
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	s.Root().AddChild(c)
	a.SetZIndex(2)

	traverseScene(s)
	s.sortCommands()

	// ZIndex moves a after b and c in traversal order.
	want := []int{1, 2, 3}
	for i, cmd := range s.commands {
		if cmd.treeOrder != want[i] {
			t.Errorf("treeOrder[%d] = %d, want %d", i, cmd.treeOrder, want[i])
		}
	}
	if s.orderedChildren(s.root)[2] != a {
		t.Error("a should be traversed last")
	}
}

func TestSortCommands(t *testing.T) {
	s := NewScene()
	s.commands = []RenderCommand{
		{RenderLayer: 1, treeOrder: 1},
		{RenderLayer: 0, GlobalOrder: 5, treeOrder: 2},
		{RenderLayer: 0, GlobalOrder: 0, treeOrder: 4},
		{RenderLayer: 0, GlobalOrder: 0, treeOrder: 3},
		{RenderLayer: 255, treeOrder: 0},
	}
	s.sortCommands()

	want := []int{3, 4, 2, 1, 0}
	for i, cmd := range s.commands {
		if cmd.treeOrder != want[i] {
			t.Errorf("commands[%d].treeOrder = %d, want %d", i, cmd.treeOrder, want[i])
		}
	}
}

func TestGeoMMatchesAffine(t *testing.T) {
	m := [6]float64{2, 0, 0, 3, 10, 20}
	g := geoM(m)
	x, y := g.Apply(5, 7)
	wx, wy := transformPoint(m, 5, 7)
	if x != wx || y != wy {
		t.Errorf("geoM.Apply = (%v, %v), want (%v, %v)", x, y, wx, wy)
	}
}

func TestSortCommandsEdgeCases(t *testing.T) {
	s := NewScene()
	s.sortCommands()
	s.commands = []RenderCommand{{treeOrder: 7}}
	s.sortCommands()
	if s.commands[0].treeOrder != 7 {
		t.Error("single command should be unchanged")
	}
}

func TestDrawWithUICamera(t *testing.T) {
	s := NewScene()
	s.NewUICamera(Rect{Width: 64, Height: 64})
	s.ClearColor = RGB(0, 0, 0)
	bg := NewRect("bg", 10, 10, RGB(1, 0, 0))
	bg.SetPosition(8, 8)
	s.Root().AddChild(bg)

	screen := ebiten.NewImage(64, 64)
	s.Draw(screen)
	if len(s.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(s.commands))
	}
	assertMatrix(t, "ui camera", s.commands[0].Transform, [6]float64{10, 0, 0, 10, 8, 8})
}
