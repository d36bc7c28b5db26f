package quill

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction and keyboard events are forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
	EmitKeyEvent(event KeyEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	PointerID int
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, cameras, input state,
// and render buffers.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	// KeyRepeat controls synthesized key presses while a key is held.
	KeyRepeat KeyRepeat

	cameras []*Camera

	// Render state
	commands   []RenderCommand
	cullBounds Rect
	cullActive bool

	// Pointer state
	handlers handlerRegistry
	captured [maxPointers]*Node
	pointers [maxPointers]pointerState
	hitBuf   []*Node

	// Keyboard state
	keyEvents []KeyEvent
	keyBuf    []ebiten.Key

	// Synthetic input and scripted tests
	injectQueue     []syntheticPointerEvent
	injectKeys      []KeyEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		ScreenshotDir: "screenshots",
		KeyRepeat:     DefaultKeyRepeat,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes transforms, runs node updates and the test runner, and
// processes pointer and keyboard input.
func (s *Scene) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	// Refresh world transforms first so hit testing has accurate positions
	// this frame.
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	updateNodes(s.root, dt)
	for _, cam := range s.cameras {
		cam.update(float32(dt))
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
}

// Draw fills the clear color, renders the tree once per camera into the
// camera's viewport, then writes any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if len(s.cameras) == 0 {
		s.render(screen, identityTransform)
	}
	for _, cam := range s.cameras {
		s.cullActive = cam.CullEnabled
		if cam.CullEnabled {
			s.cullBounds = cam.VisibleBounds()
		}
		s.render(viewportImage(screen, cam.Viewport), cam.computeViewMatrix())
	}
	s.cullActive = false

	s.flushScreenshots(screen)
}

// viewportImage returns the part of screen covered by vp.
func viewportImage(screen *ebiten.Image, vp Rect) *ebiten.Image {
	r := image.Rect(int(vp.X), int(vp.Y), int(vp.X+vp.Width), int(vp.Y+vp.Height))
	return screen.SubImage(r).(*ebiten.Image)
}

// render emits, sorts and submits one pass of draw commands through view.
func (s *Scene) render(target *ebiten.Image, view [6]float64) {
	var stats debugStats
	lap := stats.start(s.debug)

	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, view, &treeOrder)
	stats.traverseTime = lap()

	s.sortCommands()
	stats.sortTime = lap()
	stats.commandCount = len(s.commands)

	s.submit(target)
	stats.submitTime = lap()

	s.debugLog(stats)
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// NewUICamera creates a camera whose world coordinates equal screen
// coordinates inside the given viewport.
func (s *Scene) NewUICamera(viewport Rect) *Camera {
	cam := s.NewCamera(viewport)
	cam.LookAtViewport()
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and per-frame
// timing stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
