// Package quill is a small retained-mode UI layer for [Ebitengine] with
// keyboard-driven text input widgets.
//
// quill provides the scene graph, transform hierarchy, pointer and keyboard
// input, TTF text rendering and a UI camera. Widget behavior (hover colors,
// focus, text editing) lives in the textinput package and runs as systems
// over a [Donburi] world in the ecs package.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := quill.NewScene()
//	// ... add nodes ...
//	quill.Run(scene, quill.RunConfig{
//		Title: "My App", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
//
// For solid-color rectangles, use [NewSprite] and set [Node.Color] and
// [Node.ScaleX]/[Node.ScaleY]:
//
//	box := quill.NewSprite("box")
//	box.ScaleX, box.ScaleY = 80, 40
//	box.Color = quill.Color{R: 0.3, G: 0.7, B: 1, A: 1}
//
// # Input
//
// Pointer input is hit-tested against interactable nodes and delivered as
// scene-level handlers, per-node callbacks, and [InteractionEvent] values
// forwarded to an [EntityStore]. Keyboard input is collected once per frame
// as an ordered list of [KeyEvent] values; see [Scene.KeyEvents].
//
// Input can be synthesized with [Scene.InjectClick], [Scene.InjectKey] and
// [Scene.InjectText], or scripted with a [TestRunner].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package quill
