// Package ecs runs text-input widgets on a [Donburi] world.
//
// [NewDonburiStore] bridges quill's interaction and keyboard events into the
// world as typed events. [World] keeps one entity per widget and implements
// textinput.Registry. [Systems] consumes the queued events once per frame and
// runs the colorizer, focus tracker and editor in a fixed order.
//
// Usage:
//
//	world := donburi.NewWorld()
//	scene.SetEntityStore(ecs.NewDonburiStore(world))
//	widgets := ecs.NewWorld(world)
//	widgets.Spawn(ecs.WidgetNodes{Box: box, Background: bg, Label: label, Cursor: cursor})
//	systems := ecs.NewSystems(widgets, textinput.DefaultPalette(), textinput.NewEditor())
//
//	// each frame, after scene.Update:
//	systems.Update()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
