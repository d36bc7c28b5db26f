// Package textinput implements the behavior of keyboard text-input widgets:
// hover and press colors, single-widget focus, and editing of the focused
// widget's text from key events.
//
// The package does not know how widgets are stored or drawn. Callers expose
// their widgets through a [Registry] and run the three steps once per frame,
// in this order:
//
//	textinput.Colorize(reg, palette)
//	textinput.TrackFocus(reg)
//	editor.Apply(reg, scene.KeyEvents())
//
// The ecs package provides a Donburi-backed Registry and runs these steps as
// systems.
package textinput
