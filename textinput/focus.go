package textinput

// TrackFocus moves focus to a widget that was clicked this frame. Focus is
// first cleared from every other widget, so at most one widget is focused
// afterwards. Clicking the focused widget focuses it again.
//
// It returns the widget that received focus, or nil when nothing was clicked.
// If several widgets were clicked in the same frame the last one in registry
// order wins.
func TrackFocus(reg Registry) Widget {
	var clicked Widget
	reg.Each(func(w Widget) {
		if state, changed := w.Interaction(); changed && state == InteractionClicked {
			clicked = w
		}
	})
	if clicked == nil {
		return nil
	}

	reg.Each(func(w Widget) {
		if w.ID() != clicked.ID() && w.Focused() {
			w.SetFocused(false)
		}
	})
	clicked.SetFocused(true)
	return clicked
}
