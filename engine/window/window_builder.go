package window

import (
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
)

// WindowBuilderOption is a functional option for configuring a vrWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *vrWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *vrWindow) {
		w.title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *vrWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *vrWindow) {
		w.height = height
	}
}

// WithRightChannel overrides the screen and viewer of the right stereo channel.
// Nil arguments keep the left channel's screen or viewer.
//
// Parameters:
//   - scr: the right channel's screen
//   - v: the right channel's viewer
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithRightChannel(scr screen.Screen, v viewer.Viewer) WindowBuilderOption {
	return func(w *vrWindow) {
		if scr != nil {
			w.screens[1] = scr
		}
		if v != nil {
			w.viewers[1] = v
		}
	}
}
