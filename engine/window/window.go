package window

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-vr/common"
	"github.com/Carmen-Shannon/oxy-vr/engine/screen"
	"github.com/Carmen-Shannon/oxy-vr/engine/viewer"
)

// Window is a VR rendering window. Each of its two stereo channels renders one viewer's eye
// through one screen; a monoscopic window uses the same screen and viewer on both channels.
type Window interface {
	// Title returns the window title.
	//
	// Returns:
	//   - string: the window title
	Title() string

	// Screen returns the screen rendered by a stereo channel.
	//
	// Parameters:
	//   - channel: common.ChannelLeft or common.ChannelRight
	//
	// Returns:
	//   - screen.Screen: the channel's screen, or nil for an invalid channel
	Screen(channel int) screen.Screen

	// Viewer returns the viewer rendered by a stereo channel.
	//
	// Parameters:
	//   - channel: common.ChannelLeft or common.ChannelRight
	//
	// Returns:
	//   - viewer.Viewer: the channel's viewer, or nil for an invalid channel
	Viewer(channel int) viewer.Viewer

	// Width returns the window client area width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the window client area height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// SetSize updates the window client area size after a resize.
	//
	// Parameters:
	//   - width, height: new size in pixels
	SetSize(width, height int)

	// TryCheckout marks the window's screen/viewer pair as exclusively owned by one camera rig.
	//
	// Returns:
	//   - bool: true if the pair was free and is now checked out
	TryCheckout() bool

	// Return releases a checkout taken with TryCheckout.
	Return()

	// CheckedOut reports whether the screen/viewer pair is currently checked out.
	CheckedOut() bool
}

// vrWindow is the implementation of the Window interface.
type vrWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// width is the current window client area width in pixels.
	width int

	// height is the current window client area height in pixels.
	height int

	// screens holds the screen rendered by each stereo channel.
	screens [2]screen.Screen

	// viewers holds the viewer rendered by each stereo channel.
	viewers [2]viewer.Viewer

	// checkedOut is set while a camera rig owns the screen/viewer pair.
	checkedOut atomic.Bool
}

var _ Window = &vrWindow{}

// NewWindow creates a new Window rendering scr for viewer v on both stereo channels.
// Use WithRightChannel to give the right channel a different pair.
// Panics if scr or v is nil.
//
// Parameters:
//   - scr: the screen for both channels
//   - v: the viewer for both channels
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(scr screen.Screen, v viewer.Viewer, options ...WindowBuilderOption) Window {
	if scr == nil || v == nil {
		panic("window: NewWindow requires a non-nil Screen and Viewer")
	}
	w := &vrWindow{
		mu:      &sync.Mutex{},
		title:   "Default Window Title",
		width:   1280,
		height:  720,
		screens: [2]screen.Screen{scr, scr},
		viewers: [2]viewer.Viewer{v, v},
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *vrWindow) Title() string {
	return w.title
}

func (w *vrWindow) Screen(channel int) screen.Screen {
	if channel != common.ChannelLeft && channel != common.ChannelRight {
		return nil
	}
	return w.screens[channel]
}

func (w *vrWindow) Viewer(channel int) viewer.Viewer {
	if channel != common.ChannelLeft && channel != common.ChannelRight {
		return nil
	}
	return w.viewers[channel]
}

func (w *vrWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *vrWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *vrWindow) SetSize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width = width
	w.height = height
}

func (w *vrWindow) TryCheckout() bool {
	return w.checkedOut.CompareAndSwap(false, true)
}

func (w *vrWindow) Return() {
	w.checkedOut.Store(false)
}

func (w *vrWindow) CheckedOut() bool {
	return w.checkedOut.Load()
}

func (w *vrWindow) String() string {
	return fmt.Sprintf("%s (%dx%d)", w.title, w.Width(), w.Height())
}
