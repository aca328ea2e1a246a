package app

import "sync/atomic"

// terminalFullscreen adapts the terminal to the assessment's fullscreen
// port. "Fullscreen" here means the program owns the whole terminal (alt
// screen) and the terminal window has OS focus: switching away from the
// window is the analog of leaving fullscreen mode in a windowed UI.
//
// Enter and Exit flip the alt-screen flag; focus is reported by the
// terminal via focus events and recorded by the root model.
type terminalFullscreen struct {
	alt     atomic.Bool
	focused atomic.Bool
}

func newTerminalFullscreen() *terminalFullscreen {
	f := &terminalFullscreen{}
	f.alt.Store(true)
	f.focused.Store(true)
	return f
}

func (f *terminalFullscreen) Enter() error {
	f.alt.Store(true)
	return nil
}

func (f *terminalFullscreen) Exit() error {
	f.alt.Store(false)
	return nil
}

func (f *terminalFullscreen) IsActive() bool {
	return f.alt.Load() && f.focused.Load()
}

// setFocused records the latest focus report from the terminal.
func (f *terminalFullscreen) setFocused(v bool) { f.focused.Store(v) }

// altScreen reports whether the alt screen should be enabled this frame.
func (f *terminalFullscreen) altScreen() bool { return f.alt.Load() }
