package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/inayatwani8899/mindgauge/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// HeaderStatusProvider is an optional interface for screens that show
// live status in the header (the attempt screen puts the countdown there).
type HeaderStatusProvider interface {
	HeaderStatus() string
}

// ExitGuard is an optional interface for screens that must confirm leave
// attempts. The root model consults it before acting on Esc or Ctrl+C; a
// true result means the screen consumed the attempt (typically by opening a
// confirmation prompt) and navigation must not proceed.
type ExitGuard interface {
	GuardExit() (tea.Cmd, bool)
}
