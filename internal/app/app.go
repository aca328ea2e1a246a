package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/inayatwani8899/mindgauge/internal/api"
	"github.com/inayatwani8899/mindgauge/internal/config"
	"github.com/inayatwani8899/mindgauge/internal/router"
	"github.com/inayatwani8899/mindgauge/internal/screen"
	"github.com/inayatwani8899/mindgauge/internal/screens/assessment"
	"github.com/inayatwani8899/mindgauge/internal/screens/lobby"
	"github.com/inayatwani8899/mindgauge/internal/ui/layout"
)

// Options carries everything the UI needs from the command layer.
type Options struct {
	API api.Client
	Cfg *config.Config
	Log zerolog.Logger

	// TestID, when set, opens the assessment directly instead of the lobby.
	TestID string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	fullscreen *terminalFullscreen
	log        zerolog.Logger
	initial    tea.Cmd
	width      int
	height     int
}

// newAppModel creates a new AppModel with the lobby screen on the stack.
// A preselected test is pushed on top of it, so finishing or backing out
// still lands in the lobby.
func newAppModel(opts Options) AppModel {
	fs := newTerminalFullscreen()
	lobbyScreen := lobby.New(opts.API, opts.Cfg.UserID, fs, opts.Cfg.RequestTimeout, opts.Log)
	m := AppModel{
		router:     router.New(lobbyScreen),
		fullscreen: fs,
		log:        opts.Log,
		initial:    lobbyScreen.Init(),
	}
	if opts.TestID != "" {
		target := assessment.New(opts.API, opts.Cfg.UserID, api.Test{ID: opts.TestID}, fs, opts.Cfg.RequestTimeout, opts.Log)
		m.initial = tea.Batch(m.initial, func() tea.Msg {
			return router.PushScreenMsg{Screen: target}
		})
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	return m.initial
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.FocusMsg:
		m.fullscreen.setFocused(true)

	case tea.BlurMsg:
		m.fullscreen.setFocused(false)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if guard, ok := m.router.Active().(screen.ExitGuard); ok {
				if cmd, consumed := guard.GuardExit(); consumed {
					return m, cmd
				}
			}
			return m, tea.Quit
		case "esc":
			if guard, ok := m.router.Active().(screen.ExitGuard); ok {
				if cmd, consumed := guard.GuardExit(); consumed {
					return m, cmd
				}
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = m.fullscreen.altScreen()
	v.ReportFocus = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	status := ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.HeaderStatusProvider); ok {
			status = sp.HeaderStatus()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
