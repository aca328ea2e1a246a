package lobby

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/inayatwani8899/mindgauge/internal/api"
	sess "github.com/inayatwani8899/mindgauge/internal/assessment"
	"github.com/inayatwani8899/mindgauge/internal/router"
	"github.com/inayatwani8899/mindgauge/internal/screen"
	assessmentscreen "github.com/inayatwani8899/mindgauge/internal/screens/assessment"
	"github.com/inayatwani8899/mindgauge/internal/screens/results"
	"github.com/inayatwani8899/mindgauge/internal/ui/components"
	"github.com/inayatwani8899/mindgauge/internal/ui/theme"
)

// testsLoadedMsg is sent when the available test list resolves.
type testsLoadedMsg struct {
	Tests []api.Test
	Err   error
}

// LobbyScreen lists the assessments available to the student.
type LobbyScreen struct {
	client  api.Client
	userID  string
	port    sess.FullscreenPort
	timeout time.Duration
	log     zerolog.Logger

	menu    components.Menu
	loaded  bool
	loadErr string
}

var _ screen.Screen = (*LobbyScreen)(nil)

// New creates the lobby. The test list is fetched on Init. timeout bounds
// every API call made by this screen and the screens it opens.
func New(client api.Client, userID string, port sess.FullscreenPort, timeout time.Duration, log zerolog.Logger) *LobbyScreen {
	return &LobbyScreen{
		client:  client,
		userID:  userID,
		port:    port,
		timeout: timeout,
		log:     log,
	}
}

func (l *LobbyScreen) Init() tea.Cmd {
	return l.loadTests()
}

func (l *LobbyScreen) Title() string {
	return "Assessments"
}

func (l *LobbyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case testsLoadedMsg:
		if msg.Err != nil {
			l.loadErr = msg.Err.Error()
			l.loaded = true
			l.log.Error().Err(msg.Err).Msg("test list fetch failed")
			return l, nil
		}
		l.loadErr = ""
		l.loaded = true
		l.menu = components.NewMenu(l.buildMenu(msg.Tests))
		return l, nil

	case tea.KeyMsg:
		if l.loadErr != "" && msg.String() == "r" {
			l.loaded = false
			l.loadErr = ""
			return l, l.loadTests()
		}
	}

	if !l.loaded || l.loadErr != "" {
		return l, nil
	}

	var cmd tea.Cmd
	l.menu, cmd = l.menu.Update(msg)
	return l, cmd
}

func (l *LobbyScreen) View(width, height int) string {
	if !l.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading assessments..."))
	}
	if l.loadErr != "" {
		content := theme.Danger.Render("Could not load assessments") + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.Text).Render(l.loadErr) + "\n\n" +
			theme.Hint.Render("Press R to retry")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render("Choose an assessment"))
	b.WriteString("\n\n")
	b.WriteString(l.menu.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// buildMenu turns the test list into menu entries, with results and exit
// appended.
func (l *LobbyScreen) buildMenu(tests []api.Test) []components.MenuItem {
	items := make([]components.MenuItem, 0, len(tests)+2)
	for _, t := range tests {
		t := t
		detail := fmt.Sprintf("%d questions", t.QuestionCount)
		if t.DurationMinutes > 0 {
			detail += fmt.Sprintf(" · %d min", t.DurationMinutes)
		} else {
			detail += " · untimed"
		}
		items = append(items, components.MenuItem{
			Label:  t.Title,
			Detail: detail,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: assessmentscreen.New(l.client, l.userID, t, l.port, l.timeout, l.log),
					}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label: "My Results",
		Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: results.New(l.client, l.userID, "", l.timeout),
				}
			}
		},
	})
	items = append(items, components.MenuItem{
		Label: "Exit",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})
	return items
}

func (l *LobbyScreen) loadTests() tea.Cmd {
	client, userID, timeout := l.client, l.userID, l.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tests, err := client.ListTests(ctx, userID)
		return testsLoadedMsg{Tests: tests, Err: err}
	}
}
