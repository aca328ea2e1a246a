package results

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/inayatwani8899/mindgauge/internal/api"
	"github.com/inayatwani8899/mindgauge/internal/router"
	"github.com/inayatwani8899/mindgauge/internal/screen"
	"github.com/inayatwani8899/mindgauge/internal/ui/layout"
	"github.com/inayatwani8899/mindgauge/internal/ui/theme"
)

// resultsLoadedMsg is sent when the results list resolves.
type resultsLoadedMsg struct {
	Results []api.Result
	Err     error
}

// ResultsScreen lists the student's completed attempts. When reached right
// after a submission it congratulates on the attempt just finished; scores
// may take a moment to appear server-side, which is fine — the list is
// whatever the platform reports.
type ResultsScreen struct {
	client  api.Client
	userID  string
	timeout time.Duration

	// justCompleted is the title of the attempt that led here, empty when
	// browsing from the lobby.
	justCompleted string

	results []api.Result
	loaded  bool
	loadErr string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen. timeout bounds the results fetch.
func New(client api.Client, userID, justCompleted string, timeout time.Duration) *ResultsScreen {
	return &ResultsScreen{
		client:        client,
		userID:        userID,
		timeout:       timeout,
		justCompleted: justCompleted,
	}
}

func (r *ResultsScreen) Init() tea.Cmd {
	return r.loadResults()
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	if r.justCompleted != "" {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to lobby"},
			{Key: "R", Description: "Refresh"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back to lobby"},
		{Key: "R", Description: "Refresh"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		r.loaded = true
		if msg.Err != nil {
			r.loadErr = msg.Err.Error()
			return r, nil
		}
		r.loadErr = ""
		r.results = msg.Results
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			r.loaded = false
			return r, r.loadResults()
		case "enter":
			// After a submission the whole attempt stack unwinds back to
			// the lobby in one step.
			if r.justCompleted != "" {
				return r, func() tea.Msg { return router.PopToRootMsg{} }
			}
		}
	}
	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	var b strings.Builder

	if r.justCompleted != "" {
		b.WriteString(theme.Title.Width(width).Render("Test submitted"))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Width(width).Render(
			fmt.Sprintf("Your answers for %q are in.", r.justCompleted)))
		b.WriteString("\n\n")
	} else {
		b.WriteString(theme.Title.Width(width).Render("Your results"))
		b.WriteString("\n\n")
	}

	switch {
	case !r.loaded:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Loading results..."))

	case r.loadErr != "":
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Could not load results: " + r.loadErr))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Press R to retry"))

	case len(r.results) == 0:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No completed attempts yet."))

	default:
		b.WriteString(renderResultRows(r.results, width))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func renderResultRows(results []api.Result, width int) string {
	var b strings.Builder
	for _, res := range results {
		title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(res.Title)
		score := lipgloss.NewStyle().Foreground(theme.Success).Render(
			fmt.Sprintf("%.1f%%", res.Score))
		when := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			res.CompletedAt.Format(time.DateOnly))

		line := fmt.Sprintf("  %s  %s  %s", title, score, when)
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *ResultsScreen) loadResults() tea.Cmd {
	client, userID, timeout := r.client, r.userID, r.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		results, err := client.ListResults(ctx, userID)
		return resultsLoadedMsg{Results: results, Err: err}
	}
}
