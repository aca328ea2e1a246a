package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/inayatwani8899/mindgauge/internal/api"
	"github.com/inayatwani8899/mindgauge/internal/ui/theme"
)

// OptionList is a single-select answer picker for one question. Unlike a
// quiz widget it has no notion of a correct answer: the chosen option is
// simply recorded and can be changed at any time.
type OptionList struct {
	Question api.Question
	Cursor   int
	ChosenID string
}

// NewOptionList creates an option list for the given question. chosenID
// restores a previously recorded answer, if any.
func NewOptionList(q api.Question, chosenID string) OptionList {
	cursor := 0
	for i, opt := range q.Options {
		if opt.ID == chosenID {
			cursor = i
			break
		}
	}
	return OptionList{
		Question: q,
		Cursor:   cursor,
		ChosenID: chosenID,
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Question.Options)-1 {
			o.Cursor++
		}
	case "enter", "space":
		if o.Cursor >= 0 && o.Cursor < len(o.Question.Options) {
			o.ChosenID = o.Question.Options[o.Cursor].ID
		}
	}

	return o, nil
}

// View renders the question with its options, focused indicates whether
// this list currently receives keyboard input.
func (o OptionList) View(number int, focused bool) string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(fmt.Sprintf("%d. %s", number, o.Question.Text)) + "\n\n"

	for i, opt := range o.Question.Options {
		marker := "( )"
		if opt.ID == o.ChosenID {
			marker = "(●)"
		}

		prefix := "  "
		if focused && i == o.Cursor {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s %s", prefix, marker, opt.Label)

		switch {
		case focused && i == o.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case opt.ID == o.ChosenID:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
