package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/inayatwani8899/mindgauge/internal/ui/theme"
)

// ModalButton is one choice at the bottom of a modal.
type ModalButton struct {
	Label string
}

// Modal is a centered confirmation dialog. The caller owns the selection
// state and key handling; Modal only renders.
type Modal struct {
	Title    string
	Body     string
	Buttons  []ModalButton
	Selected int
	Danger   bool
}

// View renders the modal box centered within the given dimensions.
func (m Modal) View(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if m.Danger {
		titleStyle = titleStyle.Foreground(theme.Error)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(m.Body))
	b.WriteString("\n\n")

	parts := make([]string, 0, len(m.Buttons))
	for i, btn := range m.Buttons {
		style := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Padding(0, 2)
		if i == m.Selected {
			style = lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Bold(true).
				Padding(0, 2)
			if m.Danger {
				style = style.Background(theme.Error)
			}
		}
		parts = append(parts, style.Render(btn.Label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, parts...))

	box := theme.Modal.Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
