package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/inayatwani8899/mindgauge/internal/api"
	sess "github.com/inayatwani8899/mindgauge/internal/assessment"
	"github.com/inayatwani8899/mindgauge/internal/ui/components"
	"github.com/inayatwani8899/mindgauge/internal/ui/theme"
)

func (s *AssessmentScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.test == nil {
		return renderLoading(width, height, "Loading test...")
	}

	// Overlays replace the page content entirely; the terminal has no
	// real z-axis worth fighting for.
	if s.guard.Stage() != sess.GuardIdle {
		return s.renderGuardPrompt(width, height)
	}
	if s.modal != modalNone {
		return s.renderModal(width, height)
	}

	switch s.session.Step() {
	case sess.StepInstructions:
		return s.renderInstructions(width, height)
	case sess.StepConfirmation:
		return s.renderConfirmation(width, height)
	}

	if s.session.Pipeline().InFlight() {
		return renderLoading(width, height, "Submitting your answers...")
	}

	return s.renderQuestionPage(width, height)
}

func (s *AssessmentScreen) renderInstructions(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render(s.test.Title))
	b.WriteString("\n\n")

	duration := "No time limit"
	if s.test.DurationMinutes > 0 {
		duration = fmt.Sprintf("%d minutes", s.test.DurationMinutes)
	}

	lines := []string{
		fmt.Sprintf("Questions      %d", s.test.QuestionCount),
		fmt.Sprintf("Per page       %d", s.test.QuestionsPerPage),
		fmt.Sprintf("Time limit     %s", duration),
	}
	info := lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(info))
	b.WriteString("\n\n")

	instructions := []string{
		"• Answer each question by selecting one option.",
		"• You can move between pages and change answers at any time.",
		"• Your answers are kept for the whole attempt, across pages.",
	}
	if s.test.DurationMinutes > 0 {
		instructions = append(instructions,
			"• The test runs in fullscreen. Leaving it will pause for your decision.",
			"• When the timer reaches zero the test is submitted automatically.",
		)
	}
	body := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(instructions, "\n"))
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(body))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Press Enter to continue"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *AssessmentScreen) renderConfirmation(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Ready to begin?"))
	b.WriteString("\n\n")

	msg := "Once you start, leaving the test submits your answers."
	if s.test.DurationMinutes == 0 {
		msg = "Take as long as you need. Submit when you are done."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(msg))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Enter to start  ·  Esc to go back"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *AssessmentScreen) renderQuestionPage(width, height int) string {
	page := s.cache.Page()
	if page == nil || s.cache.Loading() {
		return renderLoading(width, height, "Loading questions...")
	}

	var b strings.Builder

	// Page position and answer progress.
	answered := s.cache.AnsweredOnPage()
	info := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Page %d/%d", page.Page, page.TotalPages))
	detail := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d answered on this page", answered, len(page.Questions)))

	infoLine := info
	rightPad := width - lipgloss.Width(info) - lipgloss.Width(detail) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + detail
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", page.Page, page.TotalPages, width-4)
	b.WriteString("  " + bar.View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.pageErr != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("  Could not load the page: " + s.pageErr))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  Press R to retry."))
		b.WriteString("\n\n")
	}

	first := firstQuestionNumber(page, s.cache.PageSize())
	for i := range s.options {
		b.WriteString(s.options[i].View(first+i, i == s.focused))
		b.WriteString("\n")
	}

	if s.jumpActive {
		b.WriteString("\n  Go to page: " + s.jumpInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (s *AssessmentScreen) renderGuardPrompt(width, height int) string {
	var m components.Modal
	switch s.guard.Stage() {
	case sess.GuardStageDecision:
		m = components.Modal{
			Title: "You left fullscreen",
			Body:  "The test is paused for this decision.\nWhat would you like to do?",
			Buttons: []components.ModalButton{
				{Label: "Continue Test"},
				{Label: "Exit Test"},
			},
			Selected: s.modalSel,
			Danger:   true,
		}
	case sess.GuardStageReturn:
		m = components.Modal{
			Title: "Continue the test",
			Body:  "Return to fullscreen, or keep working in a window?",
			Buttons: []components.ModalButton{
				{Label: "Return to Fullscreen"},
				{Label: "Continue Windowed"},
			},
			Selected: s.modalSel,
		}
	}
	return m.View(width, height)
}

func (s *AssessmentScreen) renderModal(width, height int) string {
	var m components.Modal
	switch s.modal {
	case modalExit:
		m = components.Modal{
			Title: "Exit the test?",
			Body:  "Leaving now submits your answers as they are.\nThis cannot be undone.",
			Buttons: []components.ModalButton{
				{Label: "Keep Working"},
				{Label: "Submit & Exit"},
			},
			Selected: s.modalSel,
			Danger:   true,
		}
	case modalSubmitFailed:
		body := "Your answers could not be submitted."
		if s.submitErr != nil {
			body += "\n" + s.submitErr.Error()
		}
		m = components.Modal{
			Title: "Submission failed",
			Body:  body,
			Buttons: []components.ModalButton{
				{Label: "Retry"},
				{Label: "Dismiss"},
			},
			Selected: s.modalSel,
			Danger:   true,
		}
	}
	return m.View(width, height)
}

// firstQuestionNumber computes the attempt-wide number of the page's first
// question, so numbering stays continuous across pages.
func firstQuestionNumber(page *api.QuestionPage, pageSize int) int {
	return (page.Page-1)*pageSize + 1
}

func renderLoading(width, height int, msg string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(msg))
}

func renderError(width, height int, msg string) string {
	content := theme.Danger.Render("Something went wrong") + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Render(msg) + "\n\n" +
		theme.Hint.Render("Press any key to go back")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
