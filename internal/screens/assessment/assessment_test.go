package assessment

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/inayatwani8899/mindgauge/internal/api"
	sess "github.com/inayatwani8899/mindgauge/internal/assessment"
	"github.com/inayatwani8899/mindgauge/internal/router"
)

// fakePort implements sess.FullscreenPort for testing.
type fakePort struct {
	active bool
	enters int
	exits  int
}

func (p *fakePort) Enter() error  { p.active = true; p.enters++; return nil }
func (p *fakePort) Exit() error   { p.active = false; p.exits++; return nil }
func (p *fakePort) IsActive() bool { return p.active }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testScreen(t *testing.T) (*AssessmentScreen, *api.MockClient, *fakePort) {
	t.Helper()
	client := api.NewDemoClient()
	port := &fakePort{}
	summary := api.Test{ID: "demo-aptitude", Title: "Demo Aptitude"}
	s := New(client, "student-1", summary, port, 5*time.Second, zerolog.Nop())
	return s, client, port
}

// runCmd executes a command and returns the message it produces.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

// startInProgress walks a screen through load, instructions, confirmation
// and the first page so tests can begin at a running attempt.
func startInProgress(t *testing.T, s *AssessmentScreen, client *api.MockClient) *AssessmentScreen {
	t.Helper()

	msg := runCmd(t, s.Init())
	scr, _ := s.Update(msg)
	s = scr.(*AssessmentScreen)
	if s.test == nil {
		t.Fatal("test metadata not loaded")
	}

	scr, _ = s.Update(specialKey(tea.KeyEnter)) // instructions -> confirmation
	s = scr.(*AssessmentScreen)
	scr, cmd := s.Update(specialKey(tea.KeyEnter)) // confirmation -> in progress
	s = scr.(*AssessmentScreen)
	if cmd == nil {
		t.Fatal("expected page load + tick commands on start")
	}
	if s.session.Step() != sess.StepInProgress {
		t.Fatalf("step = %v, want in progress", s.session.Step())
	}

	// Resolve the first page load directly; the batch also carries the
	// timer tick, which tests drive by hand.
	page, err := client.GetQuestions(context.Background(), api.QuestionQuery{
		TestID: s.testID, Page: 1, PageSize: s.cache.PageSize(), SessionID: s.session.ID,
	})
	if err != nil {
		t.Fatalf("GetQuestions: %v", err)
	}
	scr, _ = s.Update(pageLoadedMsg{Gen: 1, Page: page})
	return scr.(*AssessmentScreen)
}

func TestStepFlow(t *testing.T) {
	s, client, port := testScreen(t)
	s = startInProgress(t, s, client)

	if port.enters == 0 {
		t.Error("expected fullscreen enter on start")
	}
	if s.cache.Page() == nil {
		t.Fatal("expected first page to be loaded")
	}
	if _, ok := s.session.TimeRemaining(); !ok {
		t.Error("expected a running countdown for a timed test")
	}
}

func TestEscRetreatsFromConfirmation(t *testing.T) {
	s, _, _ := testScreen(t)
	msg := runCmd(t, s.Init())
	scr, _ := s.Update(msg)
	s = scr.(*AssessmentScreen)

	scr, _ = s.Update(specialKey(tea.KeyEnter))
	s = scr.(*AssessmentScreen)
	if s.session.Step() != sess.StepConfirmation {
		t.Fatalf("step = %v, want confirmation", s.session.Step())
	}

	_, consumed := s.GuardExit()
	if !consumed {
		t.Fatal("expected esc to be consumed at confirmation")
	}
	if s.session.Step() != sess.StepInstructions {
		t.Errorf("step = %v, want instructions after retreat", s.session.Step())
	}
}

func TestManualSubmit(t *testing.T) {
	s, client, port := testScreen(t)
	s = startInProgress(t, s, client)

	scr, cmd := s.Update(keyPress('s'))
	s = scr.(*AssessmentScreen)
	if !s.session.Pipeline().InFlight() {
		t.Fatal("expected submission in flight after S")
	}
	if port.exits == 0 {
		t.Error("expected fullscreen exit on submit")
	}

	msg := runCmd(t, cmd)
	scr, cmd = s.Update(msg)
	s = scr.(*AssessmentScreen)
	if !s.session.Pipeline().Completed() {
		t.Fatal("expected completed pipeline after successful submit")
	}
	if client.SubmitCalls != 1 {
		t.Errorf("submit calls = %d, want 1", client.SubmitCalls)
	}

	nav := runCmd(t, cmd)
	if _, ok := nav.(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected screen replacement after submit, got %T", nav)
	}
}

func TestTimerExpirySubmitsExactlyOnce(t *testing.T) {
	s, client, port := testScreen(t)
	s = startInProgress(t, s, client)

	remaining, _ := s.session.TimeRemaining()

	var submitCmd tea.Cmd
	for i := 0; i < remaining+5; i++ {
		scr, cmd := s.Update(timerTickMsg{})
		s = scr.(*AssessmentScreen)
		if s.session.Pipeline().InFlight() && submitCmd == nil {
			submitCmd = cmd
		}
	}
	if submitCmd == nil {
		t.Fatal("expected the countdown to trigger a submission")
	}
	if port.exits == 0 {
		t.Error("expected fullscreen exit on timeout submit")
	}

	// A manual submit racing the expiry must not start a second call.
	_, cmd := s.Update(keyPress('s'))
	if cmd != nil {
		t.Error("expected manual submit to be a no-op while submitting")
	}

	msg := runCmd(t, submitCmd)
	fin, ok := msg.(submitFinishedMsg)
	if !ok {
		t.Fatalf("expected submitFinishedMsg, got %T", msg)
	}
	if fin.Reason != sess.ReasonTimeout {
		t.Errorf("reason = %q, want timeout", fin.Reason)
	}
	scr, _ := s.Update(msg)
	s = scr.(*AssessmentScreen)
	if client.SubmitCalls != 1 {
		t.Errorf("submit calls = %d, want 1", client.SubmitCalls)
	}
	if !s.session.Pipeline().Completed() {
		t.Error("expected completed pipeline")
	}
}

func TestExitConfirmSubmits(t *testing.T) {
	s, client, _ := testScreen(t)
	s = startInProgress(t, s, client)

	_, consumed := s.GuardExit()
	if !consumed {
		t.Fatal("expected esc to be consumed while armed")
	}
	if s.modal != modalExit {
		t.Fatal("expected exit confirmation modal")
	}

	// First button keeps working.
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*AssessmentScreen)
	if s.modal != modalNone || cmd != nil {
		t.Fatal("expected Keep Working to close the modal and do nothing")
	}

	// Esc again, choose Submit & Exit.
	_, _ = s.GuardExit()
	scr, _ = s.Update(specialKey(tea.KeyTab))
	s = scr.(*AssessmentScreen)
	scr, cmd = s.Update(specialKey(tea.KeyEnter))
	s = scr.(*AssessmentScreen)
	if s.session.Pipeline().Reason() != sess.ReasonUserExit {
		t.Errorf("reason = %q, want user_exit", s.session.Pipeline().Reason())
	}

	msg := runCmd(t, cmd)
	s.Update(msg)
	if client.SubmitCalls != 1 {
		t.Errorf("submit calls = %d, want 1", client.SubmitCalls)
	}
}

func TestSubmitFailureReArmsForRetry(t *testing.T) {
	s, client, port := testScreen(t)
	s = startInProgress(t, s, client)
	client.SubmitErrs = []error{errors.New("boom")}

	scr, cmd := s.Update(keyPress('s'))
	s = scr.(*AssessmentScreen)
	msg := runCmd(t, cmd)
	scr, _ = s.Update(msg)
	s = scr.(*AssessmentScreen)

	if s.modal != modalSubmitFailed {
		t.Fatal("expected failure modal")
	}
	if s.session.Pipeline().InFlight() || s.session.Pipeline().Completed() {
		t.Fatal("expected a re-armed pipeline after failure")
	}
	if port.active != true {
		t.Error("expected fullscreen re-entered after failed submit")
	}

	// Retry succeeds.
	scr, cmd = s.Update(specialKey(tea.KeyEnter))
	s = scr.(*AssessmentScreen)
	msg = runCmd(t, cmd)
	scr, _ = s.Update(msg)
	s = scr.(*AssessmentScreen)
	if !s.session.Pipeline().Completed() {
		t.Error("expected completed pipeline after retry")
	}
	if client.SubmitCalls != 2 {
		t.Errorf("submit calls = %d, want 2", client.SubmitCalls)
	}
}

func TestCountdownSurvivesFailedSubmission(t *testing.T) {
	s, client, _ := testScreen(t)
	s = startInProgress(t, s, client)
	client.SubmitErrs = []error{errors.New("boom")}

	before, _ := s.session.TimeRemaining()

	scr, submitCmd := s.Update(keyPress('s'))
	s = scr.(*AssessmentScreen)

	// A tick landing while the call is in flight keeps the chain alive
	// without consuming attempt time.
	scr, cmd := s.Update(timerTickMsg{})
	s = scr.(*AssessmentScreen)
	if cmd == nil {
		t.Fatal("expected the tick chain to continue during submission")
	}
	if got, _ := s.session.TimeRemaining(); got != before {
		t.Errorf("remaining = %d, want %d while submission in flight", got, before)
	}

	msg := runCmd(t, submitCmd)
	scr, _ = s.Update(msg)
	s = scr.(*AssessmentScreen)
	if s.modal != modalSubmitFailed {
		t.Fatal("expected failure modal")
	}

	// The countdown resumes decrementing after the failure.
	scr, cmd = s.Update(timerTickMsg{})
	s = scr.(*AssessmentScreen)
	if cmd == nil {
		t.Fatal("expected the tick chain to continue after a failed submission")
	}
	if got, _ := s.session.TimeRemaining(); got != before-1 {
		t.Errorf("remaining = %d, want %d after failure", got, before-1)
	}

	// Expiry still auto-submits the attempt.
	var timeoutCmd tea.Cmd
	for i := 0; i < before+5; i++ {
		scr, cmd = s.Update(timerTickMsg{})
		s = scr.(*AssessmentScreen)
		if s.session.Pipeline().InFlight() {
			timeoutCmd = cmd
			break
		}
	}
	if timeoutCmd == nil {
		t.Fatal("expected expiry to submit after the earlier failure")
	}
	if s.session.Pipeline().Reason() != sess.ReasonTimeout {
		t.Errorf("reason = %q, want timeout", s.session.Pipeline().Reason())
	}
	scr, _ = s.Update(runCmd(t, timeoutCmd))
	s = scr.(*AssessmentScreen)
	if !s.session.Pipeline().Completed() {
		t.Error("expected completed pipeline")
	}
	if client.SubmitCalls != 2 {
		t.Errorf("submit calls = %d, want 2", client.SubmitCalls)
	}
}

func TestFullscreenLossPrompts(t *testing.T) {
	s, client, port := testScreen(t)
	s = startInProgress(t, s, client)

	port.active = false
	scr, _ := s.Update(tea.BlurMsg{})
	s = scr.(*AssessmentScreen)
	if s.guard.Stage() != sess.GuardStageDecision {
		t.Fatal("expected decision prompt after fullscreen loss")
	}

	// Continue Test, then Return to Fullscreen.
	scr, _ = s.Update(specialKey(tea.KeyEnter))
	s = scr.(*AssessmentScreen)
	if s.guard.Stage() != sess.GuardStageReturn {
		t.Fatal("expected return prompt after Continue Test")
	}
	scr, _ = s.Update(specialKey(tea.KeyEnter))
	s = scr.(*AssessmentScreen)
	if s.guard.Stage() != sess.GuardIdle {
		t.Fatal("expected prompt closed")
	}
	if !port.active {
		t.Error("expected fullscreen re-entered")
	}
}

func TestAnswersSurvivePageNavigation(t *testing.T) {
	s, client, _ := testScreen(t)
	s = startInProgress(t, s, client)

	q := s.cache.Page().Questions[0]
	scr, _ := s.Update(specialKey(tea.KeyEnter)) // select focused option
	s = scr.(*AssessmentScreen)
	if _, ok := s.cache.Answer(q.ID); !ok {
		t.Fatal("expected answer recorded")
	}

	// Navigate forward and back; the recorded answer survives.
	scr, cmd := s.Update(keyPress('n'))
	s = scr.(*AssessmentScreen)
	msg := runCmd(t, cmd)
	scr, _ = s.Update(msg)
	s = scr.(*AssessmentScreen)
	if s.cache.Page().Page != 2 {
		t.Fatalf("page = %d, want 2", s.cache.Page().Page)
	}

	scr, cmd = s.Update(keyPress('p'))
	s = scr.(*AssessmentScreen)
	msg = runCmd(t, cmd)
	scr, _ = s.Update(msg)
	s = scr.(*AssessmentScreen)
	if got, ok := s.cache.Answer(q.ID); !ok || got == "" {
		t.Error("expected answer restored after navigating back")
	}
	if s.options[0].ChosenID == "" {
		t.Error("expected option list to show the restored answer")
	}
}

func TestUntimedTestHasNoGuard(t *testing.T) {
	client := api.NewDemoClient()
	port := &fakePort{}
	s := New(client, "student-1", api.Test{ID: "demo-personality", Title: "Demo Personality"}, port, 5*time.Second, zerolog.Nop())

	msg := runCmd(t, s.Init())
	scr, _ := s.Update(msg)
	s = scr.(*AssessmentScreen)
	scr, _ = s.Update(specialKey(tea.KeyEnter))
	s = scr.(*AssessmentScreen)
	scr, _ = s.Update(specialKey(tea.KeyEnter))
	s = scr.(*AssessmentScreen)

	if _, ok := s.session.TimeRemaining(); ok {
		t.Error("expected no countdown for an untimed test")
	}
	if s.session.GuardArmed() {
		t.Error("expected guard disarmed for an untimed test")
	}
	if _, consumed := s.GuardExit(); consumed {
		t.Error("expected esc to pass through on an untimed test")
	}
}
