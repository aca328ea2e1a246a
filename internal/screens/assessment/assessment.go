package assessment

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/inayatwani8899/mindgauge/internal/api"
	sess "github.com/inayatwani8899/mindgauge/internal/assessment"
	"github.com/inayatwani8899/mindgauge/internal/router"
	"github.com/inayatwani8899/mindgauge/internal/screen"
	"github.com/inayatwani8899/mindgauge/internal/screens/results"
	"github.com/inayatwani8899/mindgauge/internal/ui/components"
	"github.com/inayatwani8899/mindgauge/internal/ui/layout"
	"github.com/inayatwani8899/mindgauge/internal/ui/theme"
)

// modalKind identifies which confirmation overlay is showing, if any. The
// fullscreen guard's two prompts are tracked by the guard itself.
type modalKind int

const (
	modalNone modalKind = iota
	modalExit
	modalSubmitFailed
)

// AssessmentScreen drives one attempt at one test: instructions,
// confirmation, the question pages, and the submission flow.
type AssessmentScreen struct {
	client  api.Client
	timeout time.Duration
	log     zerolog.Logger

	session *sess.Session
	cache   *sess.PageCache
	guard   *sess.FullscreenGuard
	port    sess.FullscreenPort

	testID string
	title  string
	test   *api.Test

	options []components.OptionList
	focused int // question index within the current page

	modal      modalKind
	modalSel   int
	lastReason sess.TriggerReason
	submitErr  error

	jumpActive bool
	jumpInput  components.TextInput

	pageErr    string
	lastTarget int // page index to retry after a load failure

	errMsg string
}

var _ screen.Screen = (*AssessmentScreen)(nil)
var _ screen.KeyHintProvider = (*AssessmentScreen)(nil)
var _ screen.ExitGuard = (*AssessmentScreen)(nil)
var _ screen.HeaderStatusProvider = (*AssessmentScreen)(nil)

// New creates a screen for the given test. The summary carries the ID and
// title; authoritative metadata is fetched on Init. timeout bounds each of
// the screen's API calls.
func New(client api.Client, userID string, summary api.Test, port sess.FullscreenPort, timeout time.Duration, log zerolog.Logger) *AssessmentScreen {
	return &AssessmentScreen{
		client:  client,
		timeout: timeout,
		log:     log,
		session: sess.New(summary.ID, userID),
		guard:   sess.NewFullscreenGuard(port),
		port:    port,
		testID:  summary.ID,
		title:   summary.Title,
	}
}

func (s *AssessmentScreen) Init() tea.Cmd {
	return s.loadTest()
}

func (s *AssessmentScreen) Title() string {
	return s.title
}

// HeaderStatus shows the countdown while a timed attempt is running.
func (s *AssessmentScreen) HeaderStatus() string {
	remaining, ok := s.session.TimeRemaining()
	if !ok {
		return ""
	}
	clock := "⏱ " + layout.FormatClock(remaining)
	if remaining < 60 {
		return theme.TimerLow.Render(clock) + "  "
	}
	return clock + "  "
}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	if s.guard.Stage() != sess.GuardIdle || s.modal != modalNone {
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Confirm"},
		}
	}
	switch s.session.Step() {
	case sess.StepInstructions:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.StepConfirmation:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start test"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.jumpActive {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Tab", Description: "Question"},
		{Key: "←→", Description: "Page"},
		{Key: "G", Description: "Jump"},
		{Key: "S", Description: "Submit"},
		{Key: "Esc", Description: "Exit"},
	}
}

// GuardExit intercepts Esc and Ctrl+C from the root model. A true result
// means the attempt consumed the key and navigation must not proceed.
func (s *AssessmentScreen) GuardExit() (tea.Cmd, bool) {
	// A submission in flight cannot be abandoned.
	if s.session.Pipeline().InFlight() {
		return nil, true
	}
	// Overlays close instead of navigating.
	if s.guard.Stage() != sess.GuardIdle {
		return nil, true
	}
	if s.modal != modalNone {
		s.modal = modalNone
		return nil, true
	}
	if s.jumpActive {
		s.jumpActive = false
		return nil, true
	}

	switch s.session.Step() {
	case sess.StepConfirmation:
		if err := s.session.Retreat(); err != nil {
			s.log.Warn().Err(err).Msg("retreat rejected")
		}
		return nil, true
	case sess.StepInProgress:
		if s.session.GuardArmed() {
			s.modal = modalExit
			s.modalSel = 0
			return nil, true
		}
	}
	return nil, false
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case testLoadedMsg:
		return s.handleTestLoaded(msg)

	case pageLoadedMsg:
		return s.handlePageLoaded(msg)

	case submitFinishedMsg:
		return s.handleSubmitFinished(msg)

	case timerTickMsg:
		return s.handleTimerTick()

	case tea.BlurMsg:
		if s.guard.HandleChange(s.port.IsActive(), s.session.GuardArmed()) {
			s.modalSel = 0
			s.log.Info().Str("session_id", s.session.ID).Msg("fullscreen lost during attempt")
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.jumpActive {
		var cmd tea.Cmd
		s.jumpInput, cmd = s.jumpInput.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *AssessmentScreen) handleTestLoaded(msg testLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.test = msg.Test
	s.title = msg.Test.Title
	s.cache = sess.NewPageCache(msg.Test.QuestionsPerPage)
	return s, nil
}

func (s *AssessmentScreen) handlePageLoaded(msg pageLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if s.cache.Fail(msg.Gen) {
			s.pageErr = msg.Err.Error()
		}
		return s, nil
	}
	if !s.cache.Apply(msg.Gen, msg.Page) {
		// Superseded by a later navigation.
		return s, nil
	}
	s.pageErr = ""
	s.rebuildOptions()
	return s, nil
}

func (s *AssessmentScreen) handleSubmitFinished(msg submitFinishedMsg) (screen.Screen, tea.Cmd) {
	pipeline := s.session.Pipeline()

	if msg.Err != nil {
		pipeline.Fail()
		s.guard.Resume()
		if err := s.port.Enter(); err != nil {
			s.log.Warn().Err(err).Msg("fullscreen re-enter failed")
		}
		s.submitErr = msg.Err
		s.lastReason = msg.Reason
		s.modal = modalSubmitFailed
		s.modalSel = 0
		s.log.Error().
			Err(msg.Err).
			Str("session_id", s.session.ID).
			Str("reason", string(msg.Reason)).
			Msg("submission failed")
		return s, nil
	}

	pipeline.Succeed()
	s.log.Info().
		Str("session_id", s.session.ID).
		Str("test_id", s.testID).
		Str("reason", string(msg.Reason)).
		Msg("submission succeeded")

	if err := s.port.Exit(); err != nil {
		s.log.Warn().Err(err).Msg("fullscreen exit failed")
	}

	client, userID, title, timeout := s.client, s.session.UserID, s.title, s.timeout
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: results.New(client, userID, title, timeout),
		}
	}
}

func (s *AssessmentScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.session.Tick() {
		if s.session.Pipeline().Begin(sess.ReasonTimeout) {
			s.guard.Suppress()
			s.modal = modalNone
			s.jumpActive = false
			if err := s.port.Exit(); err != nil {
				s.log.Warn().Err(err).Msg("fullscreen exit failed")
			}
			return s, s.submit(sess.ReasonTimeout)
		}
		return s, nil
	}
	// Keep the tick chain alive while there is time on the clock, including
	// through an in-flight submission: Tick ignores those seconds, and if
	// the submission fails the countdown picks up where it paused.
	if remaining, ok := s.session.TimeRemaining(); ok && remaining > 0 {
		return s, tickCmd()
	}
	return s, nil
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Metadata fetch failed — any key goes back to the lobby.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.test == nil {
		return s, nil
	}

	// Fullscreen guard prompts take priority over everything else.
	if s.guard.Stage() != sess.GuardIdle {
		return s.handleGuardKey(key)
	}

	if s.modal != modalNone {
		return s.handleModalKey(key)
	}

	switch s.session.Step() {
	case sess.StepInstructions:
		if key == "enter" {
			if err := s.session.Advance(); err != nil {
				s.log.Warn().Err(err).Msg("advance rejected")
			}
		}
		return s, nil

	case sess.StepConfirmation:
		if key == "enter" {
			return s.startAttempt()
		}
		return s, nil
	}

	return s.handleQuestionKey(msg)
}

// startAttempt enters InProgress: countdown armed, fullscreen requested,
// first page loading.
func (s *AssessmentScreen) startAttempt() (screen.Screen, tea.Cmd) {
	if err := s.session.Start(s.test.DurationMinutes); err != nil {
		s.log.Warn().Err(err).Msg("start rejected")
		return s, nil
	}
	if err := s.port.Enter(); err != nil {
		s.log.Warn().Err(err).Msg("fullscreen enter failed")
	}

	s.log.Info().
		Str("session_id", s.session.ID).
		Str("test_id", s.testID).
		Int("duration_minutes", s.test.DurationMinutes).
		Msg("attempt started")

	cmds := []tea.Cmd{s.loadPage(1)}
	if _, running := s.session.TimeRemaining(); running {
		cmds = append(cmds, tickCmd())
	}
	return s, tea.Batch(cmds...)
}

func (s *AssessmentScreen) handleGuardKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "left", "h", "right", "l", "tab":
		s.modalSel = 1 - s.modalSel
		return s, nil
	case "enter":
	default:
		return s, nil
	}

	switch s.guard.Stage() {
	case sess.GuardStageDecision:
		if s.modalSel == 0 {
			s.guard.ChooseContinue()
			s.modalSel = 0
			return s, nil
		}
		// Exit Test routes into the regular exit confirmation.
		s.guard.ChooseExit()
		s.modal = modalExit
		s.modalSel = 0
		return s, nil

	case sess.GuardStageReturn:
		if s.modalSel == 0 {
			if err := s.guard.ChooseReturnFullscreen(); err != nil {
				s.log.Warn().Err(err).Msg("fullscreen re-enter failed")
			}
		} else {
			s.guard.ChooseContinueWindowed()
		}
		return s, nil
	}
	return s, nil
}

func (s *AssessmentScreen) handleModalKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "left", "h", "right", "l", "tab":
		s.modalSel = 1 - s.modalSel
		return s, nil
	case "enter":
	default:
		return s, nil
	}

	switch s.modal {
	case modalExit:
		s.modal = modalNone
		if s.modalSel == 0 {
			// Keep working.
			return s, nil
		}
		if s.session.Pipeline().Begin(sess.ReasonUserExit) {
			s.guard.Suppress()
			if err := s.port.Exit(); err != nil {
				s.log.Warn().Err(err).Msg("fullscreen exit failed")
			}
			return s, s.submit(sess.ReasonUserExit)
		}
		return s, nil

	case modalSubmitFailed:
		s.modal = modalNone
		if s.modalSel == 0 {
			if s.session.Pipeline().Begin(s.lastReason) {
				s.guard.Suppress()
				return s, s.submit(s.lastReason)
			}
		}
		// Dismissed: the attempt keeps running and a manual submit stays
		// available.
		return s, nil
	}
	return s, nil
}

func (s *AssessmentScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.jumpActive {
		switch key {
		case "enter":
			s.jumpActive = false
			target, err := s.jumpInput.NumericValue()
			if err != nil {
				return s, nil
			}
			if idx, ok := s.cache.GoToPage(target); ok {
				return s, s.loadPage(idx)
			}
			return s, nil
		default:
			var cmd tea.Cmd
			s.jumpInput, cmd = s.jumpInput.Update(msg)
			return s, cmd
		}
	}

	switch key {
	case "s":
		if s.session.Pipeline().Begin(sess.ReasonSubmit) {
			s.guard.Suppress()
			if err := s.port.Exit(); err != nil {
				s.log.Warn().Err(err).Msg("fullscreen exit failed")
			}
			return s, s.submit(sess.ReasonSubmit)
		}
		return s, nil

	case "right", "l", "n":
		if idx, ok := s.cache.NextPage(); ok {
			return s, s.loadPage(idx)
		}
		return s, nil

	case "left", "h", "p":
		if idx, ok := s.cache.PrevPage(); ok {
			return s, s.loadPage(idx)
		}
		return s, nil

	case "g":
		if s.cache.Page() != nil && !s.cache.Loading() {
			s.jumpActive = true
			s.jumpInput = components.NewTextInput("page", true, 3)
			return s, s.jumpInput.Init()
		}
		return s, nil

	case "r":
		if s.pageErr != "" {
			s.pageErr = ""
			return s, s.loadPage(s.lastTarget)
		}
		return s, nil

	case "tab":
		if len(s.options) > 0 {
			s.focused = (s.focused + 1) % len(s.options)
		}
		return s, nil

	case "shift+tab":
		if len(s.options) > 0 {
			s.focused = (s.focused - 1 + len(s.options)) % len(s.options)
		}
		return s, nil
	}

	// Everything else drives the focused question's option list.
	if s.focused >= 0 && s.focused < len(s.options) {
		var cmd tea.Cmd
		s.options[s.focused], cmd = s.options[s.focused].Update(msg)
		if chosen := s.options[s.focused].ChosenID; chosen != "" {
			q := s.options[s.focused].Question
			if prev, _ := s.cache.Answer(q.ID); prev != chosen {
				s.cache.SetAnswer(q.ID, chosen)
				s.log.Debug().
					Str("session_id", s.session.ID).
					Str("question_id", q.ID).
					Msg("answer recorded")
			}
		}
		return s, cmd
	}

	return s, nil
}

// rebuildOptions recreates the option lists for the freshly loaded page,
// restoring any answers already recorded for its questions.
func (s *AssessmentScreen) rebuildOptions() {
	page := s.cache.Page()
	if page == nil {
		s.options = nil
		return
	}
	s.options = make([]components.OptionList, 0, len(page.Questions))
	for _, q := range page.Questions {
		chosen, _ := s.cache.Answer(q.ID)
		s.options = append(s.options, components.NewOptionList(q, chosen))
	}
	s.focused = 0
}

// loadTest fetches the test metadata asynchronously.
func (s *AssessmentScreen) loadTest() tea.Cmd {
	client, testID, timeout := s.client, s.testID, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		t, err := client.GetTest(ctx, testID)
		return testLoadedMsg{Test: t, Err: err}
	}
}

// loadPage starts a navigation to pageIndex and fetches it asynchronously.
// The generation token makes out-of-order responses harmless.
func (s *AssessmentScreen) loadPage(pageIndex int) tea.Cmd {
	s.lastTarget = pageIndex
	gen := s.cache.BeginLoad(pageIndex)

	client, timeout := s.client, s.timeout
	query := api.QuestionQuery{
		TestID:    s.testID,
		Page:      pageIndex,
		PageSize:  s.cache.PageSize(),
		Grade:     s.test.Grade,
		SessionID: s.session.ID,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		page, err := client.GetQuestions(ctx, query)
		return pageLoadedMsg{Gen: gen, Page: page, Err: err}
	}
}

// submit performs the submission call. The pipeline's Begin has already
// been won by the caller; the finished message routes to Succeed or Fail.
func (s *AssessmentScreen) submit(reason sess.TriggerReason) tea.Cmd {
	client, testID, userID, timeout := s.client, s.testID, s.session.UserID, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := client.SubmitTest(ctx, testID, userID)
		return submitFinishedMsg{Reason: reason, Err: err}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
