package assessment

// FullscreenPort abstracts the platform's fullscreen capability so the guard
// logic stays platform-agnostic and unit-testable. The terminal adapter
// lives in the app layer.
type FullscreenPort interface {
	// Enter requests fullscreen. Best-effort: a failure is logged by the
	// caller and never fails the session.
	Enter() error
	// Exit leaves fullscreen.
	Exit() error
	// IsActive reports the current fullscreen state.
	IsActive() bool
}

// GuardStage is the position in the two-stage prompt the guard walks a
// student through after an unexpected fullscreen exit.
type GuardStage int

const (
	// GuardIdle: no prompt showing.
	GuardIdle GuardStage = iota
	// GuardStageDecision: "Continue Test" vs "Exit Test".
	GuardStageDecision
	// GuardStageReturn: "Return to fullscreen" vs "Continue normally".
	GuardStageReturn
)

// FullscreenGuard reacts to fullscreen-change events during an active
// session. It owns only prompt state — it never mutates the session or the
// answers. The prompt is one-shot per exit event: choosing to continue
// outside fullscreen is not itself a violation and raises no further
// prompts until the next change event.
type FullscreenGuard struct {
	port       FullscreenPort
	stage      GuardStage
	suppressed bool
}

func NewFullscreenGuard(port FullscreenPort) *FullscreenGuard {
	return &FullscreenGuard{port: port}
}

func (g *FullscreenGuard) Stage() GuardStage { return g.stage }

// Suppress disables the guard around a deliberate fullscreen exit, so the
// submission pipeline leaving fullscreen does not re-trigger the prompt.
func (g *FullscreenGuard) Suppress() { g.suppressed = true }

// Resume re-enables the guard after a deliberate exit completed (e.g. a
// failed submission returning to the session).
func (g *FullscreenGuard) Resume() { g.suppressed = false }

// HandleChange feeds a fullscreen-change event to the guard. armed is the
// session's guard condition (InProgress, timer running, not submitting).
// It returns true when the event opened the decision prompt.
func (g *FullscreenGuard) HandleChange(active, armed bool) bool {
	if active || !armed || g.suppressed {
		return false
	}
	if g.stage != GuardIdle {
		// Already prompting for an earlier exit event.
		return false
	}
	g.stage = GuardStageDecision
	return true
}

// ChooseContinue is stage one's "Continue Test": proceed to the
// return-to-fullscreen decision.
func (g *FullscreenGuard) ChooseContinue() {
	if g.stage == GuardStageDecision {
		g.stage = GuardStageReturn
	}
}

// ChooseExit is stage one's "Exit Test". It only closes the prompt; the
// caller routes into the session's exit confirmation flow.
func (g *FullscreenGuard) ChooseExit() {
	g.stage = GuardIdle
}

// ChooseReturnFullscreen re-requests fullscreen and closes the prompt. The
// error is best-effort information for the caller's log.
func (g *FullscreenGuard) ChooseReturnFullscreen() error {
	g.stage = GuardIdle
	return g.port.Enter()
}

// ChooseContinueWindowed closes the prompt, leaving the session running
// outside fullscreen.
func (g *FullscreenGuard) ChooseContinueWindowed() {
	g.stage = GuardIdle
}
