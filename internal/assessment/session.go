package assessment

import (
	"errors"

	"github.com/google/uuid"
)

// Step is the lifecycle position of an attempt.
type Step int

const (
	StepInstructions Step = iota
	StepConfirmation
	StepInProgress
)

func (s Step) String() string {
	switch s {
	case StepInstructions:
		return "instructions"
	case StepConfirmation:
		return "confirmation"
	case StepInProgress:
		return "in_progress"
	}
	return "unknown"
}

// ErrInvalidTransition is returned for step changes the lifecycle forbids.
// InProgress in particular has no retreat; leaving it goes through the
// submission pipeline only.
var ErrInvalidTransition = errors.New("invalid session step transition")

// Session is one attempt at one assessment. It owns the step state and the
// countdown. Exactly one Session is active per screen; it is created when the
// test screen mounts and discarded on submission or abandonment.
type Session struct {
	ID     string
	TestID string
	UserID string

	step      Step
	remaining int  // seconds, meaningful only when timed
	timed     bool // false means no time limit: never auto-submits
	expired   bool // countdown already crossed zero (fires at most once)

	pipeline *Pipeline
}

// New creates a Session at the Instructions step.
func New(testID, userID string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		TestID:   testID,
		UserID:   userID,
		step:     StepInstructions,
		pipeline: &Pipeline{},
	}
}

func (s *Session) Step() Step { return s.step }

// Pipeline returns the submission pipeline guarding this attempt.
func (s *Session) Pipeline() *Pipeline { return s.pipeline }

// Advance moves Instructions to Confirmation. Entering InProgress is a
// distinct operation (Start) because it needs the configured duration.
func (s *Session) Advance() error {
	if s.step != StepInstructions {
		return ErrInvalidTransition
	}
	s.step = StepConfirmation
	return nil
}

// Retreat moves Confirmation back to Instructions. There is no retreat from
// InProgress.
func (s *Session) Retreat() error {
	if s.step != StepConfirmation {
		return ErrInvalidTransition
	}
	s.step = StepInstructions
	return nil
}

// Start enters InProgress and initializes the countdown from the configured
// duration. A zero or negative duration means the test has no time limit:
// the countdown stays disabled and the timer never submits the attempt.
func (s *Session) Start(durationMinutes int) error {
	if s.step != StepConfirmation {
		return ErrInvalidTransition
	}
	s.step = StepInProgress
	if durationMinutes > 0 {
		s.timed = true
		s.remaining = durationMinutes * 60
	}
	return nil
}

func (s *Session) InProgress() bool { return s.step == StepInProgress }

// TimeRemaining returns the remaining seconds and whether a countdown is
// running at all. ok is false outside InProgress and for untimed tests.
func (s *Session) TimeRemaining() (int, bool) {
	if s.step != StepInProgress || !s.timed {
		return 0, false
	}
	return s.remaining, true
}

// Tick consumes one second of the countdown. It returns true exactly once,
// when the countdown crosses zero; the caller then triggers the submission
// pipeline with ReasonTimeout. Ticks are ignored outside InProgress, for
// untimed tests, after expiry, and once submission has begun (a late tick
// racing a manual submit must not re-enter the pipeline).
func (s *Session) Tick() bool {
	if s.step != StepInProgress || !s.timed || s.expired {
		return false
	}
	if s.pipeline.InFlight() || s.pipeline.Completed() {
		return false
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.expired = true
		return true
	}
	return false
}

// GuardArmed reports whether the fullscreen guard and exit interceptor are
// active: InProgress with time on the clock and no submission underway.
func (s *Session) GuardArmed() bool {
	return s.step == StepInProgress &&
		s.timed &&
		s.remaining > 0 &&
		!s.pipeline.InFlight() &&
		!s.pipeline.Completed()
}

// Reset returns the session to its initial state: step Instructions, no
// countdown, pipeline cleared. Called after a successful submission.
func (s *Session) Reset() {
	s.step = StepInstructions
	s.remaining = 0
	s.timed = false
	s.expired = false
	s.pipeline.reset()
}
