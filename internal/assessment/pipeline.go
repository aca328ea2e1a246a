package assessment

// TriggerReason classifies what caused a submission.
type TriggerReason string

const (
	ReasonTimeout          TriggerReason = "timeout"
	ReasonSubmit           TriggerReason = "submit"
	ReasonUserExit         TriggerReason = "user_exit"
	ReasonForcedNavigation TriggerReason = "forced_navigation"
)

// Outcome is the terminal result of a submission attempt.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

// Pipeline guards the terminal transition of a session so that it runs at
// most once regardless of trigger. Concurrent triggers (timer hitting zero
// in the same tick as a manual submit, a forced exit racing both) collapse
// into a single network call: the first Begin wins, the rest are no-ops.
//
// It holds no I/O itself — the caller performs the actual submission between
// Begin and Succeed/Fail. That keeps every code path accountable for
// clearing the in-flight flag: Fail re-arms the pipeline for a manual retry,
// Succeed closes it for good.
type Pipeline struct {
	inFlight  bool
	completed bool
	reason    TriggerReason
	outcome   Outcome
}

// Begin attempts to start a submission for the given reason. It returns
// false when one is already in flight or the session is already finalized.
func (p *Pipeline) Begin(reason TriggerReason) bool {
	if p.inFlight || p.completed {
		return false
	}
	p.inFlight = true
	p.reason = reason
	p.outcome = OutcomeNone
	return true
}

// Succeed records a successful submission. The pipeline stays closed; the
// session that owns it is reset by the caller.
func (p *Pipeline) Succeed() {
	p.inFlight = false
	p.completed = true
	p.outcome = OutcomeSucceeded
}

// Fail records a failed submission and re-arms the pipeline so the student
// can retry. The in-flight flag is never left set on a failure path.
func (p *Pipeline) Fail() {
	p.inFlight = false
	p.outcome = OutcomeFailed
}

func (p *Pipeline) InFlight() bool { return p.inFlight }

func (p *Pipeline) Completed() bool { return p.completed }

// Reason returns the trigger of the current or most recent submission.
func (p *Pipeline) Reason() TriggerReason { return p.reason }

func (p *Pipeline) Outcome() Outcome { return p.outcome }

func (p *Pipeline) reset() {
	*p = Pipeline{}
}
