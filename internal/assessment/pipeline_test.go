package assessment

import "testing"

func TestConcurrentTriggersCollapse(t *testing.T) {
	p := &Pipeline{}

	// Timeout, manual submit and a forced exit race in the same tick.
	wins := 0
	for _, reason := range []TriggerReason{ReasonTimeout, ReasonSubmit, ReasonForcedNavigation} {
		if p.Begin(reason) {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("%d triggers started a submission, want exactly 1", wins)
	}
	if p.Reason() != ReasonTimeout {
		t.Errorf("reason = %q, want the first trigger (timeout)", p.Reason())
	}
}

func TestFailReArmsForRetry(t *testing.T) {
	p := &Pipeline{}

	if !p.Begin(ReasonSubmit) {
		t.Fatal("first begin")
	}
	p.Fail()

	if p.InFlight() {
		t.Error("in-flight flag left set after failure")
	}
	if p.Outcome() != OutcomeFailed {
		t.Errorf("outcome = %v, want failed", p.Outcome())
	}
	if !p.Begin(ReasonSubmit) {
		t.Error("retry rejected after failure")
	}
}

func TestSucceedClosesPipeline(t *testing.T) {
	p := &Pipeline{}

	p.Begin(ReasonUserExit)
	p.Succeed()

	if !p.Completed() {
		t.Error("pipeline not completed after success")
	}
	if p.Begin(ReasonSubmit) {
		t.Error("begin allowed after completion")
	}
	if p.Outcome() != OutcomeSucceeded {
		t.Errorf("outcome = %v, want succeeded", p.Outcome())
	}
}

func TestBeginWhileInFlightIsNoop(t *testing.T) {
	p := &Pipeline{}

	p.Begin(ReasonSubmit)
	if p.Begin(ReasonTimeout) {
		t.Error("second begin accepted while in flight")
	}
	if p.Reason() != ReasonSubmit {
		t.Errorf("reason overwritten by losing trigger: %q", p.Reason())
	}
}
