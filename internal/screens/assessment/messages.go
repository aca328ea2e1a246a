package assessment

import (
	"time"

	"github.com/inayatwani8899/mindgauge/internal/api"
	sess "github.com/inayatwani8899/mindgauge/internal/assessment"
)

// testLoadedMsg is sent when the test metadata fetch resolves.
type testLoadedMsg struct {
	Test *api.Test
	Err  error
}

// pageLoadedMsg is sent when a question page fetch resolves. Gen identifies
// the navigation that issued the request; the cache discards responses
// whose generation was superseded.
type pageLoadedMsg struct {
	Gen  uint64
	Page *api.QuestionPage
	Err  error
}

// submitFinishedMsg is sent when the submission call resolves.
type submitFinishedMsg struct {
	Reason sess.TriggerReason
	Err    error
}

// timerTickMsg is sent every second to advance the countdown.
type timerTickMsg time.Time
