package assessment

// AnswerMap holds the student's selections for one attempt, keyed by
// question ID. It outlives page navigation: answers given on earlier pages
// are retained while their questions are no longer loaded. Purely in-memory;
// the platform reconciles answers server-side at submission.
type AnswerMap struct {
	selected map[string]string // questionID -> optionID
}

func NewAnswerMap() *AnswerMap {
	return &AnswerMap{selected: make(map[string]string)}
}

// Set records the selected option for a question, replacing any previous
// selection. No validation against the loaded page — a selection from a
// stale render is harmless.
func (a *AnswerMap) Set(questionID, optionID string) {
	a.selected[questionID] = optionID
}

// Get returns the selected option for a question, if any.
func (a *AnswerMap) Get(questionID string) (string, bool) {
	optionID, ok := a.selected[questionID]
	return optionID, ok
}

// Len returns the number of answered questions.
func (a *AnswerMap) Len() int { return len(a.selected) }

// Clear drops every selection.
func (a *AnswerMap) Clear() {
	a.selected = make(map[string]string)
}
