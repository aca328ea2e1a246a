package api

import "time"

// Test is the metadata for one assessment, as served by the platform.
type Test struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"time_duration_minutes"`
	// QuestionsPerPage is the page size the server expects for this test.
	// It is fixed for the lifetime of an attempt.
	QuestionsPerPage int    `json:"total_questions_per_page"`
	Grade            string `json:"grade,omitempty"`
	QuestionCount    int    `json:"question_count"`
}

// Option is one selectable answer of a question.
type Option struct {
	ID    string `json:"option_id"`
	Label string `json:"label"`
}

// Question is a single question as rendered to the student. The platform
// never sends scoring data to the client.
type Question struct {
	ID       string   `json:"question_id"`
	Text     string   `json:"question_text"`
	Category string   `json:"category,omitempty"`
	Options  []Option `json:"options"`
}

// QuestionPage is one server-paginated slice of a test's question set.
type QuestionPage struct {
	Page        int        `json:"page"`
	TotalPages  int        `json:"total_pages"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
	Questions   []Question `json:"questions"`
}

// QuestionQuery identifies one page request.
type QuestionQuery struct {
	TestID   string
	Page     int
	PageSize int
	Grade    string
	// SessionID keys server-side pagination stability for one attempt.
	SessionID string
}

// Result is one completed attempt as listed by the results endpoint.
type Result struct {
	TestID      string    `json:"test_id"`
	Title       string    `json:"title"`
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}
