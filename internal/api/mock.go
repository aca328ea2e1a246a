package api

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockClient implements Client from in-memory fixtures. It backs the test
// suite and the --demo mode.
type MockClient struct {
	mu sync.Mutex

	Tests     []Test
	Questions map[string][]Question // testID -> full ordered question set
	Results   []Result

	// SubmitErrs is consumed one error per SubmitTest call; nil entries (and
	// an exhausted queue) mean success.
	SubmitErrs []error

	// Err, when set, fails every read call. Used to exercise load-failure paths.
	Err error

	SubmitCalls    int
	LastSubmitTest string
	LastSubmitUser string
	QuestionCalls  []QuestionQuery
}

// NewMockClient returns an empty mock. Populate the fixture fields directly.
func NewMockClient() *MockClient {
	return &MockClient{Questions: make(map[string][]Question)}
}

func (m *MockClient) GetTest(_ context.Context, testID string) (*Test, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Tests {
		if m.Tests[i].ID == testID {
			t := m.Tests[i]
			return &t, nil
		}
	}
	return nil, &APIError{StatusCode: 404, Message: fmt.Sprintf("test %s not found", testID)}
}

func (m *MockClient) GetQuestions(_ context.Context, q QuestionQuery) (*QuestionPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionCalls = append(m.QuestionCalls, q)
	if m.Err != nil {
		return nil, m.Err
	}

	all, ok := m.Questions[q.TestID]
	if !ok {
		return nil, &APIError{StatusCode: 404, Message: "no questions for test"}
	}
	if q.PageSize <= 0 {
		return nil, &APIError{StatusCode: 400, Message: "invalid page size"}
	}

	totalPages := (len(all) + q.PageSize - 1) / q.PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if q.Page < 1 || q.Page > totalPages {
		return nil, &APIError{StatusCode: 400, Message: "page out of range"}
	}

	start := (q.Page - 1) * q.PageSize
	end := min(start+q.PageSize, len(all))

	return &QuestionPage{
		Page:        q.Page,
		TotalPages:  totalPages,
		HasNext:     q.Page < totalPages,
		HasPrevious: q.Page > 1,
		Questions:   all[start:end],
	}, nil
}

func (m *MockClient) SubmitTest(_ context.Context, testID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmitCalls++
	m.LastSubmitTest = testID
	m.LastSubmitUser = userID

	if len(m.SubmitErrs) > 0 {
		err := m.SubmitErrs[0]
		m.SubmitErrs = m.SubmitErrs[1:]
		return err
	}
	return nil
}

func (m *MockClient) ListTests(_ context.Context, _ string) ([]Test, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]Test(nil), m.Tests...), nil
}

func (m *MockClient) ListResults(_ context.Context, _ string) ([]Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]Result(nil), m.Results...), nil
}

// NewDemoClient returns a mock populated with a small aptitude assessment so
// the client can be explored without a backend.
func NewDemoClient() *MockClient {
	m := NewMockClient()
	m.Tests = []Test{
		{
			ID:               "demo-aptitude",
			Title:            "General Aptitude (Demo)",
			DurationMinutes:  5,
			QuestionsPerPage: 3,
			Grade:            "10",
			QuestionCount:    6,
		},
		{
			ID:               "demo-personality",
			Title:            "Personality Inventory (Demo)",
			DurationMinutes:  0, // untimed
			QuestionsPerPage: 3,
			Grade:            "10",
			QuestionCount:    3,
		},
	}
	m.Questions["demo-aptitude"] = demoQuestions("apt", 6, "Aptitude")
	m.Questions["demo-personality"] = demoQuestions("per", 3, "Personality")
	m.Results = []Result{
		{TestID: "demo-earlier", Title: "Verbal Reasoning", Score: 72.5, CompletedAt: time.Now().Add(-48 * time.Hour)},
	}
	return m
}

func demoQuestions(prefix string, n int, category string) []Question {
	qs := make([]Question, 0, n)
	for i := 1; i <= n; i++ {
		qs = append(qs, Question{
			ID:       fmt.Sprintf("%s-q%d", prefix, i),
			Text:     fmt.Sprintf("Sample %s question %d: which option best completes the pattern?", category, i),
			Category: category,
			Options: []Option{
				{ID: fmt.Sprintf("%s-q%d-a", prefix, i), Label: "Strongly agree"},
				{ID: fmt.Sprintf("%s-q%d-b", prefix, i), Label: "Agree"},
				{ID: fmt.Sprintf("%s-q%d-c", prefix, i), Label: "Disagree"},
				{ID: fmt.Sprintf("%s-q%d-d", prefix, i), Label: "Strongly disagree"},
			},
		})
	}
	return qs
}
