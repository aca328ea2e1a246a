package assessment

import (
	"testing"

	"github.com/inayatwani8899/mindgauge/internal/api"
)

func page(index, total int, questionIDs ...string) *api.QuestionPage {
	qs := make([]api.Question, 0, len(questionIDs))
	for _, id := range questionIDs {
		qs = append(qs, api.Question{ID: id, Text: "q " + id})
	}
	return &api.QuestionPage{
		Page:        index,
		TotalPages:  total,
		HasNext:     index < total,
		HasPrevious: index > 1,
		Questions:   qs,
	}
}

func TestAnswersPersistAcrossPages(t *testing.T) {
	c := NewPageCache(2)

	gen := c.BeginLoad(1)
	c.Apply(gen, page(1, 2, "q1", "q2"))
	c.SetAnswer("q1", "opt-a")

	gen = c.BeginLoad(2)
	c.Apply(gen, page(2, 2, "q3", "q4"))
	c.SetAnswer("q3", "opt-c")

	gen = c.BeginLoad(1)
	c.Apply(gen, page(1, 2, "q1", "q2"))

	if got, ok := c.Answer("q1"); !ok || got != "opt-a" {
		t.Errorf("answer(q1) = %q (ok=%v), want opt-a", got, ok)
	}
	if got, _ := c.Answer("q3"); got != "opt-c" {
		t.Errorf("answer from unloaded page lost: %q", got)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	c := NewPageCache(2)

	gen1 := c.BeginLoad(1)
	c.Apply(gen1, page(1, 3, "q1", "q2"))

	// Navigate to page 2, then to page 3 before page 2 resolves.
	gen2 := c.BeginLoad(2)
	gen3 := c.BeginLoad(3)

	if c.Apply(gen3, page(3, 3, "q5", "q6")) != true {
		t.Fatal("current-generation response rejected")
	}
	if c.Apply(gen2, page(2, 3, "q3", "q4")) {
		t.Fatal("stale page 2 response was applied")
	}
	if c.Page().Page != 3 {
		t.Errorf("held page = %d, want 3", c.Page().Page)
	}
}

func TestStaleFailureDiscarded(t *testing.T) {
	c := NewPageCache(2)

	gen1 := c.BeginLoad(1)
	gen2 := c.BeginLoad(2)

	if c.Fail(gen1) {
		t.Error("stale failure acknowledged")
	}
	if !c.Loading() {
		t.Error("newer navigation no longer loading after stale failure")
	}
	if !c.Fail(gen2) {
		t.Error("current failure rejected")
	}
	if c.Loading() {
		t.Error("still loading after current failure")
	}
}

func TestNavigationGuards(t *testing.T) {
	c := NewPageCache(2)

	// Nothing loaded yet: no navigation possible.
	if _, ok := c.NextPage(); ok {
		t.Error("next allowed with no page")
	}

	gen := c.BeginLoad(1)
	c.Apply(gen, page(1, 2, "q1", "q2"))

	if _, ok := c.PrevPage(); ok {
		t.Error("previous allowed on first page")
	}
	next, ok := c.NextPage()
	if !ok || next != 2 {
		t.Fatalf("next = %d (ok=%v), want 2", next, ok)
	}

	gen = c.BeginLoad(next)
	c.Apply(gen, page(2, 2, "q3", "q4"))

	if _, ok := c.NextPage(); ok {
		t.Error("next allowed beyond the last page")
	}
	prev, ok := c.PrevPage()
	if !ok || prev != 1 {
		t.Errorf("prev = %d (ok=%v), want 1", prev, ok)
	}
}

func TestGoToPageRejectsSameAndOutOfRange(t *testing.T) {
	c := NewPageCache(2)
	gen := c.BeginLoad(2)
	c.Apply(gen, page(2, 4, "q3", "q4"))

	if _, ok := c.GoToPage(2); ok {
		t.Error("jump to the held page is not a no-op")
	}
	if _, ok := c.GoToPage(0); ok {
		t.Error("jump below page 1 allowed")
	}
	if _, ok := c.GoToPage(5); ok {
		t.Error("jump beyond total pages allowed")
	}
	if target, ok := c.GoToPage(4); !ok || target != 4 {
		t.Errorf("valid jump rejected: %d (ok=%v)", target, ok)
	}
}

func TestNavigationBlockedWhileLoading(t *testing.T) {
	c := NewPageCache(2)
	gen := c.BeginLoad(1)
	c.Apply(gen, page(1, 3, "q1", "q2"))

	c.BeginLoad(2) // in flight
	if _, ok := c.NextPage(); ok {
		t.Error("next allowed while a load is in flight")
	}
}

func TestAnsweredOnPage(t *testing.T) {
	c := NewPageCache(3)
	gen := c.BeginLoad(1)
	c.Apply(gen, page(1, 1, "q1", "q2", "q3"))

	c.SetAnswer("q1", "a")
	c.SetAnswer("q3", "b")
	c.SetAnswer("q3", "c") // re-selection overwrites, not duplicates

	if got := c.AnsweredOnPage(); got != 2 {
		t.Errorf("answered on page = %d, want 2", got)
	}
	if got, _ := c.Answer("q3"); got != "c" {
		t.Errorf("re-selection not applied: %q", got)
	}
}
