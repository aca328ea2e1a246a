package assessment

import (
	"github.com/inayatwani8899/mindgauge/internal/api"
)

// PageCache holds the currently loaded question page of an attempt and the
// answer map that spans all pages. Pages are replaced wholesale, never
// merged.
//
// Navigation and network completion are decoupled: the UI calls BeginLoad
// when the student navigates and Apply/Fail when the response arrives.
// Responses are not guaranteed to resolve in request order, so every
// navigation bumps a generation counter and a response carrying a superseded
// generation is discarded — last navigation wins.
type PageCache struct {
	pageSize int
	answers  *AnswerMap

	page    *api.QuestionPage
	loading bool
	gen     uint64 // generation of the most recent navigation
}

// NewPageCache creates a cache with the page size fixed for the whole
// session.
func NewPageCache(pageSize int) *PageCache {
	return &PageCache{
		pageSize: pageSize,
		answers:  NewAnswerMap(),
	}
}

// PageSize returns the fixed page size for this session.
func (c *PageCache) PageSize() int { return c.pageSize }

// Page returns the currently held page, nil before the first load completes.
func (c *PageCache) Page() *api.QuestionPage { return c.page }

// Loading reports whether a navigation is waiting on the server.
func (c *PageCache) Loading() bool { return c.loading }

// Answers returns the attempt-wide answer map.
func (c *PageCache) Answers() *AnswerMap { return c.answers }

// SetAnswer records a selection. Local mutation only — answers reach the
// backend at submission.
func (c *PageCache) SetAnswer(questionID, optionID string) {
	c.answers.Set(questionID, optionID)
}

// Answer returns the recorded selection for a question.
func (c *PageCache) Answer(questionID string) (string, bool) {
	return c.answers.Get(questionID)
}

// BeginLoad starts a navigation to pageIndex and returns the generation
// token the eventual response must present to Apply or Fail.
func (c *PageCache) BeginLoad(pageIndex int) uint64 {
	c.gen++
	c.loading = true
	return c.gen
}

// Apply installs a loaded page. It returns false — and changes nothing —
// when gen was superseded by a newer navigation before the response
// resolved.
func (c *PageCache) Apply(gen uint64, page *api.QuestionPage) bool {
	if gen != c.gen {
		return false
	}
	c.page = page
	c.loading = false
	return true
}

// Fail records a load failure for the given navigation. Stale failures are
// ignored the same way stale pages are. The held page and the answers are
// left untouched either way.
func (c *PageCache) Fail(gen uint64) bool {
	if gen != c.gen {
		return false
	}
	c.loading = false
	return true
}

// NextPage returns the index to load next, guarded by the held page's
// HasNext. ok is false when navigation is not currently possible.
func (c *PageCache) NextPage() (int, bool) {
	if c.page == nil || c.loading || !c.page.HasNext {
		return 0, false
	}
	return c.page.Page + 1, true
}

// PrevPage returns the index of the previous page, guarded by HasPrevious.
func (c *PageCache) PrevPage() (int, bool) {
	if c.page == nil || c.loading || !c.page.HasPrevious {
		return 0, false
	}
	return c.page.Page - 1, true
}

// GoToPage validates a direct jump. Jumping to the page already held is a
// no-op, as is anything outside [1, TotalPages].
func (c *PageCache) GoToPage(pageIndex int) (int, bool) {
	if c.page == nil || c.loading {
		return 0, false
	}
	if pageIndex == c.page.Page {
		return 0, false
	}
	if pageIndex < 1 || pageIndex > c.page.TotalPages {
		return 0, false
	}
	return pageIndex, true
}

// AnsweredOnPage counts how many questions of the held page have answers.
func (c *PageCache) AnsweredOnPage() int {
	if c.page == nil {
		return 0
	}
	n := 0
	for i := range c.page.Questions {
		if _, ok := c.answers.Get(c.page.Questions[i].ID); ok {
			n++
		}
	}
	return n
}
