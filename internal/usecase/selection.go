package usecase

import (
	"fmt"

	"FinChart/internal/domain/models"
	drepo "FinChart/internal/domain/repository"
)

// Selection is the active instrument and display page. It is owned by the
// dashboard loop and changes only on key events.
type Selection struct {
	index int
	count int
	page  models.Page
}

// NewSelection starts at the first instrument on the native page.
func NewSelection(count int) (*Selection, error) {
	if count <= 0 {
		return nil, fmt.Errorf("selection: %w", models.ErrEmptyRegistry)
	}
	return &Selection{count: count}, nil
}

func (s *Selection) Index() int { return s.index }

func (s *Selection) Selected() models.InstrumentID { return models.InstrumentID(s.index) }

func (s *Selection) Page() models.Page { return s.page }

// Next moves to the following instrument, wrapping to the first.
func (s *Selection) Next() { s.index = (s.index + 1) % s.count }

// Prev moves to the preceding instrument, wrapping to the last.
func (s *Selection) Prev() { s.index = (s.index - 1 + s.count) % s.count }

// TogglePage switches between the native and converted views.
func (s *Selection) TogglePage() { s.page = s.page.Next() }

// Apply updates the selection for a navigation key and reports whether
// anything changed.
func (s *Selection) Apply(key drepo.Key) bool {
	switch key {
	case drepo.KeyUp:
		s.Prev()
	case drepo.KeyDown:
		s.Next()
	case drepo.KeyTab:
		s.TogglePage()
	default:
		return false
	}
	return true
}
