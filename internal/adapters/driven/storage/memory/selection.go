package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Ensure Selection implements the interface.
var _ driven.SelectionProvider = (*Selection)(nil)

// Selection is an in-memory editor selection. An empty title means no
// document is open.
type Selection struct {
	mu       sync.Mutex
	title    string
	selected string
	inserted []string
	failErr  error
}

// NewSelection creates a selection for the document with the given title.
func NewSelection(title, selected string) *Selection {
	return &Selection{title: title, selected: selected}
}

// FailWrites makes ReplaceSelection return err. Pass nil to clear.
func (s *Selection) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Inserted returns every text passed to ReplaceSelection, in order.
func (s *Selection) Inserted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.inserted))
	copy(out, s.inserted)
	return out
}

// Selection returns the selected text.
func (s *Selection) Selection(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.title == "" {
		return "", domain.ErrNoActiveDocument
	}
	return s.selected, nil
}

// ReplaceSelection records text and clears the selection.
func (s *Selection) ReplaceSelection(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.title == "" {
		return domain.ErrNoActiveDocument
	}
	if s.failErr != nil {
		return s.failErr
	}
	s.inserted = append(s.inserted, text)
	s.selected = ""
	return nil
}

// ActiveTitle returns the open document title.
func (s *Selection) ActiveTitle(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.title == "" {
		return "", domain.ErrNoActiveDocument
	}
	return s.title, nil
}
