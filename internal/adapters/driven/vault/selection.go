package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Selection and cursor markers recognised in the active document.
const (
	SelectionStart = "<!-- rulebook:selection -->"
	SelectionEnd   = "<!-- /rulebook:selection -->"
	CursorMarker   = "<!-- rulebook:cursor -->"
)

// Ensure Selection implements the interface.
var _ driven.SelectionProvider = (*Selection)(nil)

// Selection is the editor selection of one vault document.
//
// The selected region is the text between SelectionStart and SelectionEnd.
// Without a region, CursorMarker marks the insertion point. Without either,
// text is appended to the end of the document.
type Selection struct {
	store  driven.DocumentStore
	active string
}

// NewSelection returns the selection of the document at active.
// An empty active path means no document is open.
func NewSelection(store driven.DocumentStore, active string) *Selection {
	return &Selection{store: store, active: active}
}

// ActiveTitle returns the base name of the active document.
func (s *Selection) ActiveTitle(ctx context.Context) (string, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return "", err
	}
	return doc.Title(), nil
}

// Selection returns the selected text, or "" when nothing is selected.
func (s *Selection) Selection(ctx context.Context) (string, error) {
	doc, err := s.document(ctx)
	if err != nil {
		return "", err
	}
	start, end, ok := selectedRegion(doc.Content)
	if !ok {
		return "", nil
	}
	return doc.Content[start+len(SelectionStart) : end], nil
}

// ReplaceSelection replaces the selected region (markers included), or the
// cursor marker, or appends text on a new line.
func (s *Selection) ReplaceSelection(ctx context.Context, text string) error {
	doc, err := s.document(ctx)
	if err != nil {
		return err
	}

	content := doc.Content
	if start, end, ok := selectedRegion(content); ok {
		content = content[:start] + text + content[end+len(SelectionEnd):]
	} else if i := strings.Index(content, CursorMarker); i >= 0 {
		content = content[:i] + text + content[i+len(CursorMarker):]
	} else {
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		content += text
	}

	return s.store.WriteDocument(ctx, doc.Path, []byte(content))
}

func (s *Selection) document(ctx context.Context) (*domain.Document, error) {
	if s.active == "" {
		return nil, domain.ErrNoActiveDocument
	}
	doc, err := s.store.ReadDocument(ctx, s.active)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoActiveDocument, s.active)
	}
	return doc, err
}

// selectedRegion returns the offsets of the start and end markers.
func selectedRegion(content string) (int, int, bool) {
	start := strings.Index(content, SelectionStart)
	if start < 0 {
		return 0, 0, false
	}
	rel := strings.Index(content[start+len(SelectionStart):], SelectionEnd)
	if rel < 0 {
		return 0, 0, false
	}
	return start, start + len(SelectionStart) + rel, true
}
