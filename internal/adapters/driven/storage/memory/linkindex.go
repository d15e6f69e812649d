package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Ensure LinkIndex implements the interface.
var _ driven.LinkIndex = (*LinkIndex)(nil)

// LinkIndex is an in-memory implementation of driven.LinkIndex.
type LinkIndex struct {
	mu    sync.RWMutex
	links map[string][]domain.Link
}

// NewLinkIndex creates an empty link index.
func NewLinkIndex() *LinkIndex {
	return &LinkIndex{
		links: make(map[string][]domain.Link),
	}
}

// ResolvedLinks maps each source to its distinct targets.
func (i *LinkIndex) ResolvedLinks(_ context.Context) (map[string][]string, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make(map[string][]string, len(i.links))
	for source, links := range i.links {
		seen := make(map[string]bool, len(links))
		targets := make([]string, 0, len(links))
		for _, l := range links {
			if !seen[l.Target] {
				seen[l.Target] = true
				targets = append(targets, l.Target)
			}
		}
		sort.Strings(targets)
		out[source] = targets
	}
	return out, nil
}

// ReplaceLinks replaces the outgoing links of source.
func (i *LinkIndex) ReplaceLinks(_ context.Context, source string, links []domain.Link) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	cp := make([]domain.Link, len(links))
	copy(cp, links)
	i.links[source] = cp
	return nil
}

// DeleteDocument removes source and its outgoing links.
func (i *LinkIndex) DeleteDocument(_ context.Context, source string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.links, source)
	return nil
}

// Clear removes every link.
func (i *LinkIndex) Clear(_ context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.links = make(map[string][]domain.Link)
	return nil
}

// LinksTo returns links whose target is p, ordered by source.
func (i *LinkIndex) LinksTo(_ context.Context, p string) ([]domain.Link, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	var out []domain.Link
	for _, links := range i.links {
		for _, l := range links {
			if l.Target == p {
				out = append(out, l)
			}
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Source != out[b].Source {
			return out[a].Source < out[b].Source
		}
		return out[a].Kind < out[b].Kind
	})
	return out, nil
}

// CountLinks returns the number of stored links.
func (i *LinkIndex) CountLinks(_ context.Context) (int, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	n := 0
	for _, links := range i.links {
		n += len(links)
	}
	return n, nil
}
