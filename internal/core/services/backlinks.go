package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// Ensure BacklinkService implements the interface.
var _ driving.BacklinkService = (*BacklinkService)(nil)

// BacklinkService resolves the documents linking to a document.
type BacklinkService struct {
	graph driven.LinkGraph
}

// NewBacklinkService creates a backlink resolver. graph may be nil, in
// which case every listing is empty.
func NewBacklinkService(graph driven.LinkGraph) *BacklinkService {
	return &BacklinkService{graph: graph}
}

// Backlinks returns the documents linking to target, ordered by path.
func (s *BacklinkService) Backlinks(ctx context.Context, target string) (domain.BacklinkListing, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return domain.BacklinkListing{}, domain.ErrNoActiveDocument
	}
	listing := domain.BacklinkListing{Target: target}
	if s.graph == nil {
		return listing, nil
	}

	links, err := s.graph.ResolvedLinks(ctx)
	if err != nil {
		return listing, fmt.Errorf("resolve links: %w", err)
	}
	listing.Links = InvertLinks(links, target)
	return listing, nil
}

// InvertLinks returns the sources in links that point at target, ordered
// by path. Self links are ignored.
func InvertLinks(links map[string][]string, target string) []domain.Backlink {
	var out []domain.Backlink
	for source, targets := range links {
		if source == target {
			continue
		}
		for _, t := range targets {
			if t == target {
				out = append(out, domain.Backlink{
					Title: domain.DocumentTitle(source),
					Path:  source,
				})
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}
