package driven

import (
	"context"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// LinkGraph provides the resolved link map of the vault.
type LinkGraph interface {
	// ResolvedLinks maps each document path to the paths it links to.
	ResolvedLinks(ctx context.Context) (map[string][]string, error)
}

// LinkIndex persists the vault link graph.
type LinkIndex interface {
	LinkGraph

	// ReplaceLinks replaces every outgoing link of source.
	ReplaceLinks(ctx context.Context, source string, links []domain.Link) error

	// DeleteDocument removes a document and its outgoing links.
	DeleteDocument(ctx context.Context, source string) error

	// Clear removes every link.
	Clear(ctx context.Context) error

	// LinksTo returns links whose target is path, ordered by source.
	LinksTo(ctx context.Context, path string) ([]domain.Link, error)

	// CountLinks returns the number of stored links.
	CountLinks(ctx context.Context) (int, error)
}
