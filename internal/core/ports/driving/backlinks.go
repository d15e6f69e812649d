package driving

import (
	"context"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// BacklinkService resolves documents linking to a document.
type BacklinkService interface {
	// Backlinks returns the documents linking to path, ordered by path.
	Backlinks(ctx context.Context, path string) (domain.BacklinkListing, error)
}

// LinkIndexService keeps the vault link index current.
type LinkIndexService interface {
	// Rebuild rescans the whole vault.
	Rebuild(ctx context.Context) (domain.IndexStats, error)

	// Apply updates the index for one document change.
	Apply(ctx context.Context, change domain.DocumentChange) error

	// Watch applies watcher changes until ctx is cancelled.
	Watch(ctx context.Context) error
}
