package driving

import (
	"context"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// VersionService is the append-only snapshot archive.
type VersionService interface {
	// SaveVersion writes a new snapshot of content.
	// now is epoch milliseconds.
	SaveVersion(ctx context.Context, documentID, baseName, content string, now int64) (*domain.VersionSnapshot, error)

	// SaveDocument snapshots the current content of a vault document.
	SaveDocument(ctx context.Context, path string, now int64) (*domain.VersionSnapshot, error)

	// ListVersions lists every snapshot in folder, oldest first.
	// An empty or absent folder yields an empty listing.
	ListVersions(ctx context.Context, folder string) (domain.VersionListing, error)

	// ListVersionsFor lists the snapshots of one document.
	ListVersionsFor(ctx context.Context, folder, baseName string) (domain.VersionListing, error)

	// ReadVersion returns a snapshot with its content.
	ReadVersion(ctx context.Context, folder, fileName string) (*domain.VersionSnapshot, error)

	// SnapshotTracked snapshots every tracked document.
	// Returns the number of snapshots written.
	SnapshotTracked(ctx context.Context, now int64) (int, error)
}
