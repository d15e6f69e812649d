package driven

import (
	"context"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// DocumentStore provides access to the markdown vault.
// Paths are vault-relative and use forward slashes.
type DocumentStore interface {
	// ReadDocument returns a document by path.
	// Returns domain.ErrNotFound if the document does not exist.
	ReadDocument(ctx context.Context, path string) (*domain.Document, error)

	// CreateDocument writes a new document.
	// Returns domain.ErrAlreadyExists rather than overwriting.
	CreateDocument(ctx context.Context, path string, content []byte) error

	// WriteDocument replaces the content of an existing document.
	// Returns domain.ErrNotFound if the document does not exist.
	WriteDocument(ctx context.Context, path string, content []byte) error

	// ListFolder returns the file names directly inside folder, sorted.
	// Returns domain.ErrNotFound if the folder does not exist.
	ListFolder(ctx context.Context, folder string) ([]string, error)

	// CreateFolder creates folder and its parents. Idempotent.
	CreateFolder(ctx context.Context, folder string) error

	// ListDocuments returns the paths of every markdown document, sorted.
	ListDocuments(ctx context.Context) ([]string, error)

	// Root returns the vault location for display.
	Root() string
}

// LinkExtractor finds links in document content.
type LinkExtractor interface {
	// Extract returns the links in content, resolved against the vault.
	// Targets that cannot be resolved to a known document are dropped.
	Extract(source, content string, known []string) []domain.Link
}

// SelectionProvider is the active-selection collaborator of an editor.
type SelectionProvider interface {
	// Selection returns the currently selected text.
	Selection(ctx context.Context) (string, error)

	// ReplaceSelection replaces the selection (or inserts at the cursor).
	ReplaceSelection(ctx context.Context, text string) error

	// ActiveTitle returns the active document's display title.
	// Returns domain.ErrNoActiveDocument when nothing is open.
	ActiveTitle(ctx context.Context) (string, error)
}

// VaultWatcher reports changes to markdown documents in the vault.
type VaultWatcher interface {
	// Watch starts watching and returns a channel of changes.
	// The channel is closed when ctx is cancelled or Stop is called.
	Watch(ctx context.Context) (<-chan domain.DocumentChange, error)

	// Stop stops watching.
	Stop() error
}
