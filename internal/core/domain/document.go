package domain

import "time"

// Document is a markdown file in the vault.
type Document struct {
	// Path is the vault-relative path using forward slashes.
	// It doubles as the document identifier.
	Path string

	// Content is the full file text.
	Content string

	// ModifiedAt is the file modification time.
	ModifiedAt time.Time
}

// Title returns the document's display title.
func (d Document) Title() string {
	return DocumentTitle(d.Path)
}

// BaseName is an alias of Title used when naming snapshots.
func (d Document) BaseName() string {
	return d.Title()
}

// LinkKind distinguishes link syntaxes found in documents.
type LinkKind string

// Link syntaxes.
const (
	// LinkKindWiki is a [[target]] or [[target|alias]] link.
	LinkKindWiki LinkKind = "wiki"

	// LinkKindMarkdown is a [text](target.md) link.
	LinkKindMarkdown LinkKind = "markdown"
)

// Link is one resolved edge in the vault link graph.
type Link struct {
	// Source is the linking document path.
	Source string

	// Target is the linked document path.
	Target string

	// Kind is the syntax the link was written in.
	Kind LinkKind
}

// ChangeType represents the type of document change.
type ChangeType int

const (
	// ChangeCreated indicates a new document.
	ChangeCreated ChangeType = iota

	// ChangeUpdated indicates a modified document.
	ChangeUpdated

	// ChangeDeleted indicates a removed document.
	ChangeDeleted
)

// String returns the change name.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// DocumentChange is a change event from the vault watcher.
type DocumentChange struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the vault-relative path of the affected document.
	Path string
}

// IndexStats summarises a link index rebuild.
type IndexStats struct {
	Documents int
	Links     int
	Skipped   int
	Duration  time.Duration
}
