package domain

import (
	"strconv"
	"strings"
)

// versionFileExt is the extension of every snapshot file.
const versionFileExt = ".md"

// versionSep separates the base name from the timestamp.
const versionSep = "_v"

// VersionSnapshot is an immutable, timestamped copy of a document.
// The archive only ever appends snapshots; it never rewrites one.
type VersionSnapshot struct {
	// DocumentID identifies the document the snapshot was taken from.
	DocumentID string

	// BaseName is the document's display name without extension.
	BaseName string

	// CreatedAt is the snapshot time in epoch milliseconds.
	// Strictly increasing per document.
	CreatedAt int64

	// Content is the captured text. Empty for listing descriptors.
	Content string

	// DerivedName is "{BaseName}_v{CreatedAt}".
	DerivedName string

	// Path is the snapshot file location inside the vault.
	Path string
}

// VersionName returns the derived snapshot name "{base}_v{ts}".
func VersionName(base string, ts int64) string {
	return base + versionSep + strconv.FormatInt(ts, 10)
}

// VersionFileName returns the snapshot file name "{base}_v{ts}.md".
func VersionFileName(base string, ts int64) string {
	return VersionName(base, ts) + versionFileExt
}

// ParseVersionFileName splits "{base}_v{ts}.md" into its parts.
// The last "_v" wins, so base names may themselves contain "_v".
func ParseVersionFileName(name string) (base string, ts int64, ok bool) {
	if !strings.HasSuffix(name, versionFileExt) {
		return "", 0, false
	}
	stem := strings.TrimSuffix(name, versionFileExt)
	i := strings.LastIndex(stem, versionSep)
	if i <= 0 {
		return "", 0, false
	}
	digits := stem[i+len(versionSep):]
	if digits == "" {
		return "", 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", 0, false
		}
	}
	ts, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return stem[:i], ts, true
}

// VersionListing is the result of listing a version folder.
// An empty listing is the "no version history" signal, not an error.
type VersionListing struct {
	// Folder is the folder that was listed.
	Folder string

	// Versions are ordered by CreatedAt ascending.
	Versions []VersionSnapshot
}

// Empty returns true when there is no version history to show.
func (l VersionListing) Empty() bool {
	return len(l.Versions) == 0
}
