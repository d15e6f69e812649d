package domain

import (
	"path"
	"strings"
)

// Backlink is a document that links to the active document.
type Backlink struct {
	// Title is the linking document's base name.
	Title string

	// Path is the linking document's vault path.
	Path string
}

// BacklinkListing is the result of resolving backlinks.
// An empty listing is the "no backlinks" signal, not an error.
type BacklinkListing struct {
	// Target is the document the links point to.
	Target string

	// Links are ordered by Path.
	Links []Backlink
}

// Empty returns true when nothing links to the target.
func (l BacklinkListing) Empty() bool {
	return len(l.Links) == 0
}

// DocumentTitle returns the display title of a vault path: its base name
// without extension.
func DocumentTitle(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
