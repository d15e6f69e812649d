// Package vault provides the filesystem implementation of the markdown vault.
//
// Store reads and writes documents under a root directory. Paths crossing
// the driven ports are vault-relative and use forward slashes; Store maps
// them to native paths and refuses paths that escape the root.
//
// Hidden files and folders (leading dot) are never listed. Additional
// exclusions are doublestar patterns such as "Versions/**" or "**/drafts".
//
// Extractor finds [[wikilinks]] and [text](target.md) links in document
// text and resolves them against the known document paths.
//
// Selection is a file-backed editor selection: the active document marks
// the selected region with comment markers, or the cursor with a single
// marker.
package vault
