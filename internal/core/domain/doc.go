// Package domain defines the core business entities for rulebook.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Taxonomy: The category to subcategory map used to organise rules
//   - Settings: The persisted configuration record
//   - VersionSnapshot: An immutable timestamped copy of a document
//   - ExportJob: A single export request and its PDF layout
//   - Backlink: A document linking to the active document
//   - Document: A markdown file in the vault and its links
//   - ChoiceRequest: A pick list resolved once by a presentation layer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
