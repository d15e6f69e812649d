// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ConfigStore: Persisted settings record (TOML)
//   - DocumentStore: Vault read/create/list/folder operations
//   - PDFWriter: Renders a placed-line layout to PDF bytes
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LinkIndex: Stored vault link graph. Without it, backlinks are empty.
//   - LinkExtractor: Parses links out of a document. Required by the indexer.
//   - IconCatalog: Icons offered to the rule inserter. Without it, no icon is chosen.
//   - SelectionProvider: The active editor selection. Supplied per call.
//   - VaultWatcher: Filesystem change events for live reindexing.
//   - TaxonomyCodec: Taxonomy import/export encoding.
//   - SchedulerStore: Scheduler state. Without it, tasks run from defaults.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
