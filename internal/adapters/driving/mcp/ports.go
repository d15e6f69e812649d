package mcp

import (
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// Ports aggregates the port interfaces used by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Taxonomy owns the rule categories.
	Taxonomy driving.TaxonomyService

	// Inserter builds rule text.
	Inserter driving.InserterService

	// Versions lists snapshots.
	Versions driving.VersionService

	// Settings supplies the version folder.
	Settings driving.SettingsService

	// Export renders and writes exports.
	Export driving.ExportService

	// Backlinks resolves linking documents.
	Backlinks driving.BacklinkService

	// Documents reads vault documents for document exports.
	Documents driven.DocumentStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Taxonomy == nil {
		return ErrMissingTaxonomyService
	}
	// Everything else is optional; the matching tools report unavailable.
	return nil
}
