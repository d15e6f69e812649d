// Package tui provides an interactive terminal browser for the rule taxonomy.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Taxonomy owns the categories being browsed.
	Taxonomy driving.TaxonomyService

	// Inserter builds the rule preview.
	Inserter driving.InserterService

	// Settings supplies the theme and the icon toggle.
	Settings driving.SettingsService

	// Actions copies rules to the clipboard.
	Actions driving.ActionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	taxonomy driving.TaxonomyService,
	inserter driving.InserterService,
	settings driving.SettingsService,
	actions driving.ActionService,
) *Ports {
	return &Ports{
		Taxonomy: taxonomy,
		Inserter: inserter,
		Settings: settings,
		Actions:  actions,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Taxonomy == nil {
		return ErrMissingTaxonomyService
	}
	return nil
}
