// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBrowse is the taxonomy browser.
	ViewBrowse ViewType = iota
	// ViewPreview shows a built rule.
	ViewPreview
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBrowse:
		return "browse"
	case ViewPreview:
		return "preview"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the settings read at start-up.
type SettingsLoaded struct {
	Settings *domain.Settings
	Err      error
}

// TaxonomyChanged carries the taxonomy after a load, filter or edit.
type TaxonomyChanged struct {
	Taxonomy domain.Taxonomy
	Err      error
}

// RuleBuilt carries generated rule text for the preview.
type RuleBuilt struct {
	Category    string
	Subcategory string
	Icon        string
	Text        string
	Err         error
}

// RuleCopied signals a clipboard copy finished.
type RuleCopied struct {
	Err error
}
