package driving

import (
	"context"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// FormatStyle is an inline formatting applied to a selection.
type FormatStyle string

// Inline formatting styles.
const (
	FormatBold      FormatStyle = "bold"
	FormatItalic    FormatStyle = "italic"
	FormatUnderline FormatStyle = "underline"
)

// InserterService builds rule text from the taxonomy.
// It returns text; callers decide where it goes.
type InserterService interface {
	// BuildHeader returns "### {category}: {subcategory}\n".
	BuildHeader(category, subcategory string) (string, error)

	// BuildCombatBlock returns the Combat Resolution template.
	BuildCombatBlock(category, subcategory string, icon domain.ChoiceResult) (string, error)

	// IconChoice returns a choice request over the icon catalog.
	IconChoice(onResolve func(domain.ChoiceResult)) *domain.ChoiceRequest

	// ApplyFormatting wraps text in the given style's markup.
	ApplyFormatting(style FormatStyle, text string) (string, error)

	// Insert replaces the current selection with text.
	Insert(ctx context.Context, selection driven.SelectionProvider, text string) error
}
