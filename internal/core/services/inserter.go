package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// Ensure InserterService implements the interface.
var _ driving.InserterService = (*InserterService)(nil)

// iconPrompt is shown above the icon pick list.
const iconPrompt = "Choose an icon"

// InserterService builds rule text from the taxonomy.
type InserterService struct {
	taxonomy  driving.TaxonomyService
	settings  driving.SettingsService
	icons     driven.IconCatalog
	templates driven.TemplateStore
}

// NewInserterService creates an inserter.
// settings, icons and templates may be nil.
func NewInserterService(
	taxonomy driving.TaxonomyService,
	settings driving.SettingsService,
	icons driven.IconCatalog,
	templates driven.TemplateStore,
) *InserterService {
	return &InserterService{
		taxonomy:  taxonomy,
		settings:  settings,
		icons:     icons,
		templates: templates,
	}
}

// BuildHeader returns "### {category}: {subcategory}\n".
func (s *InserterService) BuildHeader(category, subcategory string) (string, error) {
	if err := s.validate(category, subcategory); err != nil {
		return "", err
	}
	return fmt.Sprintf("### %s: %s\n", category, subcategory), nil
}

// BuildCombatBlock returns the Combat Resolution template for the pair.
// The icon reference is left out when none was chosen or icons are off.
func (s *InserterService) BuildCombatBlock(category, subcategory string, icon domain.ChoiceResult) (string, error) {
	if err := s.validate(category, subcategory); err != nil {
		return "", err
	}

	var ref string
	if icon.Chosen && s.iconsEnabled() {
		if found, ok := s.lookupIcon(icon.Choice.ID); ok {
			ref = found.Markup()
		}
	}

	return domain.FillTemplate(s.combatTemplate(), category, subcategory, ref), nil
}

// IconChoice returns a choice request over the icon catalog.
// With no catalog the request has no options; resolving it yields none chosen.
func (s *InserterService) IconChoice(onResolve func(domain.ChoiceResult)) *domain.ChoiceRequest {
	var options []domain.Choice
	if s.icons != nil {
		for _, icon := range s.icons.List() {
			options = append(options, domain.Choice{ID: icon.Name, Label: icon.Name})
		}
	}
	return domain.NewChoiceRequest(uuid.NewString(), iconPrompt, options, onResolve)
}

// ApplyFormatting wraps text in markdown or HTML markup.
func (s *InserterService) ApplyFormatting(style driving.FormatStyle, text string) (string, error) {
	switch style {
	case driving.FormatBold:
		return "**" + text + "**", nil
	case driving.FormatItalic:
		return "*" + text + "*", nil
	case driving.FormatUnderline:
		return "<u>" + text + "</u>", nil
	default:
		return "", fmt.Errorf("%w: format style %q", domain.ErrInvalidInput, style)
	}
}

// Insert replaces the current selection with text.
func (s *InserterService) Insert(ctx context.Context, selection driven.SelectionProvider, text string) error {
	if selection == nil {
		return domain.ErrNoActiveDocument
	}
	if _, err := selection.ActiveTitle(ctx); err != nil {
		return err
	}
	if err := selection.ReplaceSelection(ctx, text); err != nil {
		return fmt.Errorf("insert rule: %w: %w", domain.ErrDocumentWriteFailure, err)
	}
	return nil
}

// validate checks the pair against a snapshot of the taxonomy.
func (s *InserterService) validate(category, subcategory string) error {
	snap := s.taxonomy.Snapshot()
	if !snap.Has(category) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}
	if !snap.HasSubcategory(category, subcategory) {
		return fmt.Errorf("%w: %s in %s", domain.ErrUnknownSubcategory, subcategory, category)
	}
	return nil
}

func (s *InserterService) iconsEnabled() bool {
	if s.settings == nil {
		return true
	}
	settings, err := s.settings.Get()
	if err != nil {
		return false
	}
	return settings.EnableIcons
}

func (s *InserterService) lookupIcon(name string) (domain.Icon, bool) {
	if s.icons == nil {
		return domain.Icon{}, false
	}
	return s.icons.Get(name)
}

func (s *InserterService) combatTemplate() string {
	if s.templates == nil {
		return domain.DefaultCombatTemplate
	}
	tmpl, err := s.templates.Load(driven.TemplateCombatBlock)
	if err != nil || tmpl == "" {
		return domain.DefaultCombatTemplate
	}
	if !strings.HasSuffix(tmpl, "\n") {
		tmpl += "\n"
	}
	return tmpl
}
