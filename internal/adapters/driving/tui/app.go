package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// mode is what the browser keys currently drive.
type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeAddCategory
	modeAddSubcategory
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	list   *list.TaxonomyList
	filter *input.Field
	prompt *input.Field
	bar    *status.Bar

	currentView messages.ViewType
	mode        mode

	// promptCategory is the category a new subcategory goes into.
	promptCategory string

	// icons are the icon options; iconIndex -1 means none.
	icons        []domain.Choice
	iconIndex    int
	iconsEnabled bool

	preview messages.RuleBuilt

	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// Settings, when present, pick the theme and the icon toggle.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	theme := domain.ThemeLight
	iconsEnabled := true
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			theme = settings.Theme
			iconsEnabled = settings.EnableIcons
		}
	}

	s := styles.NewStyles(styles.ThemeFor(theme))
	km := keymap.DefaultKeyMap()

	var icons []domain.Choice
	if ports.Inserter != nil && iconsEnabled {
		req := ports.Inserter.IconChoice(nil)
		icons = req.Options
		req.Cancel()
	}

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keys:         km,
		list:         list.NewTaxonomyList(s),
		filter:       input.NewField(s, "Filter", "category name"),
		prompt:       input.NewField(s, "New category", "name"),
		bar:          status.NewBar(s, km),
		currentView:  messages.ViewBrowse,
		icons:        icons,
		iconIndex:    -1,
		iconsEnabled: iconsEnabled,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("rulebook - Wargame Rules"),
		a.loadTaxonomy(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewHelp:
			return a.updateHelp(msg)
		case messages.ViewPreview:
			return a.updatePreview(msg)
		case messages.ViewBrowse:
			return a.updateBrowse(msg)
		}
		return a, nil

	case messages.ViewChanged:
		a.setView(msg.View)
		return a, nil

	case messages.TaxonomyChanged:
		if msg.Err != nil {
			a.showError(msg.Err)
			return a, nil
		}
		a.list.SetTaxonomy(msg.Taxonomy)
		a.bar.SetCount(msg.Taxonomy.Len())
		return a, nil

	case messages.RuleBuilt:
		if msg.Err != nil {
			a.showError(msg.Err)
			return a, nil
		}
		a.preview = msg
		a.setView(messages.ViewPreview)
		return a, nil

	case messages.RuleCopied:
		if msg.Err != nil {
			a.showError(msg.Err)
			return a, nil
		}
		a.bar.Show(status.StateNotice, "Copied rule to clipboard")
		return a, nil

	case messages.ErrorOccurred:
		a.showError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Cursor blink and other input ticks
	var cmd tea.Cmd
	switch a.mode {
	case modeFilter:
		a.filter, cmd = a.filter.Update(msg)
	case modeAddCategory, modeAddSubcategory:
		a.prompt, cmd = a.prompt.Update(msg)
	case modeBrowse:
	}
	return a, cmd
}

func (a *App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, a.keys.Back), keymap.Matches(key, a.keys.Help):
		a.setView(messages.ViewBrowse)
	case keymap.Matches(key, a.keys.Quit):
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, a.keys.Back):
		a.setView(messages.ViewBrowse)
	case keymap.Matches(key, a.keys.Quit):
		return a, tea.Quit
	case keymap.Matches(key, a.keys.Icon):
		if len(a.icons) == 0 {
			return a, nil
		}
		// Cycle none, icon 0, icon 1, ... and back to none.
		a.iconIndex = (a.iconIndex+2)%(len(a.icons)+1) - 1
		return a, a.buildRule(a.preview.Category, a.preview.Subcategory)
	case keymap.Matches(key, a.keys.Copy):
		return a, a.copyRule(a.preview.Text)
	}
	return a, nil
}

//nolint:gocyclo // key dispatch
func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch a.mode {
	case modeFilter:
		switch msg.Type {
		case tea.KeyEsc:
			a.filter.Reset()
			a.endInput()
			return a, a.loadTaxonomy()
		case tea.KeyEnter:
			a.endInput()
			return a, nil
		default:
			a.filter, cmd = a.filter.Update(msg)
			return a, tea.Batch(cmd, a.loadTaxonomy())
		}

	case modeAddCategory, modeAddSubcategory:
		switch msg.Type {
		case tea.KeyEsc:
			a.endInput()
			return a, nil
		case tea.KeyEnter:
			name := a.prompt.Value()
			m, category := a.mode, a.promptCategory
			a.endInput()
			return a, a.addEntry(m, category, name)
		default:
			a.prompt, cmd = a.prompt.Update(msg)
			return a, cmd
		}

	case modeBrowse:
	}

	a.bar.Clear()
	switch {
	case keymap.Matches(key, a.keys.Quit):
		return a, tea.Quit
	case keymap.Matches(key, a.keys.Help):
		a.setView(messages.ViewHelp)
	case keymap.Matches(key, a.keys.Filter):
		a.mode = modeFilter
		return a, a.filter.Focus()
	case keymap.Matches(key, a.keys.Back):
		if a.filter.Value() != "" {
			a.filter.Reset()
			return a, a.loadTaxonomy()
		}
	case keymap.Matches(key, a.keys.Select):
		row, ok := a.list.SelectedRow()
		if !ok || row.IsCategory() {
			return a, nil
		}
		return a, a.buildRule(row.Category, row.Subcategory)
	case keymap.Matches(key, a.keys.AddCategory):
		return a, a.startPrompt(modeAddCategory, "", "New category")
	case keymap.Matches(key, a.keys.AddSubcategory):
		row, ok := a.list.SelectedRow()
		if !ok {
			return a, nil
		}
		return a, a.startPrompt(modeAddSubcategory, row.Category, "New subcategory of "+row.Category)
	case keymap.Matches(key, a.keys.Remove):
		row, ok := a.list.SelectedRow()
		if !ok {
			return a, nil
		}
		return a, a.removeEntry(row)
	default:
		a.list, cmd = a.list.Update(msg)
	}
	return a, cmd
}

func (a *App) startPrompt(m mode, category, label string) tea.Cmd {
	a.mode = m
	a.promptCategory = category
	a.prompt.Reset()
	a.prompt.SetLabel(label, "name")
	a.bar.Show(status.StatePrompt, label)
	return a.prompt.Focus()
}

func (a *App) endInput() {
	a.mode = modeBrowse
	a.promptCategory = ""
	a.filter.Blur()
	a.prompt.Blur()
	a.bar.Clear()
}

func (a *App) setView(v messages.ViewType) {
	a.currentView = v
	switch v {
	case messages.ViewPreview:
		a.bar.Show(status.StatePreview, "")
	case messages.ViewHelp:
		a.bar.Show(status.StateHelp, "")
	case messages.ViewBrowse:
		a.bar.Clear()
	}
}

func (a *App) showError(err error) {
	a.err = err
	a.bar.Show(status.StateError, domain.NoticeFor(err).String())
}

// loadTaxonomy reads the taxonomy through the current filter.
func (a *App) loadTaxonomy() tea.Cmd {
	query := a.filter.Value()
	taxonomy := a.ports.Taxonomy
	return func() tea.Msg {
		return messages.TaxonomyChanged{Taxonomy: taxonomy.Filter(query)}
	}
}

func (a *App) addEntry(m mode, category, name string) tea.Cmd {
	query := a.filter.Value()
	taxonomy := a.ports.Taxonomy
	return func() tea.Msg {
		var err error
		if m == modeAddSubcategory {
			err = taxonomy.AddSubcategory(category, name)
		} else {
			err = taxonomy.AddCategory(name)
		}
		if err != nil {
			return messages.TaxonomyChanged{Err: err}
		}
		return messages.TaxonomyChanged{Taxonomy: taxonomy.Filter(query)}
	}
}

func (a *App) removeEntry(row list.Row) tea.Cmd {
	query := a.filter.Value()
	taxonomy := a.ports.Taxonomy
	return func() tea.Msg {
		var err error
		if row.IsCategory() {
			err = taxonomy.RemoveCategory(row.Category)
		} else {
			err = taxonomy.RemoveSubcategory(row.Category, row.Subcategory)
		}
		if err != nil {
			return messages.TaxonomyChanged{Err: err}
		}
		return messages.TaxonomyChanged{Taxonomy: taxonomy.Filter(query)}
	}
}

// buildRule renders the combat block, header included, with the current icon.
func (a *App) buildRule(category, subcategory string) tea.Cmd {
	inserter := a.ports.Inserter
	if inserter == nil {
		return nil
	}
	index := a.iconIndex
	return func() tea.Msg {
		if _, err := inserter.BuildHeader(category, subcategory); err != nil {
			return messages.RuleBuilt{Err: err}
		}

		icon := domain.NoneChosen()
		req := inserter.IconChoice(func(r domain.ChoiceResult) { icon = r })
		if index >= 0 {
			req.Resolve(index)
		} else {
			req.Cancel()
		}

		block, err := inserter.BuildCombatBlock(category, subcategory, icon)
		if err != nil {
			return messages.RuleBuilt{Err: err}
		}
		return messages.RuleBuilt{
			Category:    category,
			Subcategory: subcategory,
			Icon:        icon.Choice.ID,
			Text:        block,
		}
	}
}

func (a *App) copyRule(text string) tea.Cmd {
	actions := a.ports.Actions
	if actions == nil || text == "" {
		return nil
	}
	return func() tea.Msg {
		return messages.RuleCopied{Err: actions.CopyToClipboard(text)}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewPreview:
		body = a.viewPreview()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.viewBrowse()
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, a.bar.View())
}

func (a *App) viewBrowse() string {
	parts := []string{a.styles.Title.Render("Wargame Rules")}
	switch a.mode {
	case modeAddCategory, modeAddSubcategory:
		parts = append(parts, a.prompt.View())
	default:
		parts = append(parts, a.filter.View())
	}
	parts = append(parts, a.list.View())
	return strings.Join(parts, "\n")
}

func (a *App) viewPreview() string {
	title := fmt.Sprintf("%s: %s", a.preview.Category, a.preview.Subcategory)
	icon := "none"
	if a.preview.Icon != "" {
		icon = a.preview.Icon
	}
	lines := []string{a.styles.Title.Render(title)}
	if a.iconsEnabled && len(a.icons) > 0 {
		lines = append(lines, a.styles.Muted.Render("Icon: "+icon))
	}
	lines = append(lines, "", a.styles.Border.Render(strings.TrimRight(a.preview.Text, "\n")))
	return strings.Join(lines, "\n")
}

func (a *App) viewHelp() string {
	lines := []string{a.styles.Title.Render("Help"), ""}
	for _, group := range a.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-10s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, a.styles.Help.Render("[esc] back"))
	return strings.Join(lines, "\n")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Preview returns the last built rule.
func (a *App) Preview() messages.RuleBuilt {
	return a.preview
}

// List returns the taxonomy list component.
func (a *App) List() *list.TaxonomyList {
	return a.list
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.filter.SetWidth(width)
	a.prompt.SetWidth(width)
	a.bar.SetWidth(width)
	// Title, input box and status bar
	a.list.SetDimensions(width, height-6)
}
