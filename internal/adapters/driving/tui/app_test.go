package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/rulebook/internal/core/domain"
)

func newTestApp(t *testing.T) (*App, *mockActions) {
	t.Helper()
	ports, actions := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	runUntilQuiet(app, app.loadTaxonomy())
	return app, actions
}

func press(app *App, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := app.Update(msg)
		runUntilQuiet(app, cmd)
	}
}

// runUntilQuiet runs data commands but skips cursor blink ticks.
func runUntilQuiet(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		switch m := msg.(type) {
		case tea.BatchMsg:
			for _, c := range m {
				runUntilQuiet(app, c)
			}
		case messages.TaxonomyChanged, messages.RuleBuilt, messages.RuleCopied:
			_, next := app.Update(m)
			runUntilQuiet(app, next)
		}
	case <-blinkTimeout():
	}
}

func selectRow(t *testing.T, app *App, want list.Row) {
	t.Helper()
	for i, r := range app.List().Rows() {
		if r == want {
			app.List().SetSelected(i)
			return
		}
	}
	t.Fatalf("row %+v not found", want)
}

func TestNewApp_Success(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Equal(t, messages.ViewBrowse, app.CurrentView())
	assert.True(t, app.Ready())
	assert.Equal(t, 5, app.List().Count())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingTaxonomyService)
	assert.Nil(t, app)
}

func TestNewApp_ThemeFromSettings(t *testing.T) {
	ports, _ := newTestPorts(t)
	require.NoError(t, ports.Settings.SetTheme(domain.ThemeDark))

	app, err := NewApp(ports)
	require.NoError(t, err)

	assert.Equal(t, styles.DarkTheme(), app.styles.Theme())
}

func TestNewApp_IconsDisabled(t *testing.T) {
	ports, _ := newTestPorts(t)
	require.NoError(t, ports.Settings.SetEnableIcons(false))

	app, err := NewApp(ports)
	require.NoError(t, err)

	assert.Empty(t, app.icons)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	ports, _ := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Wargame Rules")
}

func TestApp_Filter(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, "/", "m", "o", "r")
	assert.Equal(t, []list.Row{
		{Category: "Morale"},
		{Category: "Morale", Subcategory: "Unit Fatigue"},
	}, app.List().Rows())

	press(app, "enter")
	assert.Equal(t, modeBrowse, app.mode)
	assert.Equal(t, 2, app.List().Count())

	// Esc in browse mode clears an active filter.
	press(app, "esc")
	assert.Equal(t, 5, app.List().Count())
}

func TestApp_FilterEscClears(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, "/", "x", "y", "z")
	assert.Equal(t, 0, app.List().Count())

	press(app, "esc")
	assert.Equal(t, modeBrowse, app.mode)
	assert.Equal(t, 5, app.List().Count())
}

func TestApp_AddCategory(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, "a")
	assert.Equal(t, status.StatePrompt, app.bar.State())

	press(app, "T", "e", "r", "r", "a", "i", "n", "enter")

	assert.True(t, app.ports.Taxonomy.Snapshot().Has("Terrain"))
	assert.Contains(t, app.List().Rows(), list.Row{Category: "Terrain"})
	assert.Equal(t, modeBrowse, app.mode)
}

func TestApp_AddDuplicateCategoryShowsError(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, "a", "C", "o", "m", "b", "a", "t", "enter")

	assert.ErrorIs(t, app.Err(), domain.ErrDuplicateCategory)
	assert.Equal(t, status.StateError, app.bar.State())
}

func TestApp_AddSubcategory(t *testing.T) {
	app, _ := newTestApp(t)
	selectRow(t, app, list.Row{Category: "Combat", Subcategory: "Melee"})

	press(app, "s", "S", "i", "e", "g", "e", "enter")

	assert.True(t, app.ports.Taxonomy.Snapshot().HasSubcategory("Combat", "Siege"))
	assert.Contains(t, app.List().Rows(), list.Row{Category: "Combat", Subcategory: "Siege"})
}

func TestApp_PromptEscCancels(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, "a", "X", "esc")

	assert.False(t, app.ports.Taxonomy.Snapshot().Has("X"))
	assert.Equal(t, modeBrowse, app.mode)
}

func TestApp_Remove(t *testing.T) {
	app, _ := newTestApp(t)

	selectRow(t, app, list.Row{Category: "Combat", Subcategory: "Ranged"})
	press(app, "d")
	assert.False(t, app.ports.Taxonomy.Snapshot().HasSubcategory("Combat", "Ranged"))

	selectRow(t, app, list.Row{Category: "Morale"})
	press(app, "d")
	assert.False(t, app.ports.Taxonomy.Snapshot().Has("Morale"))
	assert.Equal(t, 2, app.List().Count())
}

func TestApp_BuildRulePreview(t *testing.T) {
	app, actions := newTestApp(t)
	selectRow(t, app, list.Row{Category: "Combat", Subcategory: "Melee"})

	press(app, "enter")
	require.Equal(t, messages.ViewPreview, app.CurrentView())
	assert.Contains(t, app.Preview().Text, "### Combat: Melee")
	assert.Empty(t, app.Preview().Icon)
	assert.Contains(t, app.View(), "Combat Resolution")

	press(app, "i")
	assert.Equal(t, "attack", app.Preview().Icon)
	assert.Contains(t, app.Preview().Text, "fa-hand-fist")

	press(app, "c")
	assert.Equal(t, app.Preview().Text, actions.copied)
	assert.Equal(t, status.StateNotice, app.bar.State())

	press(app, "esc")
	assert.Equal(t, messages.ViewBrowse, app.CurrentView())
}

func TestApp_IconCycleWrapsToNone(t *testing.T) {
	app, _ := newTestApp(t)
	selectRow(t, app, list.Row{Category: "Combat", Subcategory: "Melee"})
	press(app, "enter")

	for range app.icons {
		press(app, "i")
	}
	assert.NotEmpty(t, app.Preview().Icon)

	press(app, "i")
	assert.Empty(t, app.Preview().Icon)
}

func TestApp_EnterOnCategoryDoesNothing(t *testing.T) {
	app, _ := newTestApp(t)
	selectRow(t, app, list.Row{Category: "Combat"})

	press(app, "enter")

	assert.Equal(t, messages.ViewBrowse, app.CurrentView())
}

func TestApp_CopyFailureShowsError(t *testing.T) {
	app, actions := newTestApp(t)
	actions.err = errors.New("no clipboard")
	selectRow(t, app, list.Row{Category: "Combat", Subcategory: "Melee"})

	press(app, "enter", "c")

	assert.Equal(t, status.StateError, app.bar.State())
	assert.Contains(t, app.bar.Message(), "no clipboard")
}

func TestApp_Help(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, "?")
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "add category")

	press(app, "esc")
	assert.Equal(t, messages.ViewBrowse, app.CurrentView())
}

func TestApp_Navigation(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, "down", "j")

	assert.Equal(t, 2, app.List().Selected())
}

func TestApp_Quit(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(messages.Quit{})
	require.NotNil(t, cmd)
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ErrorOccurred{Err: domain.ErrNoActiveDocument})

	assert.Equal(t, status.StateError, app.bar.State())
	assert.Equal(t, domain.NoticeNoActiveFile.String(), app.bar.Message())
}

func TestApp_ViewChanged(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
}

// blinkTimeout bounds how long a test waits on a command; blink ticks
// never return in time and are dropped.
func blinkTimeout() <-chan time.Time {
	return time.After(50 * time.Millisecond)
}
