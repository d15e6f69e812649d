// Package styles holds the TUI palettes for the light and dark settings.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// Theme is a palette. Primary marks categories and headings, Secondary
// marks subcategories, Bar fills the status line.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color
}

// DarkTheme is a parchment-on-slate palette.
func DarkTheme() *Theme {
	return &Theme{
		Primary:    "#D97706",
		Secondary:  "#84CC16",
		Background: "#1C1917",
		Foreground: "#E7E5E4",
		Muted:      "#78716C",
		Success:    "#4ADE80",
		Warning:    "#FACC15",
		Error:      "#F87171",
		Border:     "#44403C",
		Bar:        "#292524",
	}
}

// LightTheme is an ink-on-parchment palette.
func LightTheme() *Theme {
	return &Theme{
		Primary:    "#9A3412",
		Secondary:  "#3F6212",
		Background: "#FAF7F0",
		Foreground: "#292524",
		Muted:      "#A8A29E",
		Success:    "#15803D",
		Warning:    "#A16207",
		Error:      "#B91C1C",
		Border:     "#D6D3D1",
		Bar:        "#EFEBE3",
	}
}

// DefaultTheme matches the default ui.theme setting.
func DefaultTheme() *Theme {
	return LightTheme()
}

// ThemeFor maps a ui.theme value to a palette. Unknown names get the default.
func ThemeFor(name string) *Theme {
	if name == domain.ThemeDark {
		return DarkTheme()
	}
	return DefaultTheme()
}

// Styles are the lipgloss styles the TUI renders with.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style // category names, pane titles
	Subtitle   lipgloss.Style // subcategory names
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles builds styles over theme, or the default theme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme:      theme,
		Title:      fg(theme.Primary).Bold(true),
		Subtitle:   fg(theme.Secondary).Bold(true),
		Normal:     fg(theme.Foreground),
		Muted:      fg(theme.Muted),
		Selected:   fg(theme.Background).Background(theme.Primary).Bold(true),
		Error:      fg(theme.Error),
		Success:    fg(theme.Success),
		Warning:    fg(theme.Warning),
		InputField: boxed.Padding(0, 1),
		StatusBar:  fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Help:       fg(theme.Muted).Italic(true),
		Border:     boxed,
	}
}

// DefaultStyles returns styles over the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette behind s.
func (s *Styles) Theme() *Theme {
	return s.theme
}
