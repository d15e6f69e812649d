// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the browser or cancels a prompt.
	Back key.Binding

	// Filter focuses the category filter.
	Filter key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select builds the rule for the selected subcategory.
	Select key.Binding

	// AddCategory prompts for a new category.
	AddCategory key.Binding

	// AddSubcategory prompts for a subcategory of the selected category.
	AddSubcategory key.Binding

	// Remove deletes the selected category or subcategory.
	Remove key.Binding

	// Copy copies the previewed rule to the clipboard.
	Copy key.Binding

	// Icon cycles the icon used in the previewed rule.
	Icon key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "build rule"),
		),
		AddCategory: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add category"),
		),
		AddSubcategory: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "add subcategory"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Icon: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "next icon"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the browser.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Select, k.Help, k.Quit}
}

// PreviewHelp returns keybindings for the rule preview.
func (k *KeyMap) PreviewHelp() []key.Binding {
	return []key.Binding{k.Icon, k.Copy, k.Back}
}

// PromptHelp returns keybindings while an input is focused.
func (k *KeyMap) PromptHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		k.Back,
	}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Filter},
		{k.AddCategory, k.AddSubcategory, k.Remove},
		{k.Icon, k.Copy, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
