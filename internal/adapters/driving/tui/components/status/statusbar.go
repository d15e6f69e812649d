// Package status renders the one-line status bar under the taxonomy.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/styles"
)

// State selects what the left side shows and which key hints the right
// side offers.
type State string

const (
	StateReady   State = "ready"
	StatePrompt  State = "prompt"
	StatePreview State = "preview"
	StateNotice  State = "notice"
	StateError   State = "error"
	StateHelp    State = "help"
)

// Bar is passive: the app drives it through Show and Clear.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	count   int
	width   int
}

// NewBar creates a ready bar. Nil arguments get the defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// Show switches to state with message. Prompts, notices and errors
// display the message; other states ignore it.
func (b *Bar) Show(state State, message string) {
	b.state = state
	b.message = message
}

// Clear returns to the ready state. The category count is kept.
func (b *Bar) Clear() {
	b.Show(StateReady, "")
}

// State returns the current state.
func (b *Bar) State() State { return b.state }

// Message returns the current message.
func (b *Bar) Message() string { return b.message }

// SetCount sets the number of visible categories.
func (b *Bar) SetCount(n int) { b.count = n }

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(w int) { b.width = w }

// View renders the status on the left and key hints on the right.
func (b *Bar) View() string {
	left, right := b.status(), b.hints()
	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) status() string {
	st := b.styles
	switch b.state {
	case StateError:
		if b.message == "" {
			return st.Error.Render("Error")
		}
		return st.Error.Render(b.message)
	case StateNotice:
		return st.Success.Render(b.message)
	case StatePrompt:
		return st.Normal.Render(b.message)
	case StateHelp:
		return st.Normal.Render("Help")
	case StatePreview:
		return st.Normal.Render("Rule preview")
	}
	if b.count > 0 {
		return st.Normal.Render(fmt.Sprintf("%d categories", b.count))
	}
	return st.Muted.Render("Ready")
}

func (b *Bar) hints() string {
	var bindings []key.Binding
	switch b.state {
	case StatePreview:
		bindings = b.keymap.PreviewHelp()
	case StatePrompt:
		bindings = b.keymap.PromptHelp()
	default:
		bindings = b.keymap.ShortHelp()
	}
	parts := make([]string, len(bindings))
	for i, kb := range bindings {
		h := kb.Help()
		parts[i] = h.Key + ": " + h.Desc
	}
	return b.styles.Muted.Render(strings.Join(parts, " | "))
}
