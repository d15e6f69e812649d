package cli

import (
	"errors"
	"fmt"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui"
	"github.com/custodia-labs/rulebook/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse rule categories in an interactive terminal UI",
	Long: `Launch the interactive taxonomy browser.

Filter categories, add and remove entries, and preview the rule header and
combat block for a subcategory. Background tasks run while the browser is open.

Controls:
  ↑/k, ↓/j - Navigate
  /        - Filter categories
  Enter    - Build rule for the selected subcategory
  a / s    - Add category / subcategory
  d        - Remove selected entry
  i / c    - Next icon / copy rule (in preview)
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	Annotations: background,
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	if taxonomyService == nil {
		return errNotConfigured("taxonomy")
	}

	// bubbletea restores the terminal before re-panicking, so a panic in a
	// view surfaces here as a plain error with the stack in the log.
	defer func() {
		if r := recover(); r != nil {
			logger.Error("tui panic: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("tui: %v", r)
		}
	}()

	app, err := tui.NewApp(tui.NewPorts(taxonomyService, inserterService, settingsService, actionService))
	if err != nil {
		return fmt.Errorf("create tui: %w", err)
	}
	app.WithContext(cmd.Context())

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
