package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage rulebook settings",
	Long: `View and change the version folder, default export format, rule format,
icon and theme preferences.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change one setting. Keys:

  version-folder  vault folder that holds version snapshots
  export-format   default export format (pdf or markdown)
  rule-format     rule format preference
  icons           embed icons in inserted rules (true or false)
  theme           presentation theme (light or dark)`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: settingKeys,
	RunE:      runSettingsSet,
}

var settingsDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errNotConfigured("settings service")
		}
		defaults := settingsService.GetDefaults()
		printSettings(cmd, &defaults)
		return nil
	},
}

var settingKeys = []string{"version-folder", "export-format", "rule-format", "icons", "theme"}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsDefaultsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	printSettings(cmd, settings)

	vault := settingsService.GetVaultConfig()
	cmd.Println("[Vault]")
	cmd.Printf("  Root: %s\n", orNotSet(vault.Root))
	cmd.Printf("  Ignore: %s\n", orNotSet(strings.Join(vault.Ignore, ", ")))
	cmd.Printf("  Tracked: %s\n", orNotSet(strings.Join(vault.Tracked, ", ")))
	cmd.Println()

	sched := settingsService.GetSchedulerConfig()
	cmd.Println("[Scheduler]")
	cmd.Printf("  Enabled: %t\n", sched.Enabled)
	for _, id := range []string{domain.TaskIDVersionSnapshot, domain.TaskIDLinkIndex} {
		task := sched.GetTaskConfig(id)
		cmd.Printf("  %s: enabled=%t every %s\n", id, task.Enabled, task.Interval)
	}
	return nil
}

func printSettings(cmd *cobra.Command, s *domain.Settings) {
	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Rules]")
	cmd.Printf("  Version folder: %s\n", s.VersionFolder)
	cmd.Printf("  Export format: %s\n", s.ExportFormat.Description())
	cmd.Printf("  Rule format: %s\n", s.RuleFormat)
	cmd.Printf("  Categories: %d\n", s.Taxonomy.Len())
	cmd.Println()
	cmd.Println("[Display]")
	cmd.Printf("  Icons: %t\n", s.EnableIcons)
	cmd.Printf("  Theme: %s\n", s.Theme)
	cmd.Println()
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings service")
	}
	key, value := args[0], strings.TrimSpace(args[1])

	var err error
	switch key {
	case "version-folder":
		err = settingsService.SetVersionFolder(value)
	case "export-format":
		err = settingsService.SetExportFormat(domain.ExportFormat(strings.ToLower(value)))
	case "rule-format":
		err = settingsService.SetRuleFormat(value)
	case "icons":
		enabled, parseErr := strconv.ParseBool(value)
		if parseErr != nil {
			return fmt.Errorf("%w: icons must be true or false", domain.ErrInvalidInput)
		}
		err = settingsService.SetEnableIcons(enabled)
	case "theme":
		err = settingsService.SetTheme(strings.ToLower(value))
	default:
		return fmt.Errorf("%w: unknown setting %q (want one of %s)",
			domain.ErrInvalidInput, key, strings.Join(settingKeys, ", "))
	}
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			return shown(cmd, domain.NoticeSettingsSaveFailed, err)
		}
		return err
	}
	cmd.Printf("Set %s to %s.\n", key, value)
	return nil
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
