package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTaxonomy      = "taxonomy.categories"
	keyVersionFolder = "versions.folder"
	keyTracked       = "versions.tracked"
	keyExportFormat  = "export.format"
	keyRuleFormat    = "rules.format"
	keyEnableIcons   = "ui.enable_icons"
	keyTheme         = "ui.theme"
	keyVaultRoot     = "vault.root"
	keyVaultIgnore   = "vault.ignore"
)

// SettingsService manages the persisted settings record.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get reads the persisted record and merges it over the defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.MergeDefaults(s.persisted(), domain.DefaultSettings())
	return &settings, nil
}

// Save persists the preference fields. settings.Taxonomy is ignored: the
// taxonomy is written only by TaxonomyService, so saving a stale copy never
// undoes newer category edits.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if settings == nil {
		return fmt.Errorf("save settings: %w", domain.ErrInvalidInput)
	}
	if !settings.ExportFormat.IsDefaultable() {
		return fmt.Errorf("%w: export format %q", domain.ErrInvalidInput, settings.ExportFormat)
	}

	if err := s.set(keyVersionFolder, settings.VersionFolder); err != nil {
		return fmt.Errorf("save version folder: %w", err)
	}
	if err := s.set(keyExportFormat, settings.ExportFormat.String()); err != nil {
		return fmt.Errorf("save export format: %w", err)
	}
	if err := s.set(keyRuleFormat, settings.RuleFormat); err != nil {
		return fmt.Errorf("save rule format: %w", err)
	}
	if err := s.set(keyEnableIcons, settings.EnableIcons); err != nil {
		return fmt.Errorf("save enable icons: %w", err)
	}
	if err := s.set(keyTheme, settings.Theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}

	return nil
}

// SetVersionFolder updates the snapshot folder.
func (s *SettingsService) SetVersionFolder(folder string) error {
	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return fmt.Errorf("%w: version folder is empty", domain.ErrInvalidInput)
	}
	if err := s.set(keyVersionFolder, folder); err != nil {
		return fmt.Errorf("save version folder: %w", err)
	}
	return nil
}

// SetExportFormat updates the default export format.
// Plain text is not accepted as a default.
func (s *SettingsService) SetExportFormat(format domain.ExportFormat) error {
	if !format.IsDefaultable() {
		return fmt.Errorf("%w: export format %q", domain.ErrInvalidInput, format)
	}
	if err := s.set(keyExportFormat, format.String()); err != nil {
		return fmt.Errorf("save export format: %w", err)
	}
	return nil
}

// SetRuleFormat updates the rule format preference.
func (s *SettingsService) SetRuleFormat(format string) error {
	format = strings.TrimSpace(format)
	if format == "" {
		return fmt.Errorf("%w: rule format is empty", domain.ErrInvalidInput)
	}
	if err := s.set(keyRuleFormat, format); err != nil {
		return fmt.Errorf("save rule format: %w", err)
	}
	return nil
}

// SetEnableIcons toggles icon references.
func (s *SettingsService) SetEnableIcons(enabled bool) error {
	if err := s.set(keyEnableIcons, enabled); err != nil {
		return fmt.Errorf("save enable icons: %w", err)
	}
	return nil
}

// SetTheme updates the presentation theme.
func (s *SettingsService) SetTheme(theme string) error {
	switch theme {
	case domain.ThemeLight, domain.ThemeDark:
	default:
		return fmt.Errorf("%w: theme %q", domain.ErrInvalidInput, theme)
	}
	if err := s.set(keyTheme, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// GetVaultConfig returns vault-level configuration.
// The version folder is ignored by the link indexer unless vault.ignore is set.
func (s *SettingsService) GetVaultConfig() domain.VaultConfig {
	folder := s.getString(keyVersionFolder, domain.DefaultVersionFolder)

	ignore := s.configStore.GetStringSlice(keyVaultIgnore)
	if _, exists := s.configStore.Get(keyVaultIgnore); !exists {
		ignore = []string{folder + "/**"}
	}

	return domain.VaultConfig{
		Root:    s.configStore.GetString(keyVaultRoot),
		Ignore:  ignore,
		Tracked: s.configStore.GetStringSlice(keyTracked),
	}
}

// persisted reads each settings key; absent keys stay nil.
func (s *SettingsService) persisted() domain.PersistedSettings {
	var p domain.PersistedSettings

	if raw, ok := s.configStore.Get(keyTaxonomy); ok {
		if t, ok := decodeTaxonomy(raw); ok {
			p.Categories = &t
		}
	}
	if v, ok := s.lookupString(keyVersionFolder); ok {
		p.VersionFolder = &v
	}
	if v, ok := s.lookupString(keyExportFormat); ok {
		f := domain.ExportFormat(v)
		p.ExportFormat = &f
	}
	if v, ok := s.lookupString(keyRuleFormat); ok {
		p.RuleFormat = &v
	}
	if raw, ok := s.configStore.Get(keyEnableIcons); ok {
		if b, ok := raw.(bool); ok {
			p.EnableIcons = &b
		}
	}
	if v, ok := s.lookupString(keyTheme); ok {
		p.Theme = &v
	}

	return p
}

// set writes a key and maps storage failures to ErrSettingsPersistFailure.
func (s *SettingsService) set(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSettingsPersistFailure, err)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) lookupString(key string) (string, bool) {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return "", false
	}
	str, ok := raw.(string)
	return str, ok
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// GetSchedulerConfig returns the scheduler configuration.
// Returns default configuration if nothing is configured.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	defaults := domain.DefaultSchedulerConfig()

	// Master switch
	if _, exists := s.configStore.Get("scheduler.enabled"); exists {
		defaults.Enabled = s.configStore.GetBool("scheduler.enabled")
	}

	// Per-task config
	// Map from task ID to config key (underscore version for TOML)
	taskKeys := map[string]string{
		domain.TaskIDVersionSnapshot: "version_snapshot",
		domain.TaskIDLinkIndex:       "link_index",
	}

	for taskID, configKey := range taskKeys {
		prefix := "scheduler." + configKey + "."

		taskCfg := defaults.TaskConfigs[taskID]

		if _, exists := s.configStore.Get(prefix + "enabled"); exists {
			taskCfg.Enabled = s.configStore.GetBool(prefix + "enabled")
		}

		// Duration string like "45m", "1h"
		if interval := s.configStore.GetString(prefix + "interval"); interval != "" {
			if d, err := time.ParseDuration(interval); err == nil && d > 0 {
				taskCfg.Interval = d
			}
		}

		defaults.TaskConfigs[taskID] = taskCfg
	}

	return defaults
}
