package driving

import "github.com/custodia-labs/rulebook/internal/core/domain"

// SettingsService manages the persisted settings record.
type SettingsService interface {
	// Get returns the settings merged over defaults.
	Get() (*domain.Settings, error)

	// Save persists every preference field. The taxonomy is not written;
	// TaxonomyService owns it.
	Save(settings *domain.Settings) error

	// SetVersionFolder updates the snapshot folder.
	SetVersionFolder(folder string) error

	// SetExportFormat updates the default export format (pdf or markdown).
	SetExportFormat(format domain.ExportFormat) error

	// SetRuleFormat updates the rule format preference.
	SetRuleFormat(format string) error

	// SetEnableIcons toggles icon references.
	SetEnableIcons(enabled bool) error

	// SetTheme updates the presentation theme.
	SetTheme(theme string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// GetVaultConfig returns vault-level configuration.
	GetVaultConfig() domain.VaultConfig

	// GetSchedulerConfig returns scheduler configuration.
	GetSchedulerConfig() domain.SchedulerConfig
}
