package domain

const unknownDescription = "Unknown"

// ExportFormat identifies an export target.
type ExportFormat string

// Available export formats.
const (
	// ExportFormatPDF renders a paginated PDF.
	ExportFormatPDF ExportFormat = "pdf"

	// ExportFormatMarkdown writes the source content unchanged.
	ExportFormatMarkdown ExportFormat = "markdown"

	// ExportFormatPlainText writes the content with fenced code blocks removed.
	ExportFormatPlainText ExportFormat = "text"
)

// IsValid returns true if the export format is recognised.
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportFormatPDF, ExportFormatMarkdown, ExportFormatPlainText:
		return true
	default:
		return false
	}
}

// IsDefaultable returns true if the format may be stored as the default
// export format. Plain text is only available as an explicit command.
func (f ExportFormat) IsDefaultable() bool {
	return f == ExportFormatPDF || f == ExportFormatMarkdown
}

// Extension returns the file extension, including the dot.
func (f ExportFormat) Extension() string {
	switch f {
	case ExportFormatPDF:
		return ".pdf"
	case ExportFormatMarkdown:
		return ".md"
	case ExportFormatPlainText:
		return ".txt"
	default:
		return ""
	}
}

// String returns the string representation.
func (f ExportFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f ExportFormat) Description() string {
	switch f {
	case ExportFormatPDF:
		return "PDF"
	case ExportFormatMarkdown:
		return "Markdown"
	case ExportFormatPlainText:
		return "Plain Text"
	default:
		return unknownDescription
	}
}

// AllExportFormats returns every export format.
func AllExportFormats() []ExportFormat {
	return []ExportFormat{ExportFormatPDF, ExportFormatMarkdown, ExportFormatPlainText}
}

// Themes understood by the presentation layers.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings is the persisted configuration record.
type Settings struct {
	// Taxonomy is the active rule taxonomy, read-only here: SettingsService.Save
	// does not write it.
	Taxonomy Taxonomy

	// VersionFolder is the vault folder that holds version snapshots.
	VersionFolder string

	// ExportFormat is the default export format (pdf or markdown).
	ExportFormat ExportFormat

	// RuleFormat is the rule format preference shown to users.
	RuleFormat string

	// EnableIcons toggles icon references in inserted rules and the TUI.
	EnableIcons bool

	// Theme selects the presentation theme ("light" or "dark").
	Theme string
}

// Default values for the settings record.
const (
	DefaultVersionFolder = "Wargame Rules Versions"
	DefaultRuleFormat    = "PDF"
)

// DefaultSettings returns the hard-coded defaults with a fresh seed taxonomy.
func DefaultSettings() Settings {
	return Settings{
		Taxonomy:      SeedTaxonomy(),
		VersionFolder: DefaultVersionFolder,
		ExportFormat:  ExportFormatPDF,
		RuleFormat:    DefaultRuleFormat,
		EnableIcons:   true,
		Theme:         ThemeLight,
	}
}

// PersistedSettings is the settings record as read from storage.
// A nil field means the key was absent.
type PersistedSettings struct {
	Categories    *Taxonomy
	VersionFolder *string
	ExportFormat  *ExportFormat
	RuleFormat    *string
	EnableIcons   *bool
	Theme         *string
}

// MergeDefaults overlays persisted values on defaults (shallow merge).
//
// Per-field rules:
//   - categories: a present taxonomy replaces the seed taxonomy entirely
//   - versionFolder, ruleFormat, theme: present and non-blank overrides
//   - exportFormat: present and one of pdf/markdown overrides
//   - enableIcons: present overrides, including false
//
// The result never shares memory with either argument.
func MergeDefaults(persisted PersistedSettings, defaults Settings) Settings {
	merged := defaults
	merged.Taxonomy = defaults.Taxonomy.Clone()

	if persisted.Categories != nil {
		merged.Taxonomy = persisted.Categories.Clone()
	}
	if persisted.VersionFolder != nil && *persisted.VersionFolder != "" {
		merged.VersionFolder = *persisted.VersionFolder
	}
	if persisted.ExportFormat != nil && persisted.ExportFormat.IsDefaultable() {
		merged.ExportFormat = *persisted.ExportFormat
	}
	if persisted.RuleFormat != nil && *persisted.RuleFormat != "" {
		merged.RuleFormat = *persisted.RuleFormat
	}
	if persisted.EnableIcons != nil {
		merged.EnableIcons = *persisted.EnableIcons
	}
	if persisted.Theme != nil && *persisted.Theme != "" {
		merged.Theme = *persisted.Theme
	}
	return merged
}

// VaultConfig holds vault-level configuration that is not part of the
// plugin settings record.
type VaultConfig struct {
	// Root is the vault directory.
	Root string

	// Ignore holds doublestar patterns excluded from link indexing.
	Ignore []string

	// Tracked lists document paths snapshotted by the scheduler.
	Tracked []string
}
