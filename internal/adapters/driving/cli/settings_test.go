package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected int
	}{
		{name: "Empty uses default", input: "", max: 3, expected: 0},
		{name: "Valid", input: "2", max: 3, expected: 2},
		{name: "Upper bound", input: "3", max: 3, expected: 3},
		{name: "Too large", input: "4", max: 3, expected: 0},
		{name: "Zero", input: "0", max: 3, expected: 0},
		{name: "Not a number", input: "two", max: 3, expected: 0},
		{name: "Trailing text", input: "2x", max: 3, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.max, 0))
		})
	}
}

func TestOrNotSet(t *testing.T) {
	assert.Equal(t, "(not set)", orNotSet(""))
	assert.Equal(t, "/vault", orNotSet("/vault"))
}

func TestSettingsShow(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Version folder: "+domain.DefaultVersionFolder)
	assert.Contains(t, out, "Categories: 2")
	assert.Contains(t, out, "Theme: light")
	assert.Contains(t, out, "[Vault]")
	assert.Contains(t, out, "[Scheduler]")
	assert.Contains(t, out, domain.TaskIDLinkIndex)
}

func TestSettingsSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.Settings)
	}{
		{"version-folder", "Archive/Rules", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, "Archive/Rules", s.VersionFolder)
		}},
		{"export-format", "Markdown", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.ExportFormatMarkdown, s.ExportFormat)
		}},
		{"rule-format", "compact", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, "compact", s.RuleFormat)
		}},
		{"icons", "false", func(t *testing.T, s *domain.Settings) {
			assert.False(t, s.EnableIcons)
		}},
		{"theme", "DARK", func(t *testing.T, s *domain.Settings) {
			assert.Equal(t, domain.ThemeDark, s.Theme)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			setupTestServices(t)

			out, err := executeCommand(t, "settings", "set", tt.key, tt.value)

			require.NoError(t, err)
			assert.Contains(t, out, "Set "+tt.key+" to "+tt.value+".")
			s, err := settingsService.Get()
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestSettingsSet_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "Unknown key", key: "colour", value: "red"},
		{name: "Icons not a bool", key: "icons", value: "sometimes"},
		{name: "Text is not a default format", key: "export-format", value: "text"},
		{name: "Unknown theme", key: "theme", value: "neon"},
		{name: "Empty folder", key: "version-folder", value: " / "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)

			out, err := executeCommand(t, "settings", "set", tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.NotContains(t, out, domain.NoticeSettingsSaveFailed.String())
		})
	}
}

func TestSettingsDefaults(t *testing.T) {
	setupTestServices(t)
	_, err := executeCommand(t, "settings", "set", "theme", "dark")
	require.NoError(t, err)

	out, err := executeCommand(t, "settings", "defaults")

	require.NoError(t, err)
	assert.Contains(t, out, "Theme: light")
	assert.Contains(t, out, "Icons: true")
}
