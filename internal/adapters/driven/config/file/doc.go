// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.rulebook.
//
// Adapters:
//   - ConfigStore: TOML settings record (taxonomy, version folder, export
//     format, UI and scheduler keys)
//   - TemplateStore: user-editable rule templates with embedded defaults
package file
