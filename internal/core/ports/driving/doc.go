// Package driving lists what the CLI, TUI and MCP server may ask of the
// core: taxonomy edits, rule building, versions, exports, backlinks,
// settings and background scheduling. internal/core/services implements
// every interface here.
package driving
