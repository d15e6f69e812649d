// Package mcp provides an MCP (Model Context Protocol) server adapter for rulebook.
// It lets AI assistants browse and edit the rule taxonomy, build rule text,
// list version history and backlinks, and export rules.
package mcp

import "errors"

// ErrMissingTaxonomyService is returned when the taxonomy service is not provided.
var ErrMissingTaxonomyService = errors.New("mcp: taxonomy service is required")

// errUnavailable is returned by tools whose service was not provided.
var errUnavailable = errors.New("mcp: tool not available")
