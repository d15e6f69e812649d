package tui

import "errors"

// ErrMissingTaxonomyService is returned when the taxonomy service is not provided.
var ErrMissingTaxonomyService = errors.New("tui: taxonomy service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
