package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	prev := version
	t.Cleanup(func() { version = prev })

	tests := []struct {
		name     string
		version  string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "dev build",
			version:  "dev",
			args:     []string{"version"},
			contains: []string{"rulebook version dev\n"},
			excludes: []string{"go:"},
		},
		{
			name:     "release build",
			version:  "1.4.0",
			args:     []string{"version"},
			contains: []string{"rulebook version 1.4.0\n"},
		},
		{
			name:     "verbose adds toolchain",
			version:  "1.4.0",
			args:     []string{"version", "--verbose"},
			contains: []string{"rulebook version 1.4.0\n", "go: " + runtime.Version()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersion(tt.version)

			out, err := executeCommand(t, tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}
