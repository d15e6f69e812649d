package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no blocks",
			in:   "# Rules\n\nRoll two dice.\n",
			want: "# Rules\n\nRoll two dice.\n",
		},
		{
			name: "single block",
			in:   "before\n```\ncode\n```\nafter\n",
			want: "before\nafter\n",
		},
		{
			name: "info string",
			in:   "a\n```yaml\nunits: 3\n```\nb",
			want: "a\nb",
		},
		{
			name: "two blocks",
			in:   "a\n```\n1\n```\nb\n```\n2\n```\nc\n",
			want: "a\nb\nc\n",
		},
		{
			name: "unterminated fence kept",
			in:   "a\n```\nstill here\n",
			want: "a\n```\nstill here\n",
		},
		{
			name: "inline backticks untouched",
			in:   "use `roll()` here\n",
			want: "use `roll()` here\n",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeBlocks(tt.in))
		})
	}
}

func TestStripCodeBlocks_Idempotent(t *testing.T) {
	inputs := []string{
		"a\n```\nx\n```\nb\n",
		"a\n```\nunterminated\n",
		"```\n```\n```\n",
	}
	for _, in := range inputs {
		once := StripCodeBlocks(in)
		assert.Equal(t, once, StripCodeBlocks(once), in)
	}
}

func TestPlainInline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**Charge** the line", "Charge the line"},
		{"an *italic* word", "an italic word"},
		{"<u>under</u>", "under"},
		{"see [[Combat|melee rules]]", "see melee rules"},
		{"see [[Combat]]", "see Combat"},
		{"read [the rules](rules.md)", "read the rules"},
		{"![map](map.png)", "map"},
		{"roll `2d6`", "roll 2d6"},
		{`Resolution <i class="fa-solid fa-shield"></i>`, "Resolution"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, plainInline(tt.in), tt.in)
	}
}

func TestWholeLineEmphasis(t *testing.T) {
	bold, italic := wholeLineEmphasis("**Important**")
	assert.True(t, bold)
	assert.False(t, italic)

	bold, italic = wholeLineEmphasis("*note*")
	assert.False(t, bold)
	assert.True(t, italic)

	bold, italic = wholeLineEmphasis("**a** and **b**")
	assert.False(t, bold)
	assert.False(t, italic)
}
