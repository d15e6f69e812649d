package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

var knownDocs = []string{
	"Combat.md",
	"Rules.md",
	"units/Infantry.md",
	"units/Rules.md",
	"lore/My Campaign.md",
}

func targets(links []domain.Link) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		out = append(out, l.Target)
	}
	return out
}

func TestExtractor_WikiLinks(t *testing.T) {
	e := NewExtractor()
	content := "See [[Combat]], [[Combat|the combat rules]] and [[units/Infantry#Moves]].\n![[Rules]]"

	links := e.Extract("Index.md", content, knownDocs)

	assert.Equal(t, []string{"Combat.md", "units/Infantry.md", "Rules.md"}, targets(links))
	for _, l := range links {
		assert.Equal(t, "Index.md", l.Source)
		assert.Equal(t, domain.LinkKindWiki, l.Kind)
	}
}

func TestExtractor_MarkdownLinks(t *testing.T) {
	e := NewExtractor()
	content := "[inf](Infantry.md) [camp](../lore/My%20Campaign.md#intro) " +
		"[web](https://example.com/x.md) [anchor](#top) [mail](mailto:a@b.c)"

	links := e.Extract("units/Cavalry.md", content, knownDocs)

	assert.Equal(t, []string{"units/Infantry.md", "lore/My Campaign.md"}, targets(links))
	for _, l := range links {
		assert.Equal(t, domain.LinkKindMarkdown, l.Kind)
	}
}

func TestExtractor_Resolution(t *testing.T) {
	e := NewExtractor()

	t.Run("same folder wins by base name", func(t *testing.T) {
		links := e.Extract("units/Cavalry.md", "[[Rules]]", knownDocs)
		assert.Equal(t, []string{"units/Rules.md"}, targets(links))
	})

	t.Run("shortest path otherwise", func(t *testing.T) {
		links := e.Extract("lore/Intro.md", "[[Rules]]", knownDocs)
		assert.Equal(t, []string{"Rules.md"}, targets(links))
	})

	t.Run("case insensitive", func(t *testing.T) {
		links := e.Extract("Index.md", "[[combat]]", knownDocs)
		assert.Equal(t, []string{"Combat.md"}, targets(links))
	})

	t.Run("unresolved dropped", func(t *testing.T) {
		links := e.Extract("Index.md", "[[Missing]] [x](missing/Doc.md)", knownDocs)
		assert.Empty(t, links)
	})
}

func TestExtractor_SkipsCodeFences(t *testing.T) {
	e := NewExtractor()
	content := "[[Combat]]\n```\n[[Rules]]\n```\n~~~md\n[x](Rules.md)\n~~~\n"

	links := e.Extract("Index.md", content, knownDocs)

	assert.Equal(t, []string{"Combat.md"}, targets(links))
}

func TestExtractor_DedupesPerKind(t *testing.T) {
	e := NewExtractor()
	content := "[[Combat]] [[Combat]] [c](Combat.md)"

	links := e.Extract("Index.md", content, knownDocs)

	assert.Len(t, links, 2)
	assert.Equal(t, domain.LinkKindWiki, links[0].Kind)
	assert.Equal(t, domain.LinkKindMarkdown, links[1].Kind)
}
