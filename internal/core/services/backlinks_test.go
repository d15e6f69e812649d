package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// mockLinkGraph returns a fixed link map.
type mockLinkGraph struct {
	links map[string][]string
	err   error
}

func (m *mockLinkGraph) ResolvedLinks(_ context.Context) (map[string][]string, error) {
	return m.links, m.err
}

func TestBacklinkService_Backlinks(t *testing.T) {
	graph := &mockLinkGraph{links: map[string][]string{
		"notes/Zulu.md":  {"Rules.md"},
		"Army.md":        {"Rules.md", "Other.md"},
		"Rules.md":       {"Rules.md"},
		"Unrelated.md":   {"Other.md"},
		"notes/Alpha.md": {"Rules.md"},
	}}
	service := NewBacklinkService(graph)

	listing, err := service.Backlinks(context.Background(), "Rules.md")

	require.NoError(t, err)
	assert.Equal(t, "Rules.md", listing.Target)
	require.Len(t, listing.Links, 3)
	assert.Equal(t, domain.Backlink{Title: "Army", Path: "Army.md"}, listing.Links[0])
	assert.Equal(t, "Alpha", listing.Links[1].Title)
	assert.Equal(t, "Zulu", listing.Links[2].Title)
}

func TestBacklinkService_Empty(t *testing.T) {
	service := NewBacklinkService(&mockLinkGraph{links: map[string][]string{}})

	listing, err := service.Backlinks(context.Background(), "Rules.md")

	require.NoError(t, err)
	assert.True(t, listing.Empty())
}

func TestBacklinkService_NilGraph(t *testing.T) {
	listing, err := NewBacklinkService(nil).Backlinks(context.Background(), "Rules.md")
	require.NoError(t, err)
	assert.True(t, listing.Empty())
}

func TestBacklinkService_NoTarget(t *testing.T) {
	_, err := NewBacklinkService(nil).Backlinks(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrNoActiveDocument)
}

func TestBacklinkService_GraphError(t *testing.T) {
	service := NewBacklinkService(&mockLinkGraph{err: errors.New("index locked")})
	_, err := service.Backlinks(context.Background(), "Rules.md")
	assert.Error(t, err)
}
