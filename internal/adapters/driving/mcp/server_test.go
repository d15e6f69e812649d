package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/adapters/driven/icons"
	"github.com/custodia-labs/rulebook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/services"
)

// testPorts wires real services over in-memory stores.
func testPorts(t *testing.T) (*Ports, *memory.Vault) {
	t.Helper()
	config := memory.NewConfigStore()
	vault := memory.NewVault()

	taxonomy := services.NewTaxonomyService(config)
	require.NoError(t, taxonomy.Replace(domain.NewTaxonomy(
		domain.Category{Name: "Combat", Subcategories: []string{"Ranged", "Melee"}},
		domain.Category{Name: "Morale", Subcategories: []string{"Unit Fatigue"}},
	)))
	settings := services.NewSettingsService(config)
	index := memory.NewLinkIndex()

	return &Ports{
		Taxonomy:  taxonomy,
		Inserter:  services.NewInserterService(taxonomy, settings, icons.NewCatalog(), nil),
		Versions:  services.NewVersionService(vault, settings),
		Settings:  settings,
		Export:    services.NewExportService(taxonomy, vault, nil),
		Backlinks: services.NewBacklinkService(index),
		Documents: vault,
	}, vault
}

func newTestServer(t *testing.T) (*Server, *memory.Vault) {
	t.Helper()
	ports, vault := testPorts(t)
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server, vault
}

func TestNewServer(t *testing.T) {
	t.Run("nil taxonomy service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingTaxonomyService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, _ := newTestServer(t)
		assert.NotNil(t, server)
		assert.Equal(t, "dev", server.Version())
	})

	t.Run("version option", func(t *testing.T) {
		ports, _ := testPorts(t)
		server, err := NewServer(ports, WithVersion("1.2.3"))
		require.NoError(t, err)
		assert.Equal(t, "1.2.3", server.Version())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil taxonomy service returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingTaxonomyService)
	})

	t.Run("taxonomy only is valid", func(t *testing.T) {
		ports := &Ports{Taxonomy: services.NewTaxonomyService(memory.NewConfigStore())}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports, _ := testPorts(t)
		assert.NoError(t, ports.Validate())
	})
}
