package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

func testTaxonomy() domain.Taxonomy {
	return domain.NewTaxonomy(
		domain.Category{Name: "Combat", Subcategories: []string{"Ranged", "Melee"}},
		domain.Category{Name: "Morale"},
	)
}

func TestNewTaxonomyList(t *testing.T) {
	l := NewTaxonomyList(nil)

	require.NotNil(t, l)
	assert.True(t, l.IsEmpty())
	assert.Contains(t, l.View(), "No categories")
	_, ok := l.SelectedRow()
	assert.False(t, ok)
}

func TestTaxonomyList_SetTaxonomy(t *testing.T) {
	l := NewTaxonomyList(nil)
	l.SetTaxonomy(testTaxonomy())

	assert.Equal(t, []Row{
		{Category: "Combat"},
		{Category: "Combat", Subcategory: "Melee"},
		{Category: "Combat", Subcategory: "Ranged"},
		{Category: "Morale"},
	}, l.Rows())
	assert.Equal(t, 4, l.Count())
}

func TestTaxonomyList_SetTaxonomyKeepsSelection(t *testing.T) {
	l := NewTaxonomyList(nil)
	l.SetTaxonomy(testTaxonomy())
	l.SetSelected(2)

	l.SetTaxonomy(domain.NewTaxonomy(
		domain.Category{Name: "Terrain"},
		domain.Category{Name: "Combat", Subcategories: []string{"Melee", "Ranged"}},
	))

	row, ok := l.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, Row{Category: "Combat", Subcategory: "Ranged"}, row)
}

func TestTaxonomyList_SetTaxonomyFallsBackToCategory(t *testing.T) {
	l := NewTaxonomyList(nil)
	l.SetTaxonomy(testTaxonomy())
	l.SetSelected(1)

	l.SetTaxonomy(domain.NewTaxonomy(
		domain.Category{Name: "Morale"},
		domain.Category{Name: "Combat", Subcategories: []string{"Ranged"}},
	))

	row, _ := l.SelectedRow()
	assert.Equal(t, Row{Category: "Combat"}, row)
}

func TestTaxonomyList_Navigation(t *testing.T) {
	l := NewTaxonomyList(nil)
	l.SetTaxonomy(testTaxonomy())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 3, l.Selected())

	l.MoveDown()
	assert.Equal(t, 3, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 2, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, l.Selected())
}

func TestTaxonomyList_SetSelectedOutOfRange(t *testing.T) {
	l := NewTaxonomyList(nil)
	l.SetTaxonomy(testTaxonomy())

	l.SetSelected(10)
	assert.Equal(t, 0, l.Selected())
	l.SetSelected(-1)
	assert.Equal(t, 0, l.Selected())
}

func TestTaxonomyList_View(t *testing.T) {
	l := NewTaxonomyList(nil)
	l.SetTaxonomy(testTaxonomy())

	view := l.View()
	assert.Contains(t, view, "Categories (2)")
	assert.Contains(t, view, "Combat (2)")
	assert.Contains(t, view, "Melee")
	assert.Contains(t, view, "Morale (0)")
}

func TestTaxonomyList_ViewScrolls(t *testing.T) {
	l := NewTaxonomyList(nil)
	l.SetTaxonomy(testTaxonomy())
	l.SetDimensions(40, 4)
	l.SetSelected(3)

	view := l.View()
	assert.Contains(t, view, "Morale")
	assert.NotContains(t, view, "Melee")
}

func TestRow_IsCategory(t *testing.T) {
	assert.True(t, Row{Category: "Combat"}.IsCategory())
	assert.False(t, Row{Category: "Combat", Subcategory: "Melee"}.IsCategory())
}
