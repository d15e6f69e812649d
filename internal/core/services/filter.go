package services

import (
	"strings"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// FilterTaxonomy returns the categories of t whose name contains query,
// ignoring case. Subcategories are carried over untouched. An empty query
// returns a copy of t; no match returns an empty taxonomy.
func FilterTaxonomy(t domain.Taxonomy, query string) domain.Taxonomy {
	if query == "" {
		return t.Clone()
	}
	q := strings.ToLower(query)

	var matched []domain.Category
	for _, c := range t.Categories() {
		if strings.Contains(strings.ToLower(c.Name), q) {
			matched = append(matched, c)
		}
	}
	return domain.NewTaxonomy(matched...)
}
