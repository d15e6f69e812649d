package services

import "github.com/custodia-labs/rulebook/internal/core/domain"

// Taxonomy config encoding.
//
// The taxonomy is stored under a single key as an array of tables:
//
//	[[taxonomy.categories]]
//	name = "Combat"
//	subcategories = ["Melee", "Ranged"]
//
// An array keeps category order, which a TOML table would not.

const (
	fieldName          = "name"
	fieldSubcategories = "subcategories"
)

func encodeTaxonomy(t domain.Taxonomy) []map[string]any {
	cats := t.Categories()
	out := make([]map[string]any, 0, len(cats))
	for _, c := range cats {
		out = append(out, map[string]any{
			fieldName:          c.Name,
			fieldSubcategories: c.Subcategories,
		})
	}
	return out
}

// decodeTaxonomy accepts what either config store hands back: the encoded
// slice itself (memory) or generic TOML arrays (file). Anything else,
// including a table without a name, reports false.
func decodeTaxonomy(raw any) (domain.Taxonomy, bool) {
	var tables []map[string]any
	switch v := raw.(type) {
	case []map[string]any:
		tables = v
	case []any:
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return domain.Taxonomy{}, false
			}
			tables = append(tables, m)
		}
	default:
		return domain.Taxonomy{}, false
	}

	cats := make([]domain.Category, 0, len(tables))
	for _, m := range tables {
		name, ok := m[fieldName].(string)
		if !ok || name == "" {
			return domain.Taxonomy{}, false
		}
		cats = append(cats, domain.Category{
			Name:          name,
			Subcategories: toStrings(m[fieldSubcategories]),
		})
	}
	return domain.NewTaxonomy(cats...), true
}

func toStrings(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
