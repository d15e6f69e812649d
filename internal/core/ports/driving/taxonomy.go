package driving

import "github.com/custodia-labs/rulebook/internal/core/domain"

// TaxonomyService owns the live rule taxonomy.
// Every read returns a copy; every mutation is persisted before it returns.
type TaxonomyService interface {
	// AddCategory adds an empty category.
	AddCategory(name string) error

	// AddSubcategory adds a subcategory and keeps the category sorted.
	AddSubcategory(category, name string) error

	// RemoveCategory removes a category. Absent categories are a no-op.
	RemoveCategory(name string) error

	// RemoveSubcategory removes a subcategory. Absent targets are a no-op.
	RemoveSubcategory(category, name string) error

	// Snapshot returns a deep copy of the taxonomy.
	Snapshot() domain.Taxonomy

	// Filter returns the categories whose name contains query.
	Filter(query string) domain.Taxonomy

	// Replace swaps in a whole taxonomy, e.g. from an import.
	Replace(t domain.Taxonomy) error

	// Reset restores the seed taxonomy.
	Reset() error

	// Load reads the taxonomy from the settings record.
	Load() error

	// Save writes the taxonomy to the settings record.
	Save() error
}
