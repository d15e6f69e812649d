package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Category is a named group of rule subcategories.
type Category struct {
	// Name is unique within a Taxonomy.
	Name string

	// Subcategories are unique within the category and kept sorted ascending.
	Subcategories []string
}

// Taxonomy maps category names to their subcategory sequences.
//
// Categories keep insertion order. Subcategories are always sorted ascending
// (byte-wise). The zero value is an empty taxonomy ready to use.
type Taxonomy struct {
	categories []Category
}

// NewTaxonomy builds a taxonomy from categories, normalising as it goes:
// names are trimmed, blank and repeated categories are skipped, and each
// subcategory list is deduplicated and sorted.
func NewTaxonomy(categories ...Category) Taxonomy {
	var t Taxonomy
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" || t.Has(name) {
			continue
		}
		t.categories = append(t.categories, Category{
			Name:          name,
			Subcategories: normaliseSubcategories(c.Subcategories),
		})
	}
	return t
}

// Len returns the number of categories.
func (t Taxonomy) Len() int {
	return len(t.categories)
}

// IsEmpty returns true when the taxonomy has no categories.
func (t Taxonomy) IsEmpty() bool {
	return len(t.categories) == 0
}

// Names returns the category names in order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Categories returns a deep copy of the categories in order.
func (t Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Name: c.Name, Subcategories: copyStrings(c.Subcategories)}
	}
	return out
}

// Has returns true if the category exists.
func (t Taxonomy) Has(category string) bool {
	return t.indexOf(category) >= 0
}

// Subcategories returns a copy of a category's subcategories.
func (t Taxonomy) Subcategories(category string) ([]string, bool) {
	i := t.indexOf(category)
	if i < 0 {
		return nil, false
	}
	return copyStrings(t.categories[i].Subcategories), true
}

// HasSubcategory returns true if the subcategory exists within the category.
func (t Taxonomy) HasSubcategory(category, subcategory string) bool {
	i := t.indexOf(category)
	if i < 0 {
		return false
	}
	return containsString(t.categories[i].Subcategories, subcategory)
}

// Clone returns a deep copy that shares no memory with t.
func (t Taxonomy) Clone() Taxonomy {
	return Taxonomy{categories: t.Categories()}
}

// AddCategory appends an empty category.
func (t *Taxonomy) AddCategory(name string) error {
	if t.Has(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}
	t.categories = append(t.categories, Category{Name: name, Subcategories: []string{}})
	return nil
}

// AddSubcategory inserts a subcategory and re-sorts the category.
func (t *Taxonomy) AddSubcategory(category, name string) error {
	i := t.indexOf(category)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	subs := t.categories[i].Subcategories
	if containsString(subs, name) {
		return fmt.Errorf("%w: %s in %s", ErrDuplicateSubcategory, name, category)
	}
	next := make([]string, 0, len(subs)+1)
	next = append(next, subs...)
	next = append(next, name)
	sort.Strings(next)
	t.categories[i].Subcategories = next
	return nil
}

// RemoveCategory deletes a category. Returns false if it did not exist.
func (t *Taxonomy) RemoveCategory(name string) bool {
	i := t.indexOf(name)
	if i < 0 {
		return false
	}
	next := make([]Category, 0, len(t.categories)-1)
	next = append(next, t.categories[:i]...)
	next = append(next, t.categories[i+1:]...)
	t.categories = next
	return true
}

// RemoveSubcategory deletes a subcategory. Returns false if either the
// category or the subcategory did not exist.
func (t *Taxonomy) RemoveSubcategory(category, name string) bool {
	i := t.indexOf(category)
	if i < 0 {
		return false
	}
	subs := t.categories[i].Subcategories
	next := make([]string, 0, len(subs))
	removed := false
	for _, s := range subs {
		if s == name {
			removed = true
			continue
		}
		next = append(next, s)
	}
	if removed {
		t.categories[i].Subcategories = next
	}
	return removed
}

// Equal reports whether two taxonomies hold the same categories in the same order.
func (t Taxonomy) Equal(other Taxonomy) bool {
	if len(t.categories) != len(other.categories) {
		return false
	}
	for i, c := range t.categories {
		o := other.categories[i]
		if c.Name != o.Name || len(c.Subcategories) != len(o.Subcategories) {
			return false
		}
		for j := range c.Subcategories {
			if c.Subcategories[j] != o.Subcategories[j] {
				return false
			}
		}
	}
	return true
}

func (t Taxonomy) indexOf(name string) int {
	for i, c := range t.categories {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func normaliseSubcategories(subs []string) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		s = strings.TrimSpace(s)
		if s == "" || containsString(out, s) {
			continue
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
