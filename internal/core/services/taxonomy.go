package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
)

// Ensure TaxonomyService implements the interface.
var _ driving.TaxonomyService = (*TaxonomyService)(nil)

// TaxonomyService owns the live taxonomy.
//
// Mutations are applied to a copy, persisted, and only then swapped in, so
// a failed write leaves the in-memory taxonomy as it was.
type TaxonomyService struct {
	mu          sync.RWMutex
	configStore driven.ConfigStore
	taxonomy    domain.Taxonomy
	loadErr     error
}

// NewTaxonomyService creates a taxonomy service holding the seed taxonomy.
// Call Load to pick up persisted data.
func NewTaxonomyService(configStore driven.ConfigStore) *TaxonomyService {
	return &TaxonomyService{
		configStore: configStore,
		taxonomy:    domain.SeedTaxonomy(),
	}
}

// AddCategory adds an empty category.
func (s *TaxonomyService) AddCategory(name string) error {
	name, err := cleanName("category", name)
	if err != nil {
		return err
	}
	return s.mutate(func(t *domain.Taxonomy) (bool, error) {
		return true, t.AddCategory(name)
	})
}

// AddSubcategory adds a subcategory and re-sorts its category.
func (s *TaxonomyService) AddSubcategory(category, name string) error {
	category = strings.TrimSpace(category)
	name, err := cleanName("subcategory", name)
	if err != nil {
		return err
	}
	return s.mutate(func(t *domain.Taxonomy) (bool, error) {
		return true, t.AddSubcategory(category, name)
	})
}

// RemoveCategory removes a category. Absent categories are a no-op.
func (s *TaxonomyService) RemoveCategory(name string) error {
	name = strings.TrimSpace(name)
	return s.mutate(func(t *domain.Taxonomy) (bool, error) {
		return t.RemoveCategory(name), nil
	})
}

// RemoveSubcategory removes a subcategory. Absent targets are a no-op.
func (s *TaxonomyService) RemoveSubcategory(category, name string) error {
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)
	return s.mutate(func(t *domain.Taxonomy) (bool, error) {
		return t.RemoveSubcategory(category, name), nil
	})
}

// Snapshot returns a deep copy of the taxonomy.
func (s *TaxonomyService) Snapshot() domain.Taxonomy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.taxonomy.Clone()
}

// Filter returns the categories whose name contains query.
func (s *TaxonomyService) Filter(query string) domain.Taxonomy {
	return FilterTaxonomy(s.Snapshot(), query)
}

// Replace swaps in a whole taxonomy. It is allowed after a failed Load.
func (s *TaxonomyService) Replace(t domain.Taxonomy) error {
	next := t.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(next); err != nil {
		return err
	}
	s.taxonomy = next
	s.loadErr = nil
	return nil
}

// Reset restores the seed taxonomy.
func (s *TaxonomyService) Reset() error {
	return s.Replace(domain.SeedTaxonomy())
}

// Load reads the taxonomy from the settings record. The seed taxonomy is
// used only when nothing is persisted. A persisted value of the wrong shape
// fails with ErrInvalidInput and blocks edits, so the record is never
// overwritten by seed data; Replace (import or reset) clears the block.
func (s *TaxonomyService) Load() error {
	t := domain.SeedTaxonomy()
	if raw, ok := s.configStore.Get(keyTaxonomy); ok {
		decoded, ok := decodeTaxonomy(raw)
		if !ok {
			err := fmt.Errorf("%w: %s in %s is not a list of category tables",
				domain.ErrInvalidInput, keyTaxonomy, s.configStore.Path())
			s.mu.Lock()
			s.loadErr = err
			s.mu.Unlock()
			return err
		}
		t = decoded
	}

	s.mu.Lock()
	s.taxonomy = t
	s.loadErr = nil
	s.mu.Unlock()
	return nil
}

// Save writes the taxonomy to the settings record.
func (s *TaxonomyService) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.loadErr != nil {
		return s.loadErr
	}
	return s.persist(s.taxonomy)
}

// mutate applies fn to a copy, persists it, then swaps it in.
// fn reports whether anything changed; unchanged taxonomies are not written.
func (s *TaxonomyService) mutate(fn func(*domain.Taxonomy) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}

	next := s.taxonomy.Clone()
	changed, err := fn(&next)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.taxonomy = next
	return nil
}

func (s *TaxonomyService) persist(t domain.Taxonomy) error {
	if err := s.configStore.Set(keyTaxonomy, encodeTaxonomy(t)); err != nil {
		return fmt.Errorf("save taxonomy: %w: %w", domain.ErrSettingsPersistFailure, err)
	}
	return nil
}

func cleanName(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: %s name is empty", domain.ErrInvalidInput, kind)
	}
	return name, nil
}
