package memory

import (
	"sort"
	"sync"

	"github.com/custodia-labs/rulebook/internal/adapters/driven/config/value"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps the settings record in a map. Tests and --ephemeral runs
// use it; nothing outlives the process.
type ConfigStore struct {
	value.Typed

	mu      sync.RWMutex
	values  map[string]any
	failErr error
}

// NewConfigStore creates an empty config store.
func NewConfigStore() *ConfigStore {
	s := &ConfigStore{values: make(map[string]any)}
	s.Lookup = s.Get
	return s
}

// Get returns the raw value at key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value at key unless a write failure is injected.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.values[key] = value
	return nil
}

// FailWrites makes every following Set return err. Pass nil to clear.
func (s *ConfigStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Keys returns the stored keys, sorted.
func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save does nothing.
func (s *ConfigStore) Save() error { return nil }

// Load does nothing.
func (s *ConfigStore) Load() error { return nil }

// Path returns a marker for display.
func (s *ConfigStore) Path() string { return ":memory:" }
