package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// templateExt is the file extension of template files.
const templateExt = ".md"

// TemplateStore loads rule templates from user-editable files on disk.
// Templates are loaded from a configurable directory with fallback to
// embedded defaults.
//
// The store initialises lazily: the directory and default files are only
// created on the first Load, not in the constructor.
type TemplateStore struct {
	mu          sync.RWMutex
	templateDir string
	cache       map[string]string
	initOnce    sync.Once
	initErr     error
}

// defaultTemplates contains the embedded default templates.
// They are written out as the initial content of new files.
var defaultTemplates = map[string]string{
	driven.TemplateCombatBlock: domain.DefaultCombatTemplate,
}

// NewTemplateStore creates a new file-based template store.
// If templateDir is empty, defaults to ~/.rulebook/templates/.
func NewTemplateStore(templateDir string) (*TemplateStore, error) {
	if templateDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		templateDir = filepath.Join(dir, "templates")
	}

	return &TemplateStore{
		templateDir: templateDir,
		cache:       make(map[string]string),
	}, nil
}

// Load returns the template for the given name.
// Falls back to the embedded default when the file is missing or blank.
func (s *TemplateStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if tmpl, ok := defaultTemplates[name]; ok {
			return tmpl, nil
		}
		return "", fmt.Errorf("template store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if tmpl, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return tmpl, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	tmpl, err := s.loadFromFile(name)
	if err != nil || tmpl == "" {
		if def, ok := defaultTemplates[name]; ok {
			return def, nil
		}
		if err == nil {
			err = domain.ErrNotFound
		}
		return "", fmt.Errorf("load template %q: %w", name, err)
	}

	// Double-check so concurrent loads agree on one value
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		tmpl = cached
	} else {
		s.cache[name] = tmpl
	}
	s.mu.Unlock()

	return tmpl, nil
}

// Reload clears the cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template directory path.
func (s *TemplateStore) Dir() string {
	return s.templateDir
}

// initialise creates the template directory and default files.
func (s *TemplateStore) initialise() {
	if err := os.MkdirAll(s.templateDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create template directory: %w", err)
		return
	}

	// Only write files that don't exist yet
	for name, content := range defaultTemplates {
		path := filepath.Join(s.templateDir, name+templateExt)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default template %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a template from disk. Trailing whitespace is dropped
// but leading indentation is kept.
func (s *TemplateStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.templateDir, name+templateExt)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	tmpl := strings.TrimRight(string(data), " \t\r\n")
	if tmpl == "" {
		return "", nil
	}
	return tmpl + "\n", nil
}

// createReadme writes a README explaining the templates directory.
func (s *TemplateStore) createReadme() error {
	path := filepath.Join(s.templateDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Rulebook Templates

This directory holds the templates used when inserting rules.

## Files

- ` + "`combat_block.md`" + ` - The Combat Resolution block

## Placeholders

- ` + "`{category}`" + ` - Category name
- ` + "`{subcategory}`" + ` - Subcategory name
- ` + "`{icon}`" + ` - Icon reference, empty when no icon was chosen

Delete a file to restore its default on the next run.
`
	return os.WriteFile(path, []byte(content), 0600)
}
