package memory

import (
	"context"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Ensure Vault implements the interface.
var _ driven.DocumentStore = (*Vault)(nil)

// Vault is an in-memory implementation of driven.DocumentStore.
type Vault struct {
	mu      sync.RWMutex
	files   map[string]domain.Document
	folders map[string]struct{}
	failErr error
	now     func() time.Time
}

// NewVault creates an empty in-memory vault.
func NewVault() *Vault {
	return &Vault{
		files:   make(map[string]domain.Document),
		folders: map[string]struct{}{"": {}},
		now:     time.Now,
	}
}

// Put stores content at p, creating parent folders. Overwrites.
func (v *Vault) Put(p, content string) {
	p = clean(p)
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addParents(p)
	v.files[p] = domain.Document{Path: p, Content: content, ModifiedAt: v.now()}
}

// Delete removes a file.
func (v *Vault) Delete(p string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.files, clean(p))
}

// FailWrites makes every following write return err. Pass nil to clear.
func (v *Vault) FailWrites(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.failErr = err
}

// ReadDocument returns a document by path.
func (v *Vault) ReadDocument(_ context.Context, p string) (*domain.Document, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	doc, ok := v.files[clean(p)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// CreateDocument writes a new document. Never overwrites.
func (v *Vault) CreateDocument(_ context.Context, p string, content []byte) error {
	p = clean(p)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failErr != nil {
		return v.failErr
	}
	if _, exists := v.files[p]; exists {
		return domain.ErrAlreadyExists
	}
	if _, ok := v.folders[parent(p)]; !ok {
		return domain.ErrNotFound
	}
	v.files[p] = domain.Document{Path: p, Content: string(content), ModifiedAt: v.now()}
	return nil
}

// WriteDocument replaces an existing document.
func (v *Vault) WriteDocument(_ context.Context, p string, content []byte) error {
	p = clean(p)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failErr != nil {
		return v.failErr
	}
	if _, exists := v.files[p]; !exists {
		return domain.ErrNotFound
	}
	v.files[p] = domain.Document{Path: p, Content: string(content), ModifiedAt: v.now()}
	return nil
}

// ListFolder returns the file names directly inside folder.
func (v *Vault) ListFolder(_ context.Context, folder string) ([]string, error) {
	folder = clean(folder)
	v.mu.RLock()
	defer v.mu.RUnlock()
	if _, ok := v.folders[folder]; !ok {
		return nil, domain.ErrNotFound
	}
	var names []string
	for p := range v.files {
		if parent(p) == folder {
			names = append(names, path.Base(p))
		}
	}
	sort.Strings(names)
	return names, nil
}

// CreateFolder creates folder and its parents.
func (v *Vault) CreateFolder(_ context.Context, folder string) error {
	folder = clean(folder)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.failErr != nil {
		return v.failErr
	}
	v.folders[folder] = struct{}{}
	v.addParents(folder)
	return nil
}

// ListDocuments returns every markdown path, sorted.
func (v *Vault) ListDocuments(_ context.Context) ([]string, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var paths []string
	for p := range v.files {
		if strings.EqualFold(path.Ext(p), ".md") {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Root returns a fixed marker for display.
func (v *Vault) Root() string {
	return ":memory:"
}

// addParents registers every ancestor folder of p (caller must hold lock).
func (v *Vault) addParents(p string) {
	for dir := parent(p); ; dir = parent(dir) {
		v.folders[dir] = struct{}{}
		if dir == "" {
			return
		}
	}
}

func clean(p string) string {
	p = path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "/")
}

func parent(p string) string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
