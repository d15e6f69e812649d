package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is a markdown vault rooted at a directory.
type Store struct {
	root    string
	matcher *Matcher
}

// New opens the vault at root. root must be an existing directory.
// ignore holds doublestar patterns excluded from ListDocuments.
func New(root string, ignore []string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: vault root is empty", domain.ErrInvalidInput)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("opening vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: vault root is not a directory: %s", domain.ErrInvalidInput, abs)
	}
	matcher, err := NewMatcher(ignore)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return &Store{root: abs, matcher: matcher}, nil
}

// Root returns the absolute vault directory.
func (s *Store) Root() string {
	return s.root
}

// Matcher returns the ignore matcher used for listing.
func (s *Store) Matcher() *Matcher {
	return s.matcher
}

// ReadDocument returns a document by vault path.
func (s *Store) ReadDocument(_ context.Context, p string) (*domain.Document, error) {
	rel, full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if err != nil {
		return nil, mapErr(err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a folder", domain.ErrNotFound, rel)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, mapErr(err)
	}
	return &domain.Document{Path: rel, Content: string(data), ModifiedAt: info.ModTime()}, nil
}

// CreateDocument writes a new document. The parent folder must exist.
func (s *Store) CreateDocument(_ context.Context, p string, content []byte) error {
	_, full, err := s.resolve(p)
	if err != nil {
		return err
	}
	if err := createExclusive(full, content, writeAll); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	return nil
}

func writeAll(f *os.File, content []byte) error {
	_, err := f.Write(content)
	return err
}

// createExclusive creates full, failing when it exists. A failed write
// removes the partial file so no truncated snapshot or export is left.
func createExclusive(full string, content []byte, write func(*os.File, []byte) error) error {
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return mapErr(err)
	}
	err = write(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		return err
	}
	return nil
}

// WriteDocument replaces an existing document via a temporary file.
func (s *Store) WriteDocument(_ context.Context, p string, content []byte) error {
	_, full, err := s.resolve(p)
	if err != nil {
		return err
	}
	info, err := os.Stat(full)
	if err != nil {
		return mapErr(err)
	}
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, content, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", p, err)
	}
	return nil
}

// ListFolder returns the file names directly inside folder, sorted.
func (s *Store) ListFolder(_ context.Context, folder string) ([]string, error) {
	_, full, err := s.resolve(folder)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, mapErr(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// CreateFolder creates folder and its parents.
func (s *Store) CreateFolder(_ context.Context, folder string) error {
	_, full, err := s.resolve(folder)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(full, 0755); err != nil {
		return fmt.Errorf("creating folder %s: %w", folder, err)
	}
	return nil
}

// ListDocuments walks the vault and returns every markdown path that is
// neither hidden nor ignored.
func (s *Store) ListDocuments(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			if full == s.root {
				return err
			}
			// Unreadable entries are skipped.
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, relErr := filepath.Rel(s.root, full)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if s.matcher.Ignored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && isMarkdown(rel) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking vault: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Rel converts a native path under the root to a vault path.
func (s *Store) Rel(full string) (string, bool) {
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// resolve cleans a vault path and returns it with its native location.
func (s *Store) resolve(p string) (string, string, error) {
	raw := strings.ReplaceAll(p, "\\", "/")
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", "", fmt.Errorf("%w: path escapes vault: %s", domain.ErrInvalidInput, p)
		}
	}
	rel := strings.TrimPrefix(path.Clean("/"+raw), "/")
	return rel, filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

func isMarkdown(p string) bool {
	return strings.EqualFold(path.Ext(p), ".md")
}

// mapErr translates filesystem errors into domain errors.
func mapErr(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %w", domain.ErrAlreadyExists, err)
	default:
		return err
	}
}
