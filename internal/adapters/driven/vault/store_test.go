package vault

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func newTestStore(t *testing.T, ignore ...string) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	store, err := New(root, ignore)
	require.NoError(t, err)
	return store, root
}

func TestNew(t *testing.T) {
	t.Run("empty root", func(t *testing.T) {
		_, err := New("", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "nope"), nil)
		assert.Error(t, err)
	})

	t.Run("file as root", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "file.md", "x")
		_, err := New(filepath.Join(root, "file.md"), nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := New(t.TempDir(), []string{"[unclosed"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestStore_ReadDocument(t *testing.T) {
	store, root := newTestStore(t)
	writeFile(t, root, "units/Infantry.md", "# Infantry\n")
	ctx := context.Background()

	doc, err := store.ReadDocument(ctx, "units/Infantry.md")
	require.NoError(t, err)
	assert.Equal(t, "units/Infantry.md", doc.Path)
	assert.Equal(t, "# Infantry\n", doc.Content)
	assert.Equal(t, "Infantry", doc.Title())
	assert.False(t, doc.ModifiedAt.IsZero())

	_, err = store.ReadDocument(ctx, "units/Cavalry.md")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.ReadDocument(ctx, "units")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = store.ReadDocument(ctx, "../outside.md")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_CreateDocument(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateDocument(ctx, "Rules.md", []byte("v1")))
	data, err := os.ReadFile(filepath.Join(root, "Rules.md"))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	err = store.CreateDocument(ctx, "Rules.md", []byte("v2"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	err = store.CreateDocument(ctx, "missing/Rules.md", []byte("v1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateExclusive_FailedWriteRemovesFile(t *testing.T) {
	full := filepath.Join(t.TempDir(), "Rules_v1700000000000.md")
	diskFull := errors.New("no space left on device")

	err := createExclusive(full, []byte("partial"), func(f *os.File, b []byte) error {
		_, _ = f.Write(b[:3])
		return diskFull
	})

	assert.ErrorIs(t, err, diskFull)
	_, statErr := os.Stat(full)
	assert.True(t, os.IsNotExist(statErr))

	// The name is free again for a retry.
	require.NoError(t, createExclusive(full, []byte("whole"), writeAll))
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "whole", string(data))
}

func TestStore_WriteDocument(t *testing.T) {
	store, root := newTestStore(t)
	writeFile(t, root, "Rules.md", "old")
	ctx := context.Background()

	require.NoError(t, store.WriteDocument(ctx, "Rules.md", []byte("new")))
	data, err := os.ReadFile(filepath.Join(root, "Rules.md"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	_, err = os.Stat(filepath.Join(root, "Rules.md.tmp"))
	assert.True(t, os.IsNotExist(err))

	err = store.WriteDocument(ctx, "Other.md", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_Folders(t *testing.T) {
	store, root := newTestStore(t)
	ctx := context.Background()

	_, err := store.ListFolder(ctx, "Versions")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.CreateFolder(ctx, "Versions/2026"))
	require.NoError(t, store.CreateFolder(ctx, "Versions"))
	writeFile(t, root, "Versions/b.md", "")
	writeFile(t, root, "Versions/a.md", "")

	names, err := store.ListFolder(ctx, "Versions")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md"}, names)
}

func TestStore_ListDocuments(t *testing.T) {
	store, root := newTestStore(t, "Versions", "**/drafts/**")
	writeFile(t, root, "Rules.md", "")
	writeFile(t, root, "units/Infantry.MD", "")
	writeFile(t, root, "units/notes.txt", "")
	writeFile(t, root, "units/drafts/Wip.md", "")
	writeFile(t, root, "Versions/Rules - 1.md", "")
	writeFile(t, root, ".obsidian/workspace.md", "")
	writeFile(t, root, ".hidden.md", "")

	paths, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Rules.md", "units/Infantry.MD"}, paths)
}

func TestStore_Rel(t *testing.T) {
	store, root := newTestStore(t)

	rel, ok := store.Rel(filepath.Join(root, "units", "Infantry.md"))
	assert.True(t, ok)
	assert.Equal(t, "units/Infantry.md", rel)

	_, ok = store.Rel(filepath.Dir(root))
	assert.False(t, ok)
}

func TestMatcher_Ignored(t *testing.T) {
	m, err := NewMatcher([]string{"Versions/", "archive/*.md", " "})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"Versions", true},
		{"Versions/Rules - 1.md", true},
		{"archive/old.md", true},
		{"archive/deep/old.md", false},
		{"Rules.md", false},
		{".trash/x.md", true},
		{"units/.draft.md", true},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Ignored(tt.path))
		})
	}

	var none *Matcher
	assert.False(t, none.Ignored("Rules.md"))
	assert.True(t, none.Ignored(".git/config"))
}
