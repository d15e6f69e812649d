package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJob_FileName(t *testing.T) {
	tax := NewTaxonomy(Category{Name: "Combat"})

	tests := []struct {
		name string
		job  ExportJob
		want string
	}{
		{name: "taxonomy default", job: ExportJob{Format: ExportFormatPDF, Taxonomy: &tax}, want: "Wargame_Rules.pdf"},
		{name: "taxonomy titled", job: ExportJob{Format: ExportFormatPDF, Taxonomy: &tax, Title: "Army"}, want: "Army.pdf"},
		{name: "document pdf", job: ExportJob{Format: ExportFormatPDF, Title: "Rules"}, want: "Rules.pdf"},
		{name: "document markdown", job: ExportJob{Format: ExportFormatMarkdown, Title: "Rules"}, want: "Rules.md"},
		{name: "document text", job: ExportJob{Format: ExportFormatPlainText, Title: "Rules"}, want: "Rules.txt"},
		{name: "untitled document", job: ExportJob{Format: ExportFormatMarkdown, Title: "  "}, want: "Untitled.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.FileName())
		})
	}
}

func TestPDFLayout_LinesOnPage(t *testing.T) {
	layout := PDFLayout{
		Pages: 2,
		Lines: []PlacedLine{
			{Page: 0, Text: "a"},
			{Page: 1, Text: "b"},
			{Page: 0, Text: "c"},
		},
	}

	first := layout.LinesOnPage(0)
	require.Len(t, first, 2)
	assert.Equal(t, "a", first[0].Text)
	assert.Equal(t, "c", first[1].Text)
	assert.Len(t, layout.LinesOnPage(1), 1)
	assert.Empty(t, layout.LinesOnPage(2))
}

func TestBacklinkListing_Empty(t *testing.T) {
	assert.True(t, BacklinkListing{Target: "a.md"}.Empty())
	assert.False(t, BacklinkListing{Links: []Backlink{{Title: "b", Path: "b.md"}}}.Empty())
}

func TestDocumentTitle(t *testing.T) {
	assert.Equal(t, "Rules", DocumentTitle("Rules.md"))
	assert.Equal(t, "Core Rules", DocumentTitle("army/Core Rules.md"))
	assert.Equal(t, "notes", DocumentTitle(`dir\notes.md`))
	assert.Equal(t, "README", DocumentTitle("README"))
	assert.Empty(t, DocumentTitle(""))
	assert.Equal(t, "Rules", Document{Path: "a/Rules.md"}.Title())
}

func TestChangeType_String(t *testing.T) {
	assert.Equal(t, "created", ChangeCreated.String())
	assert.Equal(t, "updated", ChangeUpdated.String())
	assert.Equal(t, "deleted", ChangeDeleted.String())
	assert.Equal(t, "unknown", ChangeType(99).String())
}

func TestIsTaxonomyError(t *testing.T) {
	assert.True(t, IsTaxonomyError(fmt.Errorf("add: %w", ErrDuplicateCategory)))
	assert.True(t, IsTaxonomyError(ErrUnknownSubcategory))
	assert.False(t, IsTaxonomyError(ErrPersistFailure))
	assert.False(t, IsTaxonomyError(nil))
}

func TestIsIOError(t *testing.T) {
	assert.True(t, IsIOError(fmt.Errorf("write: %w", ErrPersistFailure)))
	assert.True(t, IsIOError(ErrExportFailure))
	assert.True(t, IsIOError(ErrSettingsPersistFailure))
	assert.True(t, IsIOError(ErrDocumentWriteFailure))
	assert.False(t, IsIOError(ErrUnknownCategory))
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Notice
	}{
		{name: "nil", err: nil, want: ""},
		{name: "taxonomy", err: fmt.Errorf("%w: Combat", ErrDuplicateCategory), want: "category already exists: Combat"},
		{name: "no document", err: ErrNoActiveDocument, want: NoticeNoActiveFile},
		{name: "export", err: fmt.Errorf("render: %w", ErrExportFailure), want: NoticeExportFailed},
		{name: "persist", err: fmt.Errorf("write: %w", ErrPersistFailure), want: NoticeSaveVersionFailed},
		{name: "settings persist", err: fmt.Errorf("save taxonomy: %w: disk full", ErrSettingsPersistFailure), want: NoticeSettingsSaveFailed},
		{name: "document write", err: fmt.Errorf("insert rule: %w: read-only", ErrDocumentWriteFailure), want: NoticeInsertFailed},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NoticeFor(tt.err))
		})
	}
}

func TestNotices_ExactText(t *testing.T) {
	assert.Equal(t, "No active file to track version for!", NoticeNoActiveFile.String())
	assert.Equal(t, "No active markdown view found!", NoticeNoActiveView.String())
	assert.Equal(t, "Version saved successfully!", NoticeVersionSaved.String())
	assert.Equal(t, "No version history found!", NoticeNoVersionHistory.String())
	assert.Equal(t, "No backlinks found!", NoticeNoBacklinks.String())
	assert.Equal(t, "Saving version...", NoticeSavingVersion.String())
	assert.Equal(t, "Exporting PDF...", NoticeExportingPDF.String())
	assert.Equal(t, "Failed to save version. Please try again.", NoticeSaveVersionFailed.String())
	assert.Equal(t, "Export failed. Please try again.", NoticeExportFailed.String())
}
