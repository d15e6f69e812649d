package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// mockPDFWriter records the last layout it was asked to render.
type mockPDFWriter struct {
	layout domain.PDFLayout
	calls  int
	err    error
}

func (m *mockPDFWriter) Render(layout domain.PDFLayout) ([]byte, error) {
	m.calls++
	m.layout = layout
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-1.3"), nil
}

func newTestExporter(t *testing.T) (*ExportService, *TaxonomyService, *memory.Vault, *mockPDFWriter) {
	t.Helper()
	taxonomy, _ := newCombatTaxonomyService(t)
	vault := memory.NewVault()
	pdf := &mockPDFWriter{}
	return NewExportService(taxonomy, vault, pdf), taxonomy, vault, pdf
}

func TestExportService_Markdown_IsIdentity(t *testing.T) {
	exporter, _, _, _ := newTestExporter(t)
	content := "# Rules\n\n```\ncode\n```\n"

	data, err := exporter.Export(context.Background(),
		exporter.NewDocumentJob(domain.ExportFormatMarkdown, "Rules", content))

	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestExportService_PlainText_StripsCode(t *testing.T) {
	exporter, _, _, _ := newTestExporter(t)

	data, err := exporter.Export(context.Background(),
		exporter.NewDocumentJob(domain.ExportFormatPlainText, "Rules", "a\n```\ncode\n```\nb\n"))

	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(data))
}

func TestExportService_PDF_Taxonomy(t *testing.T) {
	exporter, _, _, pdf := newTestExporter(t)

	data, err := exporter.Export(context.Background(), exporter.NewTaxonomyJob(domain.ExportFormatPDF, ""))

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
	require.Len(t, pdf.layout.Lines, 4)
	assert.Equal(t, domain.TaxonomyExportHeading, pdf.layout.Lines[0].Text)
	assert.Equal(t, "Combat", pdf.layout.Lines[1].Text)
	assert.Equal(t, float64(700), pdf.layout.Lines[1].Y)
	assert.Equal(t, "- Ranged", pdf.layout.Lines[3].Text)
}

func TestExportService_PDF_Document(t *testing.T) {
	exporter, _, _, pdf := newTestExporter(t)

	_, err := exporter.Export(context.Background(),
		exporter.NewDocumentJob(domain.ExportFormatPDF, "Rules", "Roll dice."))

	require.NoError(t, err)
	require.Len(t, pdf.layout.Lines, 2)
	assert.Equal(t, "Rules", pdf.layout.Lines[0].Text)
	assert.Equal(t, "Roll dice.", pdf.layout.Lines[1].Text)
}

func TestExportService_PDF_RenderFailure(t *testing.T) {
	exporter, _, _, pdf := newTestExporter(t)
	pdf.err = errors.New("font missing")

	_, err := exporter.Export(context.Background(), exporter.NewTaxonomyJob(domain.ExportFormatPDF, ""))

	assert.ErrorIs(t, err, domain.ErrExportFailure)
}

func TestExportService_PDF_NoWriter(t *testing.T) {
	taxonomy, _ := newCombatTaxonomyService(t)
	exporter := NewExportService(taxonomy, nil, nil)

	_, err := exporter.Export(context.Background(), exporter.NewTaxonomyJob(domain.ExportFormatPDF, ""))

	assert.ErrorIs(t, err, domain.ErrExportFailure)
}

func TestExportService_UnknownFormat(t *testing.T) {
	exporter, _, _, _ := newTestExporter(t)

	_, err := exporter.Export(context.Background(), exporter.NewDocumentJob("docx", "Rules", "x"))

	assert.ErrorIs(t, err, domain.ErrExportFailure)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportService_TaxonomyJobIsSnapshot(t *testing.T) {
	exporter, taxonomy, _, _ := newTestExporter(t)

	job := exporter.NewTaxonomyJob(domain.ExportFormatMarkdown, "")
	require.NoError(t, taxonomy.AddCategory("Siege"))

	data, err := exporter.Export(context.Background(), job)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Siege")
	assert.NotEmpty(t, job.ID)
}

func TestExportService_ExportToVault(t *testing.T) {
	ctx := context.Background()
	exporter, _, vault, _ := newTestExporter(t)

	name, err := exporter.ExportToVault(ctx, exporter.NewTaxonomyJob(domain.ExportFormatMarkdown, ""))
	require.NoError(t, err)
	assert.Equal(t, "Wargame_Rules.md", name)

	doc, err := vault.ReadDocument(ctx, name)
	require.NoError(t, err)
	assert.Contains(t, doc.Content, "## Combat")

	_, err = exporter.ExportToVault(ctx, exporter.NewTaxonomyJob(domain.ExportFormatMarkdown, ""))
	assert.ErrorIs(t, err, domain.ErrExportFailure)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestExportService_ExportToVault_WriteFailure(t *testing.T) {
	exporter, _, vault, _ := newTestExporter(t)
	vault.FailWrites(errors.New("disk full"))

	_, err := exporter.ExportToVault(context.Background(),
		exporter.NewDocumentJob(domain.ExportFormatPlainText, "Rules", "x"))

	assert.ErrorIs(t, err, domain.ErrExportFailure)
}

func TestTaxonomyMarkdown(t *testing.T) {
	tax := domain.NewTaxonomy(
		domain.Category{Name: "Combat", Subcategories: []string{"Melee", "Ranged"}},
		domain.Category{Name: "Siege"},
	)

	want := "# Exported Wargame Rules\n\n## Combat\n\n- Melee\n- Ranged\n\n## Siege\n"
	assert.Equal(t, want, TaxonomyMarkdown(tax))
}
