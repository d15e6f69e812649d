package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
	"github.com/custodia-labs/rulebook/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService renders taxonomies and documents to PDF, Markdown and
// plain text.
type ExportService struct {
	taxonomy driving.TaxonomyService
	store    driven.DocumentStore
	pdf      driven.PDFWriter
}

// NewExportService creates an export service.
// store is only needed for ExportToVault; pdf only for PDF jobs.
func NewExportService(
	taxonomy driving.TaxonomyService,
	store driven.DocumentStore,
	pdf driven.PDFWriter,
) *ExportService {
	return &ExportService{
		taxonomy: taxonomy,
		store:    store,
		pdf:      pdf,
	}
}

// NewTaxonomyJob returns a job over a snapshot of the live taxonomy.
func (s *ExportService) NewTaxonomyJob(format domain.ExportFormat, title string) domain.ExportJob {
	snap := s.taxonomy.Snapshot()
	return domain.ExportJob{
		ID:       uuid.NewString(),
		Format:   format,
		Title:    title,
		Taxonomy: &snap,
	}
}

// NewDocumentJob returns a job over raw document content.
func (s *ExportService) NewDocumentJob(format domain.ExportFormat, title, content string) domain.ExportJob {
	return domain.ExportJob{
		ID:      uuid.NewString(),
		Format:  format,
		Title:   title,
		Content: content,
	}
}

// Export renders a job to bytes. Every failure wraps domain.ErrExportFailure.
func (s *ExportService) Export(_ context.Context, job domain.ExportJob) ([]byte, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	logger.Debug("export %s: format=%s file=%s", job.ID, job.Format, job.FileName())

	switch job.Format {
	case domain.ExportFormatMarkdown:
		return []byte(s.markdownSource(job)), nil
	case domain.ExportFormatPlainText:
		return []byte(StripCodeBlocks(s.markdownSource(job))), nil
	case domain.ExportFormatPDF:
		return s.exportPDF(job)
	default:
		return nil, fmt.Errorf("%w: %w: format %q", domain.ErrExportFailure, domain.ErrInvalidInput, job.Format)
	}
}

// ExportToVault renders a job and creates it in the vault root under the
// job's file name. Existing files are never overwritten.
func (s *ExportService) ExportToVault(ctx context.Context, job domain.ExportJob) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("%w: no document store configured", domain.ErrExportFailure)
	}
	data, err := s.Export(ctx, job)
	if err != nil {
		return "", err
	}

	name := job.FileName()
	if err := s.store.CreateDocument(ctx, name, data); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return "", fmt.Errorf("%w: %w: %s", domain.ErrExportFailure, domain.ErrAlreadyExists, name)
		}
		return "", fmt.Errorf("%w: write %s: %w", domain.ErrExportFailure, name, err)
	}
	logger.Info("export %s: wrote %s (%d bytes)", job.ID, name, len(data))
	return name, nil
}

func (s *ExportService) exportPDF(job domain.ExportJob) ([]byte, error) {
	if s.pdf == nil {
		return nil, fmt.Errorf("%w: no PDF writer configured", domain.ErrExportFailure)
	}

	var layout domain.PDFLayout
	if job.IsTaxonomy() {
		layout = LayoutTaxonomy(*job.Taxonomy, domain.TaxonomyExportHeading)
	} else {
		layout = LayoutDocument(job.Title, job.Content)
	}
	logger.Debug("export %s: %d lines on %d pages", job.ID, len(layout.Lines), layout.Pages)

	data, err := s.pdf.Render(layout)
	if err != nil {
		return nil, fmt.Errorf("%w: render pdf: %w", domain.ErrExportFailure, err)
	}
	return data, nil
}

// markdownSource returns the job's text. Taxonomy jobs are rendered as a
// markdown outline first.
func (s *ExportService) markdownSource(job domain.ExportJob) string {
	if !job.IsTaxonomy() {
		return job.Content
	}
	return TaxonomyMarkdown(*job.Taxonomy)
}

// TaxonomyMarkdown renders a taxonomy as a markdown outline.
func TaxonomyMarkdown(t domain.Taxonomy) string {
	var b strings.Builder
	b.WriteString("# " + strings.TrimSuffix(domain.TaxonomyExportHeading, ":") + "\n")
	for _, c := range t.Categories() {
		b.WriteString("\n## " + c.Name + "\n")
		if len(c.Subcategories) > 0 {
			b.WriteString("\n")
		}
		for _, sub := range c.Subcategories {
			b.WriteString("- " + sub + "\n")
		}
	}
	return b.String()
}
