package driving

import (
	"context"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// ExportService renders taxonomies and documents to export formats.
type ExportService interface {
	// Export renders a job to bytes.
	Export(ctx context.Context, job domain.ExportJob) ([]byte, error)

	// ExportToVault renders a job and writes it into the vault.
	// Returns the vault path of the written file.
	ExportToVault(ctx context.Context, job domain.ExportJob) (string, error)

	// NewTaxonomyJob returns a job over a snapshot of the live taxonomy.
	NewTaxonomyJob(format domain.ExportFormat, title string) domain.ExportJob

	// NewDocumentJob returns a job over raw document content.
	NewDocumentJob(format domain.ExportFormat, title, content string) domain.ExportJob
}
