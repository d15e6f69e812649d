package driven

import "github.com/custodia-labs/rulebook/internal/core/domain"

// PDFWriter renders a laid out document to PDF bytes.
type PDFWriter interface {
	Render(layout domain.PDFLayout) ([]byte, error)
}

// IconCatalog lists the icons that can be embedded in rule text.
type IconCatalog interface {
	// List returns every icon in display order.
	List() []domain.Icon

	// Get returns an icon by name.
	Get(name string) (domain.Icon, bool)
}

// TaxonomyCodec encodes taxonomies for import and export.
type TaxonomyCodec interface {
	Encode(t domain.Taxonomy) ([]byte, error)
	Decode(data []byte) (domain.Taxonomy, error)
}
