package domain

import "strings"

// Default export titles.
const (
	// TaxonomyExportTitle names the file of a taxonomy-wide export.
	TaxonomyExportTitle = "Wargame_Rules"

	// UntitledExportTitle is used when the active document has no title.
	UntitledExportTitle = "Untitled"

	// TaxonomyExportHeading is drawn above the categories in a taxonomy PDF.
	TaxonomyExportHeading = "Exported Wargame Rules:"
)

// ExportJob is a single export request. It is produced and consumed within
// one export call.
type ExportJob struct {
	// ID correlates log lines for one export.
	ID string

	// Format is the output format.
	Format ExportFormat

	// Title names the output file.
	Title string

	// Taxonomy is set for taxonomy-wide exports. It must be a snapshot.
	Taxonomy *Taxonomy

	// Content is the raw document text when Taxonomy is nil.
	Content string
}

// IsTaxonomy returns true if the job exports the taxonomy rather than text.
func (j ExportJob) IsTaxonomy() bool {
	return j.Taxonomy != nil
}

// FileName returns the output file name, e.g. "Rules.pdf" or
// "Wargame_Rules.pdf" for an untitled taxonomy export.
func (j ExportJob) FileName() string {
	title := strings.TrimSpace(j.Title)
	if title == "" {
		if j.IsTaxonomy() {
			title = TaxonomyExportTitle
		} else {
			title = UntitledExportTitle
		}
	}
	return title + j.Format.Extension()
}

// PageSize is a page size in layout units.
type PageSize struct {
	Width  float64
	Height float64
}

// TextStyle describes how a placed line is drawn.
type TextStyle struct {
	Bold      bool
	Italic    bool
	Monospace bool

	// Size is the font size in layout units.
	Size float64
}

// PlacedLine is one line of text at a fixed position.
// Y is measured from the bottom of the page.
type PlacedLine struct {
	// Page is the zero-based page index.
	Page int

	X     float64
	Y     float64
	Text  string
	Style TextStyle
}

// PDFLayout is a paginated set of placed lines ready to render.
type PDFLayout struct {
	Size  PageSize
	Pages int
	Lines []PlacedLine
}

// LinesOnPage returns the lines placed on the given page.
func (l PDFLayout) LinesOnPage(page int) []PlacedLine {
	var out []PlacedLine
	for _, line := range l.Lines {
		if line.Page == page {
			out = append(out, line)
		}
	}
	return out
}
