// Package pdf renders laid out export documents with go-pdf/fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.PDFWriter = (*Writer)(nil)

// Writer renders domain.PDFLayout pages. Layout units are points.
type Writer struct {
	creator string
	now     func() time.Time
}

// Option configures a Writer.
type Option func(*Writer)

// WithClock fixes the document creation time, for reproducible output.
func WithClock(now func() time.Time) Option {
	return func(w *Writer) {
		w.now = now
	}
}

// NewWriter creates a PDF writer.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		creator: "rulebook",
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Render draws every placed line and returns the PDF bytes.
// Layout Y grows upwards from the page bottom; fpdf measures from the top.
func (w *Writer) Render(layout domain.PDFLayout) ([]byte, error) {
	if layout.Size.Width <= 0 || layout.Size.Height <= 0 {
		return nil, fmt.Errorf("%w: page size %vx%v", domain.ErrInvalidInput, layout.Size.Width, layout.Size.Height)
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: layout.Size.Width, Ht: layout.Size.Height},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCreator(w.creator, true)
	doc.SetCatalogSort(true)
	created := w.now()
	doc.SetCreationDate(created)
	doc.SetModificationDate(created)

	translate := doc.UnicodeTranslatorFromDescriptor("")

	pages := layout.Pages
	if pages < 1 {
		pages = 1
	}
	for _, line := range layout.Lines {
		if line.Page < 0 || line.Page >= pages {
			return nil, fmt.Errorf("%w: line on page %d of %d", domain.ErrInvalidInput, line.Page, pages)
		}
	}

	for page := range pages {
		doc.AddPage()
		for _, line := range layout.LinesOnPage(page) {
			family, style := font(line.Style)
			doc.SetFont(family, style, line.Style.Size)
			doc.Text(line.X, layout.Size.Height-line.Y, translate(line.Text))
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// font maps a text style to a core font family and fpdf style string.
func font(s domain.TextStyle) (string, string) {
	family := "Helvetica"
	if s.Monospace {
		family = "Courier"
	}
	style := ""
	if s.Bold {
		style += "B"
	}
	if s.Italic {
		style += "I"
	}
	return family, style
}
