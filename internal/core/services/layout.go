package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// PDF layout constants, in layout units with the origin at the bottom left.
const (
	pageWidth     = 600
	pageHeight    = 800
	firstLineY    = 750
	belowHeadingY = 700
	lineStep      = 20
	bottomMargin  = 40
	marginX       = 50
	indentX       = 70

	bodySize    = 12
	headingSize = 18

	// wrapColumns is the rune width at which body-size lines are broken.
	// Larger text wraps proportionally earlier; see columnsFor.
	wrapColumns = 80
)

var headingSizes = map[int]float64{1: 18, 2: 16, 3: 14}

// pageCursor places lines top to bottom and opens a new page whenever the
// next line would fall below the bottom margin.
type pageCursor struct {
	layout domain.PDFLayout
	page   int
	y      float64
}

func newPageCursor() *pageCursor {
	return &pageCursor{
		layout: domain.PDFLayout{
			Size:  domain.PageSize{Width: pageWidth, Height: pageHeight},
			Pages: 1,
		},
		y: firstLineY,
	}
}

func (c *pageCursor) place(x float64, text string, style domain.TextStyle) {
	c.breakIfNeeded()
	c.layout.Lines = append(c.layout.Lines, domain.PlacedLine{
		Page:  c.page,
		X:     x,
		Y:     c.y,
		Text:  text,
		Style: style,
	})
	c.y -= lineStep
}

// skip advances one line without drawing.
func (c *pageCursor) skip() {
	c.breakIfNeeded()
	c.y -= lineStep
}

func (c *pageCursor) breakIfNeeded() {
	if c.y < bottomMargin {
		c.page++
		c.layout.Pages = c.page + 1
		c.y = firstLineY
	}
}

// heading draws a title at the first line and moves the cursor below it.
// A title too wide for one line continues on the lines that follow.
func (c *pageCursor) heading(text string) {
	style := domain.TextStyle{Bold: true, Size: headingSize}
	for _, l := range wrapText(text, columnsFor(style)) {
		c.place(marginX, l, style)
	}
	if c.y > belowHeadingY {
		c.y = belowHeadingY
	}
}

func (c *pageCursor) result() domain.PDFLayout {
	return c.layout
}

// LayoutTaxonomy lays out a taxonomy: one line per category followed by an
// indented "- sub" line per subcategory. With a heading, the heading takes
// the first line and categories start lower.
func LayoutTaxonomy(t domain.Taxonomy, heading string) domain.PDFLayout {
	c := newPageCursor()
	if heading != "" {
		c.heading(heading)
	}
	for _, cat := range t.Categories() {
		c.place(marginX, cat.Name, domain.TextStyle{Bold: true, Size: bodySize})
		for _, sub := range cat.Subcategories {
			c.place(indentX, "- "+sub, domain.TextStyle{Size: bodySize})
		}
	}
	return c.result()
}

// LayoutDocument lays out markdown content as styled lines. Headings, list
// items, block quotes, whole-line emphasis and fenced code are recognised;
// other inline markup is reduced to its text.
func LayoutDocument(title, content string) domain.PDFLayout {
	c := newPageCursor()
	if title != "" {
		c.heading(title)
	}

	body := domain.TextStyle{Size: bodySize}
	inFence := false
	pendingBlank := false
	placed := false

	for _, raw := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		if inFence {
			if isClosingFence(raw) {
				inFence = false
				continue
			}
			code := domain.TextStyle{Monospace: true, Size: bodySize - 2}
			for _, l := range wrapText(strings.ReplaceAll(raw, "\t", "    "), columnsFor(code)) {
				c.place(indentX, l, code)
			}
			placed = true
			continue
		}
		if isOpeningFence(raw) {
			inFence = true
			continue
		}

		line := strings.TrimRight(raw, " \t")
		if strings.TrimSpace(line) == "" || rulePattern.MatchString(line) {
			pendingBlank = placed
			continue
		}
		if pendingBlank {
			c.skip()
			pendingBlank = false
		}

		x, text, style := marginX, "", body
		switch {
		case headingPattern.MatchString(line):
			m := headingPattern.FindStringSubmatch(line)
			size, ok := headingSizes[len(m[1])]
			if !ok {
				size = bodySize
			}
			text, style = plainInline(m[2]), domain.TextStyle{Bold: true, Size: size}
		case bulletPattern.MatchString(line):
			m := bulletPattern.FindStringSubmatch(line)
			x, text = indentX, "- "+plainInline(m[1])
		case numberedPattern.MatchString(line):
			m := numberedPattern.FindStringSubmatch(line)
			x, text = indentX, m[1]+". "+plainInline(m[2])
		case quotePattern.MatchString(line):
			m := quotePattern.FindStringSubmatch(line)
			x, text, style = indentX, plainInline(m[1]), domain.TextStyle{Italic: true, Size: bodySize}
		default:
			bold, italic := wholeLineEmphasis(line)
			text = plainInline(strings.TrimSpace(line))
			style = domain.TextStyle{Bold: bold, Italic: italic, Size: bodySize}
		}

		for _, l := range wrapText(text, columnsFor(style)) {
			c.place(float64(x), l, style)
		}
		placed = true
	}
	return c.result()
}

// columnsFor returns the wrap width for style, so a line keeps the same
// printed width whatever its font size.
func columnsFor(style domain.TextStyle) int {
	if style.Size <= bodySize {
		return wrapColumns
	}
	return int(wrapColumns * bodySize / style.Size)
}

// wrapText breaks s into lines of at most width runes, splitting on spaces
// and cutting words that are longer than a line.
func wrapText(s string, width int) []string {
	if utf8.RuneCountInString(s) <= width {
		return []string{s}
	}

	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(cur) == 0:
			cur = w
		case len(cur)+1+len(w) <= width:
			cur = append(append(cur, ' '), w...)
		default:
			lines = append(lines, string(cur))
			cur = w
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
