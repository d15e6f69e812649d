// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/rulebook/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/rulebook/internal/core/domain"
)

// Row is one line of the browser. Subcategory is empty on category rows.
type Row struct {
	Category    string
	Subcategory string
}

// IsCategory reports whether the row is a category heading.
func (r Row) IsCategory() bool {
	return r.Subcategory == ""
}

// TaxonomyList displays categories with their subcategories indented below.
type TaxonomyList struct {
	rows     []Row
	counts   map[string]int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewTaxonomyList creates a new taxonomy list component.
func NewTaxonomyList(s *styles.Styles) *TaxonomyList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &TaxonomyList{
		styles: s,
		counts: map[string]int{},
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *TaxonomyList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *TaxonomyList) Update(msg tea.Msg) (*TaxonomyList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.rows) > 0 {
				l.selected = len(l.rows) - 1
			}
		}
	}
	return l, nil
}

// View renders the list.
func (l *TaxonomyList) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render("No categories")
	}

	lines := make([]string, 0, len(l.rows)+2)
	header := l.styles.Subtitle.Render(fmt.Sprintf("Categories (%d)", len(l.counts)))
	lines = append(lines, header, "")

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.rows) {
		end = len(l.rows)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (l *TaxonomyList) renderRow(i int) string {
	row := l.rows[i]
	indicator := "  "
	if i == l.selected {
		indicator = "> "
	}

	var text string
	if row.IsCategory() {
		text = fmt.Sprintf("%s%s (%d)", indicator, row.Category, l.counts[row.Category])
	} else {
		text = fmt.Sprintf("%s    %s", indicator, row.Subcategory)
	}

	maxLen := l.width - 2
	if maxLen < 10 {
		maxLen = 10
	}
	if len(text) > maxLen {
		text = text[:maxLen-3] + "..."
	}

	switch {
	case i == l.selected:
		return l.styles.Selected.Render(text)
	case row.IsCategory():
		return l.styles.Title.Render(text)
	default:
		return l.styles.Normal.Render(text)
	}
}

// SetTaxonomy replaces the rows. The selection stays on the same row when
// it still exists.
func (l *TaxonomyList) SetTaxonomy(t domain.Taxonomy) {
	prev, hadPrev := l.SelectedRow()

	l.rows = l.rows[:0]
	l.counts = make(map[string]int, t.Len())
	for _, c := range t.Categories() {
		l.rows = append(l.rows, Row{Category: c.Name})
		for _, sub := range c.Subcategories {
			l.rows = append(l.rows, Row{Category: c.Name, Subcategory: sub})
		}
		l.counts[c.Name] = len(c.Subcategories)
	}

	l.selected = 0
	if hadPrev {
		for i, r := range l.rows {
			if r == prev {
				l.selected = i
				return
			}
		}
		// Fall back to the row's category.
		for i, r := range l.rows {
			if r.IsCategory() && r.Category == prev.Category {
				l.selected = i
				return
			}
		}
	}
}

// Rows returns the current rows.
func (l *TaxonomyList) Rows() []Row {
	return l.rows
}

// Selected returns the index of the selected row.
func (l *TaxonomyList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *TaxonomyList) SetSelected(index int) {
	if index >= 0 && index < len(l.rows) {
		l.selected = index
	}
}

// SelectedRow returns the selected row, or false when the list is empty.
func (l *TaxonomyList) SelectedRow() (Row, bool) {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return Row{}, false
	}
	return l.rows[l.selected], true
}

// MoveUp moves selection up.
func (l *TaxonomyList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *TaxonomyList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *TaxonomyList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *TaxonomyList) Count() int {
	return len(l.rows)
}

// IsEmpty returns whether the list is empty.
func (l *TaxonomyList) IsEmpty() bool {
	return len(l.rows) == 0
}
