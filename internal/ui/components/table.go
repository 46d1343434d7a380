package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyplan/internal/ui/theme"
)

// Table renders rows as left-aligned columns under a ruled header. Cells
// may already be styled; widths are measured without escape codes.
type Table struct {
	Headers []string
	Rows    [][]string
	Gap     int
}

// NewTable creates a table with a two-space column gap.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers, Gap: 2}
}

// Add appends a row. Missing cells render empty.
func (t *Table) Add(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// View renders the table.
func (t *Table) View() string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := range min(len(row), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	total := 0
	for i, h := range t.Headers {
		b.WriteString(t.pad(theme.TableHeader.Render(h), widths[i], i))
		total += widths[i]
	}
	total += t.Gap * max(len(widths)-1, 0)
	b.WriteString("\n")
	b.WriteString(theme.TableRule.Render(strings.Repeat("─", total)))
	b.WriteString("\n")

	for _, row := range t.Rows {
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(t.pad(cell, widths[i], i))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pad right-pads cell to width and adds the gap unless it is the last column.
func (t *Table) pad(cell string, width, col int) string {
	if col == len(t.Headers)-1 {
		return cell
	}
	return cell + strings.Repeat(" ", width-lipgloss.Width(cell)+t.Gap)
}
