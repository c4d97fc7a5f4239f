package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	styleTableHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan).Padding(0, 1)
	styleTableCell   = lipgloss.NewStyle().Padding(0, 1)
	styleTableBorder = lipgloss.NewStyle().Foreground(ColorDimGray)
)

// Table accumulates rows and renders them as a rounded lipgloss table.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row appends a row. Rows shorter than the header are padded with empty
// cells.
func (t *Table) Row(cells ...string) *Table {
	row := make([]string, max(len(cells), len(t.headers)))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return t
}

// Len returns the number of rows, excluding the header.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table.
func (t *Table) String() string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTableHeader
			}
			return styleTableCell
		}).
		String()
}
