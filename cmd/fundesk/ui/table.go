package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders tabular resource data with an optional cursor row.
type Table struct {
	Headers []string
	Rows    [][]string

	// Cursor is the highlighted row index, or -1 for none.
	Cursor int
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{Headers: headers, Cursor: -1}
}

// SetRows replaces the table content.
func (t *Table) SetRows(rows [][]string) {
	t.Rows = rows
	if t.Cursor >= len(rows) {
		t.Cursor = len(rows) - 1
	}
}

// MoveCursor shifts the highlighted row by delta, clamped to the content.
func (t *Table) MoveCursor(delta int) {
	if len(t.Rows) == 0 {
		t.Cursor = -1
		return
	}
	t.Cursor += delta
	if t.Cursor < 0 {
		t.Cursor = 0
	}
	if t.Cursor >= len(t.Rows) {
		t.Cursor = len(t.Rows) - 1
	}
}

// SelectedRow returns the highlighted row, or nil.
func (t *Table) SelectedRow() []string {
	if t.Cursor < 0 || t.Cursor >= len(t.Rows) {
		return nil
	}
	return t.Rows[t.Cursor]
}

// View renders the table using the provided styles.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	// Column widths from headers and content
	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	selectedStyle := styles.Selected.Padding(0, 1)
	sepStyle := styles.Muted

	for i, h := range t.Headers {
		sb.WriteString(headerStyle.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(sepStyle.Render(strings.Repeat("-", totalWidth)) + "\n")

	for rowIdx, row := range t.Rows {
		cellStyle := rowStyle
		if rowIdx == t.Cursor {
			cellStyle = selectedStyle
		}
		for i, cell := range row {
			if i < len(colWidths) {
				sb.WriteString(cellStyle.Width(colWidths[i]).Render(cell))
				if i < len(row)-1 {
					sb.WriteString(sepStyle.Render("|"))
				}
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
