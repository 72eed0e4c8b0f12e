package components

import (
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const maxColumnWidth = 32

// Table is a scrolling, cursor-highlighted text table.
type Table struct {
	Headers []string
	Rows    [][]string

	Cursor int
	Offset int

	// StatusColumn, when >= 0, colours that column with StatusStyle.
	StatusColumn int
}

// NewTable returns a table with no status column.
func NewTable(headers []string, rows [][]string) Table {
	return Table{Headers: headers, Rows: rows, StatusColumn: -1}
}

// Scroll keeps the cursor inside a window of visible rows and returns the
// new offset.
func Scroll(cursor, offset, visible int) int {
	if visible < 1 {
		return cursor
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visible {
		return cursor - visible + 1
	}
	return offset
}

// ColumnWidths sizes each column to its widest cell, capped at
// maxColumnWidth.
func ColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], len([]rune(row[i])))
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColumnWidth)
	}
	return widths
}

// View renders the header and as many rows as fit in height, and returns
// the offset it scrolled to.
func (t Table) View(width, height int) (string, int) {
	widths := ColumnWidths(t.Headers, t.Rows)
	visible := max(height-1, 1)
	offset := Scroll(t.Cursor, t.Offset, visible)

	lines := []string{styles.TableHeader.Render(ansi.Truncate("  "+t.join(t.Headers, widths, -1), width-2, "…"))}
	end := min(offset+visible, len(t.Rows))
	for i := offset; i < end; i++ {
		prefix, style := "  ", styles.TableCell
		if i == t.Cursor {
			prefix, style = "> ", styles.TableSelectedRow
		}
		line := ansi.Truncate(prefix+t.join(t.Rows[i], widths, t.StatusColumn), width-2, "…")
		lines = append(lines, style.Render(line))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...), offset
}

func (t Table) join(cells []string, widths []int, statusCol int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = ansi.Truncate(cell, w, "…")
		padded := cell + strings.Repeat(" ", w-ansi.StringWidth(cell))
		if i == statusCol {
			padded = styles.StatusStyle(cell).Render(padded)
		}
		parts[i] = padded
	}
	return strings.Join(parts, "  ")
}
