package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colGap is the padding between table columns.
const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell. Column indexes listed in
// rightAligned are padded on the left, which suits hour totals.
func RenderTable(headers []string, rows [][]string, rightAligned ...int) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	right := make(map[int]bool, len(rightAligned))
	for _, i := range rightAligned {
		right[i] = true
	}

	// lipgloss.Width ignores ANSI escapes, so styled cells measure correctly.
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			if style != nil {
				cell = style(cell)
			}
			if right[i] {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
				if i < cols-1 {
					b.WriteString(strings.Repeat(" ", colGap))
				}
				continue
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
