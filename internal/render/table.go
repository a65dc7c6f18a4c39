package render

import (
	"fmt"
	"strings"

	"github.com/sadopc/termdba/internal/adapter"
)

// Table renders a query result as an aligned text table. Cells wider than
// maxColWidth are truncated with an ellipsis; NULL values get the palette's
// Null style.
func Table(res *adapter.QueryResult, p *Palette, maxColWidth int) string {
	if res == nil {
		return ""
	}
	if !res.IsSelect {
		line := res.Message
		if line == "" {
			line = fmt.Sprintf("%d row(s) affected", res.RowCount)
		}
		return p.SuccessText.Render(line) + "\n"
	}
	if len(res.Columns) == 0 {
		return p.MutedText.Render("(no columns)") + "\n"
	}
	if maxColWidth <= 0 {
		maxColWidth = 50
	}

	widths := make([]int, len(res.Columns))
	for i, c := range res.Columns {
		widths[i] = min(len(c.Name), maxColWidth)
	}
	for _, row := range res.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			widths[i] = max(widths[i], min(len(cell), maxColWidth))
		}
	}

	var b strings.Builder

	// Header
	for i, c := range res.Columns {
		if i > 0 {
			b.WriteString(p.Border.Render(" | "))
		}
		b.WriteString(p.Header.Render(pad(truncate(c.Name, maxColWidth), widths[i])))
	}
	b.WriteByte('\n')

	// Separator
	for i := range res.Columns {
		if i > 0 {
			b.WriteString(p.Border.Render("-+-"))
		}
		b.WriteString(p.Border.Render(strings.Repeat("-", widths[i])))
	}
	b.WriteByte('\n')

	// Rows
	for _, row := range res.Rows {
		for i := range res.Columns {
			if i > 0 {
				b.WriteString(p.Border.Render(" | "))
			}
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			style := p.Cell
			if cell == "NULL" {
				style = p.Null
			}
			b.WriteString(style.Render(pad(truncate(cell, maxColWidth), widths[i])))
		}
		b.WriteByte('\n')
	}

	// Footer
	footer := fmt.Sprintf("%d row(s) in %v", res.RowCount, res.Duration)
	if res.Truncated {
		footer += " (truncated)"
	}
	b.WriteString(p.MutedText.Render(footer))
	b.WriteByte('\n')

	return b.String()
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}

func pad(s string, width int) string {
	// The ellipsis is three bytes but one column wide.
	n := len(s)
	if strings.HasSuffix(s, "…") {
		n = n - len("…") + 1
	}
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
