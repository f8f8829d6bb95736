package tui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// RenderTable writes tabular data with aligned columns. Column widths
// follow the widest cell; rows shorter than the header are padded.
func RenderTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	styles := NewTableStyles()

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	headerCells := make([]string, len(headers))
	for i, h := range headers {
		headerCells[i] = styles.Header.Render(pad(h, widths[i]))
	}
	_, _ = fmt.Fprintln(w, strings.Join(headerCells, "  "))

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = styles.Dim.Render(strings.Repeat("─", widths[i]))
	}
	_, _ = fmt.Fprintln(w, strings.Join(separators, "  "))

	for _, row := range rows {
		cells := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = pad(cell, widths[i])
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// pad right-pads s with spaces to the given rune width.
func pad(s string, width int) string {
	gap := width - utf8.RuneCountInString(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// Truncate shortens s to at most width runes, ending with an ellipsis
// when anything was cut.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
