// Package render draws a board snapshot as a text table: a header of column
// indices, a dashed rule, one line per row and a closing rule.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

func Text(w io.Writer, g mines.Grid, size int) error {
	if len(g) != size*size {
		return fmt.Errorf("grid has %d cells, want %d", len(g), size*size)
	}

	labelWidth := len(strconv.Itoa(size - 1))
	widths := make([]int, size)
	for col := range size {
		widths[col] = len(strconv.Itoa(col))
		for row := range size {
			widths[col] = max(widths[col], len(g[row*size+col].String()))
		}
	}

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", labelWidth+2))
	for col := range size {
		fmt.Fprintf(&header, "%-*d  ", widths[col], col)
	}

	rows := make([]string, size)
	for row := range size {
		var b strings.Builder
		fmt.Fprintf(&b, "%-*d |", labelWidth, row)
		for col := range size {
			if col > 0 {
				b.WriteString(" |")
			}
			fmt.Fprintf(&b, "%-*s", widths[col], g[row*size+col].String())
		}
		b.WriteString(" |")
		rows[row] = b.String()
	}
	rule := strings.Repeat("-", len(rows[0]))

	var out strings.Builder
	out.WriteString(header.String() + "\n")
	out.WriteString(rule + "\n")
	for _, line := range rows {
		out.WriteString(line + "\n")
	}
	out.WriteString(rule + "\n")

	_, err := io.WriteString(w, out.String())
	return err
}

func String(g mines.Grid, size int) string {
	var b strings.Builder
	if err := Text(&b, g, size); err != nil {
		return err.Error()
	}
	return b.String()
}
