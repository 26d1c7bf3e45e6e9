package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured in terminal cells so wide runes line up.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			last := c == len(row)-1
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(runewidth.FillLeft(cell, widths[c]))
			} else if last {
				b.WriteString(cell)
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[c]))
			}
		}
		out[i] = b.String()
	}
	return out
}

// KeyValue formats label/value pairs as a two column table with the labels
// right aligned. Pairs with an empty value are skipped.
func KeyValue(pairs [][2]string) []string {
	rows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		if strings.TrimSpace(pair[1]) == "" {
			continue
		}
		rows = append(rows, []string{pair[0], pair[1]})
	}
	return Format(rows, []Alignment{AlignRight, AlignLeft})
}
