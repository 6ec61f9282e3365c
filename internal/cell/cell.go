// Package cell partitions a document into marker-delimited cells and maps a
// cursor back to the cell it sits in.
package cell

import (
	"fmt"
	"strings"
)

// Cell is a half-open line range [Start, End) within a Document
type Cell struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether line falls inside the cell
func (c Cell) Contains(line int) bool {
	return line >= c.Start && line < c.End
}

// Len returns the number of lines in the cell
func (c Cell) Len() int {
	return c.End - c.Start
}

func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d)", c.Start, c.End)
}

// IsMarker reports whether a line opens a new cell
func IsMarker(line, marker string) bool {
	if marker == "" {
		marker = DefaultMarker
	}
	return strings.HasPrefix(strings.TrimSpace(line), marker)
}

// Segment scans lines top to bottom and returns contiguous, ordered cells
// covering [0, len(lines)). Each marker line after the first line starts a
// new cell; code before the first marker forms its own cell.
func Segment(lines []string, marker string) []Cell {
	var cells []Cell
	cellStart := 0

	for i, line := range lines {
		if !IsMarker(line, marker) {
			continue
		}
		if i > cellStart {
			cells = append(cells, Cell{Start: cellStart, End: i})
		}
		cellStart = i
	}

	// Trailing cell runs to the end of the document
	if cellStart < len(lines) {
		cells = append(cells, Cell{Start: cellStart, End: len(lines)})
	}

	return cells
}
