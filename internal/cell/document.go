package cell

import (
	"strings"
	"unicode/utf8"
)

// DefaultMarker opens a new cell when a trimmed line starts with it
const DefaultMarker = "#%%"

// LanguagePython is the language tag every execution requires
const LanguagePython = "python"

// Position is a zero-based line/column pair within a Document. Column
// counts runes, not bytes.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Before reports whether p comes strictly before o
func (p Position) Before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Document is a read-only snapshot of an editor buffer
type Document struct {
	Lines      []string
	LanguageID string
}

// NewDocument splits text into lines. A trailing "\r" is dropped from each
// line so CRLF files segment the same way as LF files.
func NewDocument(text, languageID string) Document {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return Document{Lines: lines, LanguageID: languageID}
}

// LineCount returns the number of lines in the document
func (d Document) LineCount() int {
	return len(d.Lines)
}

// Text returns the lines of c joined with "\n"
func (d Document) Text(c Cell) string {
	start, end := d.clampRange(c.Start, c.End)
	return strings.Join(d.Lines[start:end], "\n")
}

// CellBody returns the Code Unit for c. The first line is dropped only when
// it is a marker line, so a leading cell without a delimiter runs in full.
func (d Document) CellBody(c Cell, marker string) string {
	start, end := d.clampRange(c.Start, c.End)
	if start < end && IsMarker(d.Lines[start], marker) {
		start++
	}
	return strings.Join(d.Lines[start:end], "\n")
}

// TextRange returns the text between two positions, start inclusive and end
// exclusive. Columns count runes. Positions are clamped to the document, and
// reversed positions are swapped so a backwards selection yields the same
// text.
func (d Document) TextRange(start, end Position) string {
	if len(d.Lines) == 0 {
		return ""
	}
	start = d.clampPosition(start)
	end = d.clampPosition(end)
	if end.Before(start) {
		start, end = end, start
	}

	first := d.Lines[start.Line]
	last := d.Lines[end.Line]
	from := byteOffset(first, start.Column)
	to := byteOffset(last, end.Column)

	if start.Line == end.Line {
		return first[from:to]
	}

	var b strings.Builder
	b.WriteString(first[from:])
	for i := start.Line + 1; i < end.Line; i++ {
		b.WriteString("\n")
		b.WriteString(d.Lines[i])
	}
	b.WriteString("\n")
	b.WriteString(last[:to])
	return b.String()
}

func (d Document) clampRange(start, end int) (int, int) {
	start = max(start, 0)
	end = min(end, len(d.Lines))
	if start > end {
		start = end
	}
	return start, end
}

// clampPosition keeps p inside the document. A line before the first maps
// to the document start and a line past the last to the document end.
func (d Document) clampPosition(p Position) Position {
	switch last := len(d.Lines) - 1; {
	case p.Line < 0:
		return Position{}
	case p.Line > last:
		return Position{Line: last, Column: utf8.RuneCountInString(d.Lines[last])}
	}
	p.Column = min(max(p.Column, 0), utf8.RuneCountInString(d.Lines[p.Line]))
	return p
}

// byteOffset converts a rune column on line to a byte offset
func byteOffset(line string, column int) int {
	for i := range line {
		if column == 0 {
			return i
		}
		column--
	}
	return len(line)
}
