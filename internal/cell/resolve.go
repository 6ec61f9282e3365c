package cell

// Resolve returns the cell the cursor belongs to. When the cursor is parked
// on a marker line the cell starting at that line wins, so running from a
// header executes the cell below it rather than the one above.
func Resolve(doc Document, cursor Position, cells []Cell, marker string) (Cell, bool) {
	if cursor.Line < 0 || cursor.Line >= doc.LineCount() {
		return Cell{}, false
	}

	if IsMarker(doc.Lines[cursor.Line], marker) {
		for _, c := range cells {
			if c.Start == cursor.Line {
				return c, true
			}
		}
	}

	for _, c := range cells {
		if c.Contains(cursor.Line) {
			return c, true
		}
	}

	return Cell{}, false
}

// CurrentCell segments doc and resolves the cursor in one step
func CurrentCell(doc Document, cursor Position, marker string) (Cell, bool) {
	return Resolve(doc, cursor, Segment(doc.Lines, marker), marker)
}
