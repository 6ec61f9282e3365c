package cell

import (
	"reflect"
	"testing"
	"unicode/utf8"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []Cell
	}{
		{
			name:  "two marked cells",
			lines: []string{"#%%", "a=1", "#%%", "b=2", "c=3"},
			want:  []Cell{{0, 2}, {2, 5}},
		},
		{
			name:  "no markers",
			lines: []string{"a=1", "b=2", "c=3"},
			want:  []Cell{{0, 3}},
		},
		{
			name:  "code before first marker",
			lines: []string{"import os", "#%% setup", "x = 1"},
			want:  []Cell{{0, 1}, {1, 3}},
		},
		{
			name:  "indented marker",
			lines: []string{"#%%", "a=1", "   #%% second", "b=2"},
			want:  []Cell{{0, 2}, {2, 4}},
		},
		{
			name:  "consecutive markers",
			lines: []string{"#%%", "#%%", "x"},
			want:  []Cell{{0, 1}, {1, 3}},
		},
		{
			name:  "trailing marker",
			lines: []string{"#%%", "a=1", "#%%"},
			want:  []Cell{{0, 2}, {2, 3}},
		},
		{
			name:  "empty document",
			lines: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.lines, DefaultMarker)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Segment() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentCoversDocument(t *testing.T) {
	lines := []string{"x", "#%%", "a", "", "#%%", "#%%", "b", "  #%%", "c"}
	cells := Segment(lines, DefaultMarker)

	next := 0
	for _, c := range cells {
		if c.Start != next {
			t.Fatalf("cell %v starts at %d, want %d", c, c.Start, next)
		}
		if c.Len() <= 0 {
			t.Fatalf("cell %v is empty", c)
		}
		next = c.End
	}
	if next != len(lines) {
		t.Errorf("cells end at %d, want %d", next, len(lines))
	}
}

func TestSegmentCustomMarker(t *testing.T) {
	lines := []string{"# In[1]", "a", "# In[2]", "b"}
	got := Segment(lines, "# In[")
	want := []Cell{{0, 2}, {2, 4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segment() = %v, want %v", got, want)
	}
}

func TestResolve(t *testing.T) {
	doc := Document{Lines: []string{"#%%", "a=1", "#%%", "b=2", "c=3"}, LanguageID: LanguagePython}
	cells := Segment(doc.Lines, DefaultMarker)

	tests := []struct {
		name   string
		line   int
		want   Cell
		wantOK bool
	}{
		{name: "first marker", line: 0, want: Cell{0, 2}, wantOK: true},
		{name: "inside first", line: 1, want: Cell{0, 2}, wantOK: true},
		{name: "second marker picks following cell", line: 2, want: Cell{2, 5}, wantOK: true},
		{name: "last line", line: 4, want: Cell{2, 5}, wantOK: true},
		{name: "past end", line: 5, wantOK: false},
		{name: "negative", line: -1, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(doc, Position{Line: tt.line}, cells, DefaultMarker)
			if ok != tt.wantOK {
				t.Fatalf("Resolve() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveEmptyDocument(t *testing.T) {
	if _, ok := CurrentCell(Document{}, Position{}, DefaultMarker); ok {
		t.Error("expected no cell in empty document")
	}
}

func TestCellBody(t *testing.T) {
	doc := Document{Lines: []string{"#%%", "print(1)", "x = 2", "#%%", "print(x)"}}

	c, ok := CurrentCell(doc, Position{Line: 2}, DefaultMarker)
	if !ok {
		t.Fatal("expected a cell")
	}
	if c != (Cell{0, 3}) {
		t.Fatalf("cell = %v, want [0,3)", c)
	}
	if got, want := doc.CellBody(c, DefaultMarker), "print(1)\nx = 2"; got != want {
		t.Errorf("CellBody() = %q, want %q", got, want)
	}
}

func TestCellBodyWithoutLeadingMarker(t *testing.T) {
	doc := Document{Lines: []string{"import os", "x = 1"}}
	c, _ := CurrentCell(doc, Position{Line: 0}, DefaultMarker)

	if got, want := doc.CellBody(c, DefaultMarker), "import os\nx = 1"; got != want {
		t.Errorf("CellBody() = %q, want %q", got, want)
	}
}

func TestTextRangeRuneColumns(t *testing.T) {
	doc := Document{Lines: []string{"s = \"héllo\"", "π = 3"}}

	if got := doc.TextRange(Position{0, 5}, Position{0, 10}); got != "héllo" {
		t.Errorf("TextRange() = %q, want %q", got, "héllo")
	}
	if got := doc.TextRange(Position{0, 6}, Position{1, 1}); got != "éllo\"\nπ" {
		t.Errorf("TextRange() = %q, want %q", got, "éllo\"\nπ")
	}
	if got := doc.TextRange(Position{1, 0}, Position{1, 99}); !utf8.ValidString(got) || got != "π = 3" {
		t.Errorf("TextRange() = %q, want %q", got, "π = 3")
	}
}

func TestNewDocumentCRLF(t *testing.T) {
	doc := NewDocument("#%%\r\na = 1\r\n", LanguagePython)
	want := []string{"#%%", "a = 1", ""}
	if !reflect.DeepEqual(doc.Lines, want) {
		t.Errorf("Lines = %q, want %q", doc.Lines, want)
	}
}

func TestTextRange(t *testing.T) {
	doc := Document{Lines: []string{"alpha", "  beta = 2", "gamma"}}

	tests := []struct {
		name       string
		start, end Position
		want       string
	}{
		{name: "single line", start: Position{0, 1}, end: Position{0, 4}, want: "lph"},
		{name: "multi line", start: Position{0, 2}, end: Position{2, 3}, want: "pha\n  beta = 2\ngam"},
		{name: "whole lines", start: Position{1, 0}, end: Position{2, 0}, want: "  beta = 2\n"},
		{name: "reversed", start: Position{0, 4}, end: Position{0, 1}, want: "lph"},
		{name: "clamped", start: Position{1, 2}, end: Position{9, 99}, want: "beta = 2\ngamma"},
		{name: "empty", start: Position{1, 3}, end: Position{1, 3}, want: ""},
		{name: "both past the end", start: Position{3, 1}, end: Position{4, 0}, want: ""},
		{name: "negative line with long column", start: Position{-1, 5}, end: Position{0, 2}, want: "al"},
		{name: "reversed after clamping", start: Position{2, 99}, end: Position{2, 1}, want: "amma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.TextRange(tt.start, tt.end); got != tt.want {
				t.Errorf("TextRange() = %q, want %q", got, tt.want)
			}
		})
	}
}
