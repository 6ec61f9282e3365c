package cmd

import (
	"testing"

	"github.com/itsmostafa/ipycell/internal/cell"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    cell.Position
		wantErr bool
	}{
		{in: "1:1", want: cell.Position{Line: 0, Column: 0}},
		{in: "12:5", want: cell.Position{Line: 11, Column: 4}},
		{in: "3", want: cell.Position{Line: 2, Column: 0}},
		{in: "0:1", wantErr: true},
		{in: "2:0", wantErr: true},
		{in: "a:b", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePosition(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parsePosition(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePosition(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parsePosition(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLanguageOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "nb.py", want: "python"},
		{path: "gui.PYW", want: "python"},
		{path: "startup.ipy", want: "python"},
		{path: "main.go", want: "go"},
		{path: "README", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := languageOf(tt.path); got != tt.want {
				t.Errorf("languageOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
