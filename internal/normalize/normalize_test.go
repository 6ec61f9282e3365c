package normalize

import (
	"strings"
	"testing"
)

func TestStripIndent(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "blank line shorter than minimum",
			in:   []string{"    x=1", "        y=2", "    "},
			want: []string{"x=1", "    y=2", "    "},
		},
		{
			name: "blank lines ignored for minimum",
			in:   []string{"", "      a", "  ", "    b"},
			want: []string{"", "  a", "  ", "b"},
		},
		{
			name: "tabs count as one column",
			in:   []string{"\t\tif x:", "\t\t\ty"},
			want: []string{"if x:", "\ty"},
		},
		{
			name: "no common indent",
			in:   []string{"a", "  b"},
			want: []string{"a", "  b"},
		},
		{
			name: "all blank",
			in:   []string{"  ", ""},
			want: []string{"  ", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripIndent(strings.Join(tt.in, "\n"))
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Errorf("StripIndent() = %q, want %q", got, want)
			}
		})
	}
}

func TestJoinContinuations(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "single continuation",
			in:   []string{"a = 1 + \\", "    2"},
			want: []string{"a = 1 +" + "    2"},
		},
		{
			name: "chain",
			in:   []string{"x = (1 +\\", "2 +\\", "3)", "y = x"},
			want: []string{"x = (1 +2 +3)", "y = x"},
		},
		{
			name: "dangling continuation",
			in:   []string{"a = 1", "b = 2 \\"},
			want: []string{"a = 1", "b = 2"},
		},
		{
			name: "bare backslash line",
			in:   []string{"\\", "z"},
			want: []string{"z"},
		},
		{
			name: "whitespace after backslash",
			in:   []string{"foo(\\  ", ")"},
			want: []string{"foo()"},
		},
		{
			name: "no continuations",
			in:   []string{"a", "b"},
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinContinuations(strings.Join(tt.in, "\n"))
			if want := strings.Join(tt.want, "\n"); got != want {
				t.Errorf("JoinContinuations() = %q, want %q", got, want)
			}
		})
	}
}

func TestJoinContinuationsDropsOneLine(t *testing.T) {
	in := "a = 1 + \\\n    2"
	got := JoinContinuations(in)
	if strings.Count(got, "\n") != strings.Count(in, "\n")-1 {
		t.Errorf("expected one fewer line, got %q", got)
	}
	if strings.Contains(got, `\`) {
		t.Errorf("backslash left in %q", got)
	}
}

func TestForDebugger(t *testing.T) {
	in := strings.Join([]string{
		"    total = a + \\",
		"        b",
		"",
		"    if total:",
		"        print(total)",
	}, "\n")
	want := strings.Join([]string{
		"total = a +    b",
		"",
		"if total:",
		"    print(total)",
	}, "\n")

	if got := ForDebugger(in); got != want {
		t.Errorf("ForDebugger() = %q, want %q", got, want)
	}
}

func TestForDebuggerIdempotent(t *testing.T) {
	inputs := []string{
		"x = 1\nif x:\n    print(x)",
		"",
		"print('a')\n\nprint('b')",
	}
	for _, in := range inputs {
		if got := ForDebugger(in); got != in {
			t.Errorf("ForDebugger(%q) = %q, want unchanged", in, got)
		}
		once := ForDebugger("  " + strings.ReplaceAll(in, "\n", "\n  "))
		if twice := ForDebugger(once); twice != once {
			t.Errorf("second pass changed %q to %q", once, twice)
		}
	}
}
