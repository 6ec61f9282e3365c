// Package normalize rewrites a Code Unit so a line-oriented debugger can read
// it one line at a time.
package normalize

import (
	"strings"
)

// ForDebugger strips common indentation and then joins backslash
// continuations. This is the pipeline applied to every multi-line Code Unit
// in debug mode.
func ForDebugger(code string) string {
	return JoinContinuations(StripIndent(code))
}

// StripIndent removes the indentation shared by all non-blank lines.
// Blank lines do not count toward the minimum and are returned untouched.
// Every whitespace character counts as one column.
func StripIndent(code string) string {
	lines := strings.Split(code, "\n")

	minIndent := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		indent := leadingWhitespace(line)
		if minIndent < 0 || indent < minIndent {
			minIndent = indent
		}
	}

	// All lines blank
	if minIndent <= 0 {
		return code
	}

	for i, line := range lines {
		if isBlank(line) {
			continue
		}
		lines[i] = line[minIndent:]
	}
	return strings.Join(lines, "\n")
}

// JoinContinuations merges each line ending in a backslash with the line
// after it. The backslash and any whitespace before it are removed and no
// separator is inserted. A continuation on the last line is emitted with
// its backslash stripped.
func JoinContinuations(code string) string {
	lines := strings.Split(code, "\n")
	out := make([]string, 0, len(lines))

	var current strings.Builder
	joining := false

	for _, line := range lines {
		if strings.HasSuffix(strings.TrimSpace(line), `\`) {
			head := line[:strings.LastIndex(line, `\`)]
			current.WriteString(strings.TrimRightFunc(head, isSpace))
			joining = true
			continue
		}
		if joining {
			current.WriteString(line)
			out = append(out, current.String())
			current.Reset()
			joining = false
			continue
		}
		out = append(out, line)
	}

	// Dangling continuation with nothing left to join
	if joining {
		out = append(out, current.String())
	}

	return strings.Join(out, "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func leadingWhitespace(line string) int {
	return len(line) - len(strings.TrimLeftFunc(line, isSpace))
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}
