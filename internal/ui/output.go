// Package ui renders user-facing output: the mode badge, notifications and
// the cell listing.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsmostafa/ipycell/internal/cell"
	"github.com/itsmostafa/ipycell/internal/mode"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error notifications
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	// interactiveBadgeStyle for the IPython mode indicator
	interactiveBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("33")).
				Padding(0, 1)

	// debugBadgeStyle for the PDB mode indicator
	debugBadgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)

	// boxStyle for the cell listing
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)
)

// FormatBadge renders the mode indicator
func FormatBadge(m mode.Mode) string {
	if m == mode.Debug {
		return debugBadgeStyle.Render(m.Label())
	}
	return interactiveBadgeStyle.Render(m.Label())
}

// StatusLine is a mode.Indicator printing the badge and tooltip to a writer
type StatusLine struct {
	mu sync.Mutex
	w  io.Writer

	label   string
	tooltip string
}

// NewStatusLine creates an indicator writing to w. A nil writer only keeps
// the latest state.
func NewStatusLine(w io.Writer) *StatusLine {
	return &StatusLine{w: w}
}

// Update implements mode.Indicator
func (s *StatusLine) Update(label, tooltip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.label, s.tooltip = label, tooltip
	if s.w == nil {
		return
	}

	m := mode.Interactive
	if label == mode.Debug.Label() {
		m = mode.Debug
	}
	fmt.Fprintf(s.w, "%s %s\n", FormatBadge(m), dimStyle.Render(tooltip))
}

// State returns the last label and tooltip shown
func (s *StatusLine) State() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.label, s.tooltip
}

// Notifier shows transient user-facing messages
type Notifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewNotifier creates a notifier writing to w
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// Error shows an error message
func (n *Notifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", errorStyle.Render("✗"), msg)
}

// Info shows a success message
func (n *Notifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", successStyle.Render("✓"), msg)
}

// FormatCells renders the segmentation of doc, one row per cell
func FormatCells(w io.Writer, doc cell.Document, cells []cell.Cell, marker string) {
	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("%d cells", len(cells))))

	for i, c := range cells {
		header := "(no marker)"
		if first := doc.Lines[c.Start]; cell.IsMarker(first, marker) {
			header = strings.TrimSpace(first)
		}
		rows = append(rows, fmt.Sprintf("%s %s %s %s",
			dimStyle.Render(fmt.Sprintf("%2d", i+1)),
			successStyle.Render(fmt.Sprintf("lines %d-%d", c.Start+1, c.End)),
			dimStyle.Render(fmt.Sprintf("(%d)", c.Len())),
			header,
		))
	}

	fmt.Fprintln(w, boxStyle.Render(strings.Join(rows, "\n")))
}

// FormatCode writes the Code Unit framed the way the diagnostic channel shows it
func FormatCode(w io.Writer, code string) {
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("Code to execute (%d chars):", len(code))))
	fmt.Fprintln(w, dimStyle.Render("---CODE START---"))
	fmt.Fprintln(w, code)
	fmt.Fprintln(w, dimStyle.Render("---CODE END---"))
}
