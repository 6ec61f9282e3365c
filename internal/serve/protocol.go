package serve

import (
	"encoding/json"
	"strings"

	"github.com/itsmostafa/ipycell/internal/cell"
)

// Commands understood by the server
const (
	CommandExecuteCell      = "executeCell"
	CommandExecuteSelection = "executeSelection"
	CommandToggleMode       = "toggleMode"
	CommandStatus           = "status"
)

// Request is one line of editor input
type Request struct {
	ID         json.RawMessage `json:"id,omitempty"`
	Command    string          `json:"command"`
	LanguageID string          `json:"languageId,omitempty"`
	// Lines takes precedence over Text
	Lines     []string   `json:"lines,omitempty"`
	Text      string     `json:"text,omitempty"`
	Cursor    *Position  `json:"cursor,omitempty"`
	Selection *Selection `json:"selection,omitempty"`
}

// Position is a zero-based line and column. Column counts Unicode code
// points; out-of-range positions are clamped to the document.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Selection is a range in the document
type Selection struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Response answers one Request
type Response struct {
	ID       json.RawMessage `json:"id,omitempty"`
	OK       bool            `json:"ok"`
	Error    string          `json:"error,omitempty"`
	Mode     string          `json:"mode,omitempty"`
	Label    string          `json:"label,omitempty"`
	Tooltip  string          `json:"tooltip,omitempty"`
	Strategy string          `json:"strategy,omitempty"`
	Job      string          `json:"job,omitempty"`
}

// Document builds the editor document carried by r
func (r Request) Document() cell.Document {
	if r.Lines != nil {
		lines := make([]string, len(r.Lines))
		for i, l := range r.Lines {
			lines[i] = strings.TrimSuffix(l, "\r")
		}
		return cell.Document{Lines: lines, LanguageID: r.LanguageID}
	}
	return cell.NewDocument(r.Text, r.LanguageID)
}

func (p *Position) cell() cell.Position {
	if p == nil {
		return cell.Position{}
	}
	return cell.Position{Line: p.Line, Column: p.Column}
}
