package dispatch

import (
	"context"
	"strings"

	"github.com/itsmostafa/ipycell/internal/session"
)

// blockKeywords open statements that cannot be evaluated as a bare expression
var blockKeywords = []string{"def ", "class ", "if ", "for ", "while "}

// IsSingleExpression reports whether code can go straight to the debugger's
// print-eval loop: one line, no '=' or ':', and not starting with a block
// keyword. Trailing line breaks are ignored. Blank code is not an
// expression because an empty line makes pdb repeat its last command.
func IsSingleExpression(code string) bool {
	code = strings.TrimRight(code, "\r\n")
	trimmed := strings.TrimSpace(code)

	if trimmed == "" || strings.Contains(code, "\n") {
		return false
	}
	if strings.ContainsAny(code, "=:") {
		return false
	}
	for _, kw := range blockKeywords {
		if strings.HasPrefix(trimmed, kw) {
			return false
		}
	}
	return true
}

// Direct sends the Code Unit as one command plus terminator
type Direct struct{}

// Name implements Strategy
func (Direct) Name() string {
	return "direct"
}

// Dispatch implements Strategy
func (Direct) Dispatch(ctx context.Context, s Sender, h session.Handle, code string) error {
	return s.Send(ctx, h, strings.TrimRight(code, "\r\n"), true)
}
