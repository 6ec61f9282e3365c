package dispatch

import (
	"fmt"

	"github.com/itsmostafa/ipycell/internal/mode"
	"github.com/itsmostafa/ipycell/internal/normalize"
)

// Kind is where a Code Unit came from
type Kind string

const (
	KindCell      Kind = "cell"
	KindSelection Kind = "selection"
)

// Transport names a configurable delivery mechanism
type Transport string

const (
	TransportPaste Transport = "paste"
	TransportLines Transport = "lines"
	TransportFile  Transport = "file"
)

// ParseTransport checks if the given transport string is valid
func ParseTransport(s string) (Transport, error) {
	switch Transport(s) {
	case TransportPaste, TransportLines, TransportFile:
		return Transport(s), nil
	default:
		return "", fmt.Errorf("unknown transport: %q (valid options: paste, lines, file)", s)
	}
}

// Set holds one configured instance of every strategy plus the transport
// choices made by configuration.
type Set struct {
	Paste *Paste
	// Lines types selections into IPython with no pacing
	Lines *Lines
	// DebugLines types into the debugger with pacing
	DebugLines *Lines
	// Run executes a temp file with %run
	Run *TempFile
	// Source executes a temp file with pdb's source
	Source *TempFile
	Direct Direct

	// CellTransport is used for cells in interactive mode
	CellTransport Transport
	// DebugTransport is used for multi-line code in debug mode (lines or file)
	DebugTransport Transport
}

// Plan is a chosen strategy and the exact Code Unit it should receive
type Plan struct {
	Strategy   Strategy
	Code       string
	Normalized bool
}

// Select picks the strategy for code. In debug mode a bare expression goes
// out directly and everything else is normalized first.
func (s *Set) Select(m mode.Mode, kind Kind, code string) (Plan, error) {
	plan, err := s.choose(m, kind, code)
	if err != nil {
		return Plan{}, err
	}
	if !configured(plan.Strategy) {
		return Plan{}, fmt.Errorf("no strategy configured for %s in %s mode", kind, m)
	}
	return plan, nil
}

func (s *Set) choose(m mode.Mode, kind Kind, code string) (Plan, error) {
	if m == mode.Debug {
		if IsSingleExpression(code) {
			return Plan{Strategy: s.Direct, Code: code}, nil
		}

		normalized := normalize.ForDebugger(code)
		switch s.DebugTransport {
		case "", TransportLines:
			return Plan{Strategy: s.DebugLines, Code: normalized, Normalized: true}, nil
		case TransportFile:
			return Plan{Strategy: s.Source, Code: normalized, Normalized: true}, nil
		default:
			return Plan{}, fmt.Errorf("transport %q is not available in debug mode", s.DebugTransport)
		}
	}

	if kind == KindSelection {
		return Plan{Strategy: s.Lines, Code: code}, nil
	}

	switch s.CellTransport {
	case "", TransportPaste:
		return Plan{Strategy: s.Paste, Code: code}, nil
	case TransportLines:
		return Plan{Strategy: s.Lines, Code: code}, nil
	case TransportFile:
		return Plan{Strategy: s.Run, Code: code}, nil
	default:
		return Plan{}, fmt.Errorf("unknown cell transport: %q", s.CellTransport)
	}
}

func configured(st Strategy) bool {
	switch v := st.(type) {
	case *Paste:
		return v != nil
	case *Lines:
		return v != nil
	case *TempFile:
		return v != nil
	}
	return st != nil
}
