package session

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Op is one terminal operation captured by a Recorder
type Op struct {
	Kind   string
	Handle Handle
	Text   string
	Enter  bool
}

func (o Op) String() string {
	switch o.Kind {
	case "send":
		if o.Enter {
			return fmt.Sprintf("send %s %q + Enter", o.Handle.ID, o.Text)
		}
		return fmt.Sprintf("send %s %q", o.Handle.ID, o.Text)
	default:
		return fmt.Sprintf("%s %s %q", o.Kind, o.Handle.ID, o.Handle.Name)
	}
}

// Recorder is an in-memory Terminal. It backs --dry-run and tests: every
// operation is kept in order and optionally echoed to Out.
type Recorder struct {
	mu        sync.Mutex
	terminals []Handle
	focused   string
	ops       []Op
	nextID    int

	// Out receives one line per operation when set
	Out io.Writer
}

// NewRecorder creates a recorder with the given open terminals
func NewRecorder(open ...Handle) *Recorder {
	return &Recorder{terminals: open, nextID: len(open) + 1}
}

// Focus marks the terminal with the given id as focused
func (r *Recorder) Focus(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focused = id
}

// Ops returns a copy of the recorded operations
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Op(nil), r.ops...)
}

// Sends returns only the send operations
func (r *Recorder) Sends() []Op {
	var sends []Op
	for _, op := range r.Ops() {
		if op.Kind == "send" {
			sends = append(sends, op)
		}
	}
	return sends
}

// Focused implements Terminal
func (r *Recorder) Focused(ctx context.Context) (Handle, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.terminals {
		if h.ID == r.focused {
			return h, true, nil
		}
	}
	return Handle{}, false, nil
}

// List implements Terminal
func (r *Recorder) List(ctx context.Context) ([]Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Handle(nil), r.terminals...), nil
}

// Create implements Terminal
func (r *Recorder) Create(ctx context.Context, label string) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := Handle{ID: fmt.Sprintf("@%d", r.nextID), Name: label}
	r.nextID++
	r.terminals = append(r.terminals, h)
	r.focused = h.ID
	r.record(Op{Kind: "create", Handle: h})
	return h, nil
}

// Show implements Terminal
func (r *Recorder) Show(ctx context.Context, h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.focused = h.ID
	r.record(Op{Kind: "show", Handle: h})
	return nil
}

// Send implements Terminal
func (r *Recorder) Send(ctx context.Context, h Handle, text string, enter bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record(Op{Kind: "send", Handle: h, Text: text, Enter: enter})
	return nil
}

func (r *Recorder) record(op Op) {
	r.ops = append(r.ops, op)
	if r.Out != nil {
		fmt.Fprintln(r.Out, op.String())
	}
}
