package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner defines the interface for external command backends
type Runner interface {
	// Run executes name with args and returns its stdout.
	// A non-zero exit is reported as an *ExitError carrying stderr.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExitError reports a command that ran but failed
type ExitError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exec runs commands with os/exec
type Exec struct{}

// Run implements Runner
func (Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return out, &ExitError{
			Command: name + " " + strings.Join(args, " "),
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return out, nil
}
