// Package serve exposes the executor to an editor over JSON lines on
// stdin and stdout.
package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/itsmostafa/ipycell/internal/executor"
	"github.com/itsmostafa/ipycell/internal/logging"
	"github.com/itsmostafa/ipycell/internal/mode"
)

// maxLineSize bounds one request; whole documents travel in a line
const maxLineSize = 16 * 1024 * 1024

// Server reads requests and writes one response per request. Execute
// responses are written once the dispatch has been delivered, so they can
// arrive out of order; clients match them by id.
type Server struct {
	exec *executor.Executor
	log  *log.Logger

	mu  sync.Mutex
	enc *json.Encoder
}

// New creates a server over exec
func New(exec *executor.Executor, logger *log.Logger) *Server {
	return &Server{exec: exec, log: logging.OrDiscard(logger)}
}

// Serve handles requests from r until EOF or ctx is done, then waits for
// outstanding executions to report.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.enc = json.NewEncoder(w)

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineSize)

	var wg sync.WaitGroup
	defer wg.Wait()

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Debug("Bad request", "err", err)
			s.write(Response{Error: fmt.Sprintf("invalid request: %v", err)})
			continue
		}
		s.handle(ctx, req, &wg)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed reading requests: %w", err)
	}
	return nil
}

func (s *Server) handle(ctx context.Context, req Request, wg *sync.WaitGroup) {
	s.log.Debug("Request", "command", req.Command, "id", string(req.ID))

	switch req.Command {
	case CommandStatus:
		s.write(s.status(req, s.exec.Mode().Current()))

	case CommandToggleMode:
		s.write(s.status(req, s.exec.ToggleMode()))

	case CommandExecuteCell, CommandExecuteSelection:
		var (
			sub *executor.Submission
			err error
		)
		doc := req.Document()
		if req.Command == CommandExecuteCell {
			sub, err = s.exec.ExecuteCell(ctx, doc, req.Cursor.cell())
		} else {
			sel := req.Selection
			if sel == nil {
				sel = &Selection{}
			}
			sub, err = s.exec.ExecuteSelection(ctx, doc, sel.Start.cell(), sel.End.cell())
		}
		if err != nil {
			s.write(s.failure(req, err))
			return
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := s.status(req, sub.Mode)
			resp.Strategy = sub.Strategy
			resp.Job = sub.Ticket.ID
			if err := sub.Wait(context.WithoutCancel(ctx)); err != nil {
				resp.OK = false
				resp.Error = executor.UserMessage(err)
			}
			s.write(resp)
		}()

	default:
		s.write(Response{ID: req.ID, Error: fmt.Sprintf("unknown command: %q", req.Command)})
	}
}

func (s *Server) status(req Request, m mode.Mode) Response {
	return Response{
		ID:      req.ID,
		OK:      true,
		Mode:    string(m),
		Label:   m.Label(),
		Tooltip: s.exec.Mode().Tooltip(m),
	}
}

func (s *Server) failure(req Request, err error) Response {
	s.log.Warn("Execution rejected", "command", req.Command, "err", err)
	resp := s.status(req, s.exec.Mode().Current())
	resp.OK = false
	resp.Error = executor.UserMessage(err)
	return resp
}

func (s *Server) write(resp Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(resp); err != nil {
		s.log.Error("Failed to write response", "err", err)
	}
}
