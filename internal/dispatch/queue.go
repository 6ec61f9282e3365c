package dispatch

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/itsmostafa/ipycell/internal/logging"
	"github.com/itsmostafa/ipycell/internal/session"
)

// ErrQueueClosed is returned by Submit after Close
var ErrQueueClosed = errors.New("dispatch queue is closed")

// Ticket tracks one submitted job
type Ticket struct {
	ID   string
	done chan struct{}
	err  error
}

// Done is closed when the job has finished
func (t *Ticket) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the job finishes or ctx is done
func (t *Ticket) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Ticket) finish(err error) {
	t.err = err
	close(t.done)
}

type job struct {
	ctx    context.Context
	run    func(ctx context.Context) error
	ticket *Ticket
}

// worker runs the jobs of one terminal strictly in submission order
type worker struct {
	mu     sync.Mutex
	cond   *sync.Cond
	jobs   []*job
	closed bool
}

func newWorker() *worker {
	w := &worker{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *worker) push(j *job) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	w.jobs = append(w.jobs, j)
	w.cond.Signal()
	return true
}

// next blocks for the following job. Jobs queued before close still run.
func (w *worker) next() (*job, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for len(w.jobs) == 0 && !w.closed {
		w.cond.Wait()
	}
	if len(w.jobs) == 0 {
		return nil, false
	}
	j := w.jobs[0]
	w.jobs[0] = nil
	w.jobs = w.jobs[1:]
	return j, true
}

func (w *worker) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.cond.Broadcast()
}

// Queue serializes dispatches per terminal. A job for a terminal starts only
// after the previous job for that terminal has fully completed, including
// its pacing delays, so keystrokes from two executions never interleave.
// Jobs for different terminals run concurrently.
type Queue struct {
	mu      sync.Mutex
	workers map[string]*worker
	closed  bool
	wg      sync.WaitGroup
	log     *log.Logger
}

// NewQueue creates an empty queue
func NewQueue(logger *log.Logger) *Queue {
	return &Queue{
		workers: make(map[string]*worker),
		log:     logging.OrDiscard(logger),
	}
}

// Submit enqueues run for h and returns immediately
func (q *Queue) Submit(ctx context.Context, h session.Handle, run func(ctx context.Context) error) (*Ticket, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrQueueClosed
	}

	w, ok := q.workers[h.ID]
	if !ok {
		w = newWorker()
		q.workers[h.ID] = w
		q.wg.Add(1)
		go q.work(h, w)
	}

	t := &Ticket{ID: uuid.NewString(), done: make(chan struct{})}
	w.push(&job{ctx: ctx, run: run, ticket: t})
	q.log.Debug("Queued dispatch", "job", t.ID, "terminal", h.ID)
	return t, nil
}

// Close stops accepting jobs and waits for queued ones to finish
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	for _, w := range q.workers {
		w.close()
	}
	q.mu.Unlock()

	q.wg.Wait()
}

func (q *Queue) work(h session.Handle, w *worker) {
	defer q.wg.Done()
	for {
		j, ok := w.next()
		if !ok {
			return
		}
		q.log.Debug("Running dispatch", "job", j.ticket.ID, "terminal", h.ID)
		err := j.run(j.ctx)
		if err != nil {
			q.log.Warn("Dispatch failed", "job", j.ticket.ID, "terminal", h.ID, "err", err)
		}
		j.ticket.finish(err)
	}
}
