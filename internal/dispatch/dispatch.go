// Package dispatch implements the I/O dispatcher of spec §4.6: a single
// consumer goroutine draining a bounded command channel, so remote API
// calls never run concurrently with each other and never block the TUI's
// render loop.
package dispatch

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spotatui/spotatui/internal/core"
)

// queueDepth is the bounded channel size from §4.6; a command submitted
// past this depth blocks the submitter rather than growing unbounded.
const queueDepth = 32

// Handler performs the actual remote-API side effect for a routed
// command. Returning an error only logs; dispatch itself never retries.
type Handler func(ctx context.Context, cmd core.Command) error

// Dispatcher owns the bounded queue and its single consumer goroutine.
type Dispatcher struct {
	st      *core.State
	handler Handler
	log     *logrus.Entry
	queue   chan queuedCommand
	done    chan struct{}
}

type queuedCommand struct {
	id  string
	cmd core.Command
}

// New builds a Dispatcher. handler is invoked for every RemoteApi-routed
// command; st.IsLoading is toggled around each call under the state lock.
func New(st *core.State, handler Handler, log *logrus.Entry) *Dispatcher {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Dispatcher{
		st:      st,
		handler: handler,
		log:     log,
		queue:   make(chan queuedCommand, queueDepth),
		done:    make(chan struct{}),
	}
}

// Run drains the queue until ctx is cancelled. Intended to run as its
// own goroutine, started once at application startup.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)
	for {
		select {
		case <-ctx.Done():
			return
		case qc := <-d.queue:
			d.handle(ctx, qc)
		}
	}
}

// Submit enqueues cmd for remote execution, blocking if the queue is
// full. Callers on the render goroutine should not call Submit directly
// for interactive commands that went through internal/router's NoOp
// path — only RemoteApi-routed commands belong here.
func (d *Dispatcher) Submit(cmd core.Command) {
	id := uuid.NewString()
	d.queue <- queuedCommand{id: id, cmd: cmd}
}

func (d *Dispatcher) handle(ctx context.Context, qc queuedCommand) {
	entry := d.log.WithField("dispatch_id", qc.id).WithField("kind", qc.cmd.Kind)

	d.st.Lock()
	d.st.IsLoading = true
	d.st.Unlock()

	defer func() {
		d.st.Lock()
		d.st.IsLoading = false
		d.st.Unlock()
	}()

	if d.handler == nil {
		return
	}
	if err := d.handler(ctx, qc.cmd); err != nil {
		entry.WithError(err).Warn("dispatch command failed")
	}
}

// Wait blocks until Run has returned, for orderly shutdown.
func (d *Dispatcher) Wait() {
	<-d.done
}
