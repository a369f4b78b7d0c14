package dictation

import (
	"context"
	"errors"
)

// ErrClosed is reported for sessions that end after Close.
var ErrClosed = errors.New("dictation closed")

func (o *Orchestrator) enqueue(ctx context.Context, s session) {
	o.queueMu.Lock()
	defer o.queueMu.Unlock()
	if o.closed {
		o.log.Warn("dropping session after close", "session", s.id)
		o.deps.Observer.Finished(o.outcome(s, StatusFailed, "", ErrClosed))
		return
	}
	// Pending sessions finish even if the listener context ends.
	o.jobs <- job{ctx: context.WithoutCancel(ctx), s: s}
}

func (o *Orchestrator) worker() {
	defer close(o.done)
	for j := range o.jobs {
		o.process(j.ctx, j.s)
	}
}

// Close waits for queued sessions to finish. It is a no-op in sync mode.
func (o *Orchestrator) Close() error {
	if !o.opts.Async {
		return nil
	}
	o.queueMu.Lock()
	if !o.closed {
		o.closed = true
		close(o.jobs)
	}
	o.queueMu.Unlock()
	<-o.done
	return nil
}
