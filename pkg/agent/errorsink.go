package agent

import (
	"context"
	"sync/atomic"
)

// ErrorHandler is called by an [ErrorSink] with every non-terminate
// failure observed by the [Runner] or [Invoker] it is attached to. It may
// recover by returning nil, propagate unchanged by returning err, wrap it,
// or return [Terminate] to end the run cleanly.
type ErrorHandler func(ctx context.Context, err error) error

// ErrorSink composes an optional shared error counter with an optional
// handler callback, both consulted before the failing agent's own
// [Agent.OnError]. Either or both may be left unset: a zero-value
// ErrorSink still counts nothing and forwards the error unchanged.
//
// [Terminate] is never counted and never handed to the handler: it is the
// agent's own orderly-shutdown signal, not a failure to report.
type ErrorSink struct {
	counter *atomic.Int64
	handler ErrorHandler
}

// NewErrorSink builds an ErrorSink with the given counter and handler,
// either of which may be nil.
func NewErrorSink(counter *atomic.Int64, handler ErrorHandler) *ErrorSink {
	return &ErrorSink{counter: counter, handler: handler}
}

// Count returns the current counter value, or 0 if no counter is
// attached.
func (s *ErrorSink) Count() int64 {
	if s == nil || s.counter == nil {
		return 0
	}
	return s.counter.Load()
}

// HandleError increments the counter (if attached) and invokes the
// handler (if attached), returning whatever the handler returns — or err
// unchanged if no handler is attached. [Terminate] passes through
// untouched, uncounted, and never reaches the handler.
func (s *ErrorSink) HandleError(ctx context.Context, err error) error {
	if err == nil || IsTerminate(err) {
		return err
	}
	if s == nil {
		return err
	}
	if s.counter != nil {
		s.counter.Add(1)
	}
	if s.handler != nil {
		return s.handler(ctx, err)
	}
	return err
}
