package agent

import "context"

// Agent is a cooperative, single-threaded unit of work driven by a
// [Runner] or [Invoker] through the lifecycle:
//
//	OnStart (once) -> DoWork (repeated) -> OnClose (once)
//
// All methods are called from a single goroutine for the lifetime of one
// run; implementations do not need their own internal synchronization for
// state that is only touched from these callbacks. Embed [Base] to get
// no-op defaults for OnStart, OnClose, and OnError.
type Agent interface {
	// Name returns a short, stable identifier for the agent. It must be
	// cheap to call: it is used for identification in composite names and
	// in log/trace attributes, potentially on every tick.
	Name() string

	// OnStart is called exactly once, before the first DoWork call. If it
	// returns an error, DoWork is never called but OnClose still runs.
	// Returning [Terminate] requests a clean shutdown before any work is
	// attempted.
	OnStart(ctx context.Context) error

	// DoWork advances one unit of work and returns the approximate number
	// of items processed. A return value of 0 means the tick was
	// unproductive; the caller's idle strategy is consulted in response.
	// Negative values are treated as 0 by the driving Runner/Invoker.
	// Returning [Terminate] ends the run cleanly after this tick.
	DoWork(ctx context.Context) (int, error)

	// OnClose is called exactly once, iff OnStart was invoked, regardless
	// of whether OnStart or any DoWork call failed. Its own failures are
	// routed through the error sink but never prevent the runner/invoker
	// from reaching the closed state.
	OnClose(ctx context.Context) error

	// OnError is invoked after a tick fails and after the optional error
	// sink's counter/handler have run. The default ([Base.OnError])
	// rethrows the error unchanged so unhandled failures are visible.
	// Implementations may recover by returning nil, or return [Terminate]
	// to end the run cleanly.
	OnError(ctx context.Context, err error) error
}

// Base provides no-op [Agent] lifecycle defaults. Embed it in a concrete
// agent type to implement only [Agent.Name] and [Agent.DoWork]:
//
//	type Counter struct {
//	    agent.Base
//	    n int
//	}
//
//	func (c *Counter) Name() string { return "counter" }
//
//	func (c *Counter) DoWork(ctx context.Context) (int, error) {
//	    c.n++
//	    if c.n >= 10 {
//	        return 1, agent.Terminate
//	    }
//	    return 1, nil
//	}
type Base struct{}

// OnStart is a no-op, returning nil unconditionally.
func (Base) OnStart(context.Context) error { return nil }

// OnClose is a no-op, returning nil unconditionally.
func (Base) OnClose(context.Context) error { return nil }

// OnError rethrows err unchanged, so an unhandled failure visibly
// propagates out of the owning Runner/Invoker's error sink instead of
// being silently swallowed.
func (Base) OnError(_ context.Context, err error) error { return err }

// normalizeWorkCount clamps a negative work count to zero, per the
// contract that negative values are never treated as productive.
func normalizeWorkCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
