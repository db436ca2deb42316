package agent

import "errors"

// terminationSignal is the concrete type behind [Terminate]. It carries no
// data; its identity (via errors.Is) is the entire signal.
type terminationSignal struct{}

func (terminationSignal) Error() string { return "agent: termination requested" }

// Terminate is the distinguished sentinel an [Agent], [ErrorHandler], or
// [Agent.OnError] returns to request an orderly shutdown of its owning
// [Runner] or [Invoker]. It is never counted by an [ErrorSink] and never
// handed to a handler or to OnError — it is the agent's own "quit" word,
// not a failure to report.
//
// Use errors.Is(err, agent.Terminate) to detect it; wrapping with
// fmt.Errorf("%w", agent.Terminate) preserves detection.
var Terminate error = terminationSignal{}

// IsTerminate reports whether err is, or wraps, [Terminate].
func IsTerminate(err error) bool {
	return errors.Is(err, Terminate)
}
