// Package agent implements a small duty-cycle concurrency runtime: a
// cooperative, single-threaded lifecycle (start, repeated work ticks,
// close) driven either on a dedicated OS thread by a [Runner] or by an
// external caller's own loop via an [Invoker]. It is a Go port of the
// Agrona-style "agent" pattern.
//
// # Agents
//
// Callers implement the [Agent] interface for their workload. [Base] may
// be embedded to pick up no-op [Base.OnStart], [Base.OnClose], and
// rethrowing [Base.OnError] defaults, leaving only [Agent.Name] and
// [Agent.DoWork] to implement.
//
// # Idle strategies
//
// Between empty work ticks, a [Strategy] decides what the worker does:
// nothing ([NoOp]), spin ([Spin]), yield to the OS scheduler ([Yield]),
// sleep a fixed duration ([SleepNanos]/[SleepMillis]), progressively back
// off from spin through yield to exponential parking ([Backoff]), or
// consult an externally-mutable mode indicator ([Controllable]).
//
// # Composition
//
// [Composite] runs a fixed, ordered set of sub-agents as a single agent
// on one thread. [DynamicComposite] additionally allows single-slot
// membership changes ([DynamicComposite.TryAdd], [DynamicComposite.TryRemove])
// applied on the worker thread between ticks.
//
// # Running an agent
//
// [NewRunner] wraps an agent and a strategy, spawning a dedicated,
// OS-thread-pinned goroutine that runs the full lifecycle. [NewInvoker]
// provides the identical lifecycle semantics without an owned thread,
// for embedding inside an existing event loop.
//
// # Errors
//
// Failures from lifecycle methods are routed through an optional
// [ErrorSink] (error counter plus handler callback) before reaching the
// agent's own [Agent.OnError]. An agent (or the handler, or OnError) may
// return [Terminate] from any lifecycle method to request a clean,
// unreported shutdown — it is the agent's "quit" word, never counted or
// handed to a handler.
package agent
