package agent

import "runtime"

// NoOp is a [Strategy] whose Idle is a complete no-op. Useful for tests
// and for agents driven by an invoker where the caller already controls
// pacing.
type NoOp struct{}

// Idle does nothing.
func (NoOp) Idle() {}

// Reset does nothing; NoOp carries no state.
func (NoOp) Reset() {}

// Alias returns "noop".
func (NoOp) Alias() string { return "noop" }

// Spin is a [Strategy] that busy-spins on every idle call: Idle is a
// no-op, so the owning worker loop immediately calls DoWork again. This
// offers the lowest possible wake latency at the cost of pinning a full
// core.
type Spin struct{}

// Idle does nothing; the caller's loop spins by calling DoWork again
// immediately.
func (Spin) Idle() {}

// Reset does nothing; Spin carries no state.
func (Spin) Reset() {}

// Alias returns "spin".
func (Spin) Alias() string { return "spin" }

// Yield is a [Strategy] that yields the processor to the OS/Go scheduler
// on every idle call, via [runtime.Gosched]. Cheaper on CPU than [Spin],
// at the cost of scheduler-dependent wake latency.
type Yield struct{}

// Idle calls runtime.Gosched.
func (Yield) Idle() { runtime.Gosched() }

// Reset does nothing; Yield carries no state.
func (Yield) Reset() {}

// Alias returns "yield".
func (Yield) Alias() string { return "yield" }
