package agent

import "sync/atomic"

// ControllableMode enumerates the modes a [Controllable] strategy's
// indicator may hold.
type ControllableMode int32

const (
	// ModeNotControlled falls through to parking, identically to
	// [ModePark]. It is the zero value, so a freshly allocated indicator
	// defaults to the parking behavior rather than silently spinning.
	ModeNotControlled ControllableMode = iota
	// ModeNoOp does nothing on idle.
	ModeNoOp
	// ModeBusySpin busy-spins on idle.
	ModeBusySpin
	// ModeYield yields to the OS scheduler on idle.
	ModeYield
	// ModePark parks for a fixed 1 microsecond period on idle.
	ModePark
)

// controllableParkNanos is the fixed park period used by ModePark and
// ModeNotControlled.
const controllableParkNanos = 1_000

// ControllableIndicator is the externally-mutable mode cell a
// [Controllable] strategy reads on every idle call. It is safe to share
// between the worker goroutine and a supervisor that adjusts behavior
// without synchronizing directly with the worker: writes use release
// semantics and reads use acquire semantics via [atomic.Int32].
type ControllableIndicator struct {
	mode atomic.Int32
}

// NewControllableIndicator builds an indicator initialized to
// [ModeNotControlled].
func NewControllableIndicator() *ControllableIndicator {
	return &ControllableIndicator{}
}

// Set stores mode for the next idle call to observe.
func (c *ControllableIndicator) Set(mode ControllableMode) {
	c.mode.Store(int32(mode))
}

// Get returns the currently stored mode.
func (c *ControllableIndicator) Get() ControllableMode {
	return ControllableMode(c.mode.Load())
}

// Controllable is a [Strategy] that, on every idle call, reads a shared
// [ControllableIndicator] and dispatches to the behavior named by its
// current mode. This decouples the decision (held externally, e.g. by a
// supervisor task) from the worker thread executing it: the supervisor
// never needs to synchronize with the worker beyond the indicator's
// atomic store.
type Controllable struct {
	indicator *ControllableIndicator
}

// NewControllable builds a Controllable strategy reading indicator.
func NewControllable(indicator *ControllableIndicator) *Controllable {
	return &Controllable{indicator: indicator}
}

// Idle dispatches according to the indicator's current mode.
func (c *Controllable) Idle() {
	switch c.indicator.Get() {
	case ModeNoOp:
		return
	case ModeBusySpin:
		return
	case ModeYield:
		osYield()
	case ModePark, ModeNotControlled:
		park(controllableParkNanos)
	default:
		park(controllableParkNanos)
	}
}

// Reset does nothing; Controllable's behavior is entirely driven by the
// indicator, which is owned externally.
func (c *Controllable) Reset() {}

// Alias returns "controllable".
func (c *Controllable) Alias() string { return "controllable" }
