package agent

// backoffState enumerates the four states of the [Backoff] state machine.
type backoffState int

const (
	stateNotIdle backoffState = iota
	stateSpinning
	stateYielding
	statePARKING
)

// defaultMaxSpins, defaultMaxYields, defaultMinParkNanos, and
// defaultMaxParkNanos are the Backoff strategy's default thresholds.
const (
	defaultMaxSpins     = 10
	defaultMaxYields    = 5
	defaultMinParkNanos = int64(1_000)
	defaultMaxParkNanos = int64(1_000_000)
)

// Backoff is a [Strategy] that progressively backs off from a busy spin,
// through yielding to the OS scheduler, to exponentially growing parked
// sleeps, resetting to the hot spinning state the moment work resumes.
//
// The mutable counters are sandwiched between two cache-line-sized pad
// regions so that a Backoff instance sharing a cache line with unrelated
// data cannot suffer, or cause, false sharing under concurrent access from
// neighboring allocations.
type Backoff struct {
	_ [64]byte

	state        backoffState
	spins        int64
	yields       int64
	parkPeriodNs int64

	maxSpins     int64
	maxYields    int64
	minParkNanos int64
	maxParkNanos int64

	_ [64]byte
}

// NewBackoff builds a [Backoff] strategy with the given thresholds. A
// zero value for any parameter is replaced with its documented default
// (10, 5, 1_000, 1_000_000).
func NewBackoff(maxSpins, maxYields, minParkNanos, maxParkNanos int64) *Backoff {
	if maxSpins <= 0 {
		maxSpins = defaultMaxSpins
	}
	if maxYields <= 0 {
		maxYields = defaultMaxYields
	}
	if minParkNanos <= 0 {
		minParkNanos = defaultMinParkNanos
	}
	if maxParkNanos <= 0 {
		maxParkNanos = defaultMaxParkNanos
	}
	return &Backoff{
		state:        stateNotIdle,
		maxSpins:     maxSpins,
		maxYields:    maxYields,
		minParkNanos: minParkNanos,
		maxParkNanos: maxParkNanos,
	}
}

// NewDefaultBackoff builds a [Backoff] strategy using the documented
// default thresholds (10, 5, 1_000, 1_000_000).
func NewDefaultBackoff() *Backoff {
	return NewBackoff(defaultMaxSpins, defaultMaxYields, defaultMinParkNanos, defaultMaxParkNanos)
}

// Idle advances the state machine by exactly one step.
func (b *Backoff) Idle() {
	switch b.state {
	case stateNotIdle:
		b.state = stateSpinning
		b.spins = 1
	case stateSpinning:
		b.spins++
		if b.spins > b.maxSpins {
			b.state = stateYielding
			b.yields = 0
		}
	case stateYielding:
		b.yields++
		if b.yields > b.maxYields {
			b.state = statePARKING
			b.parkPeriodNs = b.minParkNanos
		} else {
			osYield()
		}
	case statePARKING:
		park(b.parkPeriodNs)
		next := b.parkPeriodNs << 1
		if next > b.maxParkNanos || next < b.parkPeriodNs {
			next = b.maxParkNanos
		}
		b.parkPeriodNs = next
	}
}

// Reset drops the state machine back to NOT_IDLE with all counters
// cleared; the next Idle call re-enters SPINNING from spins:=1.
func (b *Backoff) Reset() {
	b.state = stateNotIdle
	b.spins = 0
	b.yields = 0
	b.parkPeriodNs = 0
}

// Alias returns "backoff".
func (b *Backoff) Alias() string { return "backoff" }

// State reports the current (state, spins, yields, parkPeriodNs) tuple,
// for tests and diagnostics.
func (b *Backoff) State() (state string, spins, yields, parkPeriodNs int64) {
	return b.stateName(), b.spins, b.yields, b.parkPeriodNs
}

func (b *Backoff) stateName() string {
	switch b.state {
	case stateNotIdle:
		return "NOT_IDLE"
	case stateSpinning:
		return "SPIN"
	case stateYielding:
		return "YIELD"
	case statePARKING:
		return "PARK"
	default:
		return "UNKNOWN"
	}
}
