package agent

// Strategy is the pluggable policy for what a [Runner] or [Invoker]'s
// worker does between empty (unproductive) work ticks. A Strategy
// instance is owned by exactly one worker thread; it is not safe for
// concurrent use by multiple runners.
type Strategy interface {
	// Idle is called once per duty cycle when the preceding DoWork
	// returned zero (or negative) work. Implementations must not block
	// indefinitely without an external wake-up path.
	Idle()

	// Reset returns the strategy to its initial, "hot" state. It is
	// called automatically by [IdleTick] whenever a tick was productive,
	// so a strategy resumes minimum-latency behavior immediately after
	// work resumes.
	Reset()

	// Alias returns a short, stable label for the strategy, suitable for
	// logs and trace attributes (e.g. "backoff", "yield").
	Alias() string
}

// IdleTick is the standard entry point a [Runner] or [Invoker] uses after
// every DoWork call: if workCount is positive, it resets s to its hot
// state; otherwise it calls s.Idle(). Negative work counts are treated
// identically to zero.
func IdleTick(s Strategy, workCount int) {
	if normalizeWorkCount(workCount) > 0 {
		s.Reset()
		return
	}
	s.Idle()
}
