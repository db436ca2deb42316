package agent

import (
	"time"

	sserr "github.com/kestrelrt/agentrt/pkg/errors"
)

// maxSleepDuration is the upper bound (exclusive) accepted by
// [NewSleepNanos]. A duration this long or longer almost always means the
// caller meant milliseconds or seconds and passed the wrong unit, so it is
// rejected rather than silently parking a worker for a full second or
// more between ticks.
const maxSleepDuration = time.Second

// SleepNanos is a [Strategy] that sleeps a fixed duration, specified in
// nanoseconds, on every idle call. Unlike [Backoff], it does not
// distinguish how long the worker has been idle: every unproductive tick
// sleeps the same amount.
type SleepNanos struct {
	d time.Duration
}

// NewSleepNanos builds a [SleepNanos] strategy that sleeps nanos
// nanoseconds per idle call. It rejects nanos >= 1 second with a
// precondition error, and negative nanos with the same.
func NewSleepNanos(nanos int64) (*SleepNanos, error) {
	if nanos < 0 {
		return nil, sserr.Preconditionf("agent: sleep duration must be non-negative, got %d ns", nanos)
	}
	d := time.Duration(nanos)
	if d >= maxSleepDuration {
		return nil, sserr.Preconditionf("agent: sleep duration must be less than %s, got %s", maxSleepDuration, d)
	}
	return &SleepNanos{d: d}, nil
}

// Idle sleeps the configured duration.
func (s *SleepNanos) Idle() { time.Sleep(s.d) }

// Reset does nothing; SleepNanos carries no accumulated state.
func (s *SleepNanos) Reset() {}

// Alias returns "sleep-ns".
func (s *SleepNanos) Alias() string { return "sleep-ns" }

// SleepMillis is a [Strategy] that sleeps a fixed duration, specified in
// milliseconds, on every idle call. It has no upper-bound restriction:
// callers who genuinely want multi-second idle sleeps use this instead of
// [SleepNanos].
type SleepMillis struct {
	d time.Duration
}

// NewSleepMillis builds a [SleepMillis] strategy that sleeps millis
// milliseconds per idle call. It rejects negative millis.
func NewSleepMillis(millis int64) (*SleepMillis, error) {
	if millis < 0 {
		return nil, sserr.Preconditionf("agent: sleep duration must be non-negative, got %d ms", millis)
	}
	return &SleepMillis{d: time.Duration(millis) * time.Millisecond}, nil
}

// Idle sleeps the configured duration.
func (s *SleepMillis) Idle() { time.Sleep(s.d) }

// Reset does nothing; SleepMillis carries no accumulated state.
func (s *SleepMillis) Reset() {}

// Alias returns "sleep-ms".
func (s *SleepMillis) Alias() string { return "sleep-ms" }
