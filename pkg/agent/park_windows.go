//go:build windows

package agent

import (
	"runtime"
	"time"
)

// park suspends the current goroutine for approximately nsec nanoseconds.
// Windows' sleep primitive only offers millisecond granularity, so nsec is
// rounded up to the nearest millisecond, with a floor of 1 ms, matching
// the documented park-primitive contract on this platform.
func park(nsec int64) {
	if nsec <= 0 {
		return
	}
	ms := (nsec + 999_999) / 1_000_000
	if ms < 1 {
		ms = 1
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// osYield yields the processor to the Go scheduler.
func osYield() {
	runtime.Gosched()
}
