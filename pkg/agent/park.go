//go:build !windows

package agent

import (
	"runtime"
	"time"
)

// park suspends the current goroutine for approximately nsec nanoseconds,
// without informing any cooperative scheduler the caller's agents might
// be using. On non-Windows platforms, time.Sleep already has nanosecond
// resolution at the syscall layer, so this is a direct pass-through.
// Short, spurious early resumption is acceptable; callers never rely on
// the sleep being exact.
func park(nsec int64) {
	if nsec <= 0 {
		return
	}
	time.Sleep(time.Duration(nsec))
}

// osYield yields the processor to the Go scheduler, analogous to
// Thread.yield(). It does not block the OS thread.
func osYield() {
	runtime.Gosched()
}
