package worker

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentGoroutineID parses the numeric goroutine ID out of the calling
// goroutine's own stack trace header ("goroutine 123 [running]: ...").
//
// Go deliberately has no public API for goroutine identity; this is the
// standard workaround used where a thread-local sentinel is needed and a
// real OS thread identity is not available (Go goroutines are not bound
// to OS threads). It is only used to catch a programmer error -
// Handle.SetPauseBreakpoint/SetStopBreakpoint called from outside the
// execution task that owns the Handle - never for scheduling decisions.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	field := bytes.Fields(buf[:n])
	if len(field) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(field[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
