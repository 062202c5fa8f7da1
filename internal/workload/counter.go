// Package workload supplies a small family of worker.Execute routines
// used by the CLI and by the test suite to give a controllable worker
// something to do between breakpoints.
package workload

import (
	"time"

	"github.com/softiron/cworker/pkg/worker"
)

// Counter returns an Execute routine that ticks roughly every tick,
// counting the ticks it has performed. Every pauseEvery-th tick it
// calls SetPauseBreakpoint, and every stopEvery-th tick it calls
// SetStopBreakpoint; a zero value disables the corresponding
// breakpoint. This mirrors the teacher's worker loop, which makes its
// periodic opcode check on a regular cadence rather than on every
// single unit of work.
func Counter(tick time.Duration, pauseEvery, stopEvery int) func(*worker.Handle) error {
	return func(h *worker.Handle) error {
		for count := 1; ; count++ {
			time.Sleep(tick)

			if stopEvery > 0 && count%stopEvery == 0 {
				if err := h.SetStopBreakpoint(); err != nil {
					return err
				}
			}

			if pauseEvery > 0 && count%pauseEvery == 0 {
				h.SetPauseBreakpoint()
			}
		}
	}
}
