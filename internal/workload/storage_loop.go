package workload

import (
	"fmt"
	"time"

	"github.com/softiron/cworker/internal/generator"
	"github.com/softiron/cworker/internal/stats"
	"github.com/softiron/cworker/internal/storage"
	"github.com/softiron/cworker/pkg/worker"
)

// breakpointEvery is how many write/read pairs StorageLoop performs
// between each breakpoint check, matching the teacher's pattern of
// checking for a pending opcode on a cadence rather than after every
// single object.
const breakpointEvery = 8

// StorageLoop returns an Execute routine that repeatedly writes a
// generated object to conn, reads it back, and verifies it, reporting
// the duration of each operation on out. It keeps going until a
// breakpoint stops it; a storage failure is returned as a crash.
//
// keyPrefix namespaces the objects this loop writes so that several
// workers can share one storage.Connection without colliding.
func StorageLoop(conn storage.Connection, gen generator.Generator, objectSize uint64, keyPrefix string, out chan<- *stats.Stat) func(*worker.Handle) error {
	return func(h *worker.Handle) error {
		var objectIndex, cycle uint64
		buffer := make([]byte, objectSize)
		scratch := make([]byte, objectSize)

		for count := 0; ; count++ {
			key := fmt.Sprintf("%s-%d", keyPrefix, objectIndex)

			gen.Generate(objectSize, key, cycle, &buffer)
			if err := timeOp(conn.Target(), stats.OpWrite, out, func() error {
				return conn.PutObject(key, buffer)
			}); err != nil {
				return err
			}

			if err := timeOp(conn.Target(), stats.OpRead, out, func() error {
				got, err := conn.GetObject(key)
				if err != nil {
					return err
				}
				return gen.Verify(objectSize, key, &got, &scratch)
			}); err != nil {
				return err
			}

			objectIndex++
			if objectIndex%1000 == 0 {
				cycle++
			}

			if count > 0 && count%breakpointEvery == 0 {
				if err := h.SetStopBreakpoint(); err != nil {
					return err
				}
				h.SetPauseBreakpoint()
			}
		}
	}
}

// timeOp runs op, reports its duration and outcome on out as a
// stats.Stat, and returns op's error so the caller can decide whether
// a storage failure should crash the worker.
func timeOp(workerName string, kind stats.Op, out chan<- *stats.Stat, op func() error) error {
	start := time.Now()
	err := op()
	duration := time.Since(start)

	s := &stats.Stat{WorkerName: workerName, Op: kind, Duration: duration}
	if err != nil {
		s.Err = err.Error()
	}

	select {
	case out <- s:
	default:
		// A full stats channel means nobody is collecting; drop rather
		// than block the execution task on a slow consumer.
	}

	return err
}
