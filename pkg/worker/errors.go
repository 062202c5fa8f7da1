package worker

import (
	"errors"
	"fmt"

	"github.com/softiron/cworker/pkg/fsm"
)

// OperationNotAllowedError is returned by a control verb (Start, Stop,
// Pause, Resume, Restart) when the worker's current state has no
// transition for the requested event. The worker's state is unchanged.
type OperationNotAllowedError struct {
	WorkerName string
	State      fsm.State
	operation  string
}

func (e *OperationNotAllowedError) Error() string {
	name := e.WorkerName
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("worker %q: %s is not allowed in state %s", name, e.operation, e.State)
}

// ErrStopSentinel is raised by (*Handle).SetStopBreakpoint when the
// worker is in RunningWaitingForStop, so that a stack unwind through any
// user cleanup reaches the execution task's terminal trampoline. It must
// never surface to an external caller: the trampoline recovers it (via
// errors.Is) and submits Terminated.
var ErrStopSentinel = errors.New("worker: stop requested")

// ErrNotExecutionTask is a programmer error raised when a breakpoint
// method is called from a goroutine other than the worker's own
// execution task.
var ErrNotExecutionTask = errors.New("worker: breakpoint called from outside the execution task")

// ErrNilExecute is a programmer error raised by New when the supplied
// execute function is nil.
var ErrNilExecute = errors.New("worker: execute function must not be nil")

// ErrNilListener is a programmer error raised by AddListener when passed
// a nil observer.
var ErrNilListener = errors.New("worker: AddListener called with nil observer")
