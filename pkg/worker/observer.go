package worker

// Observer receives synchronous notifications of a Worker's lifecycle
// transitions. Every hook runs on whichever goroutine drove the
// transition: a control-plane caller for Running/RunningWaitingToPause/
// RunningWaitingToStop/Restarted, or the execution task itself for
// Paused/Stopping/StoppedAfterStopRequest/StoppedNormally/Crashed.
// The exception: an event submitted while another goroutine's event is
// still being processed is queued, and its hooks run on that other
// goroutine while the submitter waits.
//
// Embed NopObserver to implement only the hooks you need.
type Observer interface {
	// Running fires on entry to the Running state, whether from Stopped,
	// Crashed (a fresh spawn) or Paused (a resume signal, no new task).
	Running()

	// RunningWaitingToPause fires on entry to RunningWaitingForPause.
	RunningWaitingToPause()

	// RunningWaitingToStop fires on entry to RunningWaitingForStop.
	RunningWaitingToStop()

	// Stopping fires on entry to Stopping, once the stop breakpoint has
	// been hit and the stop sentinel is unwinding the execution task.
	Stopping()

	// StoppedAfterStopRequest fires on entry to Stopped from Stopping.
	StoppedAfterStopRequest()

	// StoppedNormally fires on entry to Stopped from Running or a
	// waiting state, i.e. the execute function returned on its own
	// without ever reaching a stop breakpoint.
	StoppedNormally()

	// Paused fires on entry to Paused, on the execution task's own
	// goroutine, just before it blocks inside SetPauseBreakpoint.
	Paused()

	// Crashed fires on entry to Crashed, with the failure captured from
	// the execute function.
	Crashed(failure error)

	// Restarted fires on entry to Stopped from Crashed: the worker has
	// just been reset and is ready for Start.
	Restarted()
}

// NopObserver implements Observer with no-op methods.
type NopObserver struct{}

func (NopObserver) Running()                   {}
func (NopObserver) RunningWaitingToPause()     {}
func (NopObserver) RunningWaitingToStop()      {}
func (NopObserver) Stopping()                  {}
func (NopObserver) StoppedAfterStopRequest()   {}
func (NopObserver) StoppedNormally()           {}
func (NopObserver) Paused()                    {}
func (NopObserver) Crashed(failure error)      {}
func (NopObserver) Restarted()                 {}
