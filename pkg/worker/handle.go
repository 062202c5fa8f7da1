package worker

// Handle is passed to the user-supplied execute function and is the only
// way the execution task may interact with its owning Worker: setting
// breakpoints. It is bound to the single goroutine that called execute;
// calling its methods from any other goroutine is a programmer error
// (checkExecutionTask panics with ErrNotExecutionTask).
type Handle struct {
	w                  *Worker
	executionGoroutine uint64
}

// SetPauseBreakpoint submits PauseBreakpointEncountered to the worker's
// FSM (silently: it is legal for this to be a no-op, e.g. if no Pause was
// ever requested). If the resulting state is Paused, the calling
// goroutine blocks on the worker's condition variable until a Resume
// signals it, exactly once.
func (h *Handle) SetPauseBreakpoint() {
	h.checkExecutionTask()
	h.w.processBreakpointEvent(eventPauseBreakpointEncountered)

	h.w.mu.Lock()
	defer h.w.mu.Unlock()
	for h.w.fsm.CurrentState() == Paused {
		h.w.pauseCond.Wait()
	}
}

// SetStopBreakpoint submits StopBreakpointEncountered to the worker's
// FSM (silently). If the resulting state is Stopping, it returns
// ErrStopSentinel so that the caller can unwind through any cleanup of
// its own. The user's execute function must propagate a non-nil error
// returned here up to its own return (either immediately, or after doing
// cleanup) - both paths reach the execution task's terminal trampoline,
// which treats a returned ErrStopSentinel the same as a nil return: both
// submit Terminated rather than Crash.
func (h *Handle) SetStopBreakpoint() error {
	h.checkExecutionTask()
	h.w.processBreakpointEvent(eventStopBreakpointEncountered)

	if h.w.fsm.CurrentState() == Stopping {
		return ErrStopSentinel
	}
	return nil
}

// checkExecutionTask panics with ErrNotExecutionTask if the calling
// goroutine is not the one that is currently running this Handle's
// execute function.
func (h *Handle) checkExecutionTask() {
	if currentGoroutineID() != h.executionGoroutine {
		panic(ErrNotExecutionTask)
	}
}
