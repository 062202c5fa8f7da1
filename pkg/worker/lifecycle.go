package worker

import (
	"errors"

	"github.com/softiron/cworker/pkg/fsm"
)

// lifecycleListener is the single internal fsm.Listener a Worker attaches
// to its own FSM at construction time. It translates every transition
// into the worker effect spec.md §4.2 describes: spawning the execution
// task, signalling the pause condition variable, capturing a crash
// failure, and firing the matching Observer hook.
type lifecycleListener struct {
	fsm.NopListener
	w *Worker
}

func (l *lifecycleListener) StateChanged(from fsm.State, event fsm.Event, to fsm.State) {
	w := l.w

	switch to {
	case Running:
		switch from {
		case Stopped, Crashed:
			// A fresh execution task needs spawning.
			w.spawn()
		case Paused:
			// No new task: release the one already blocked in
			// SetPauseBreakpoint.
			w.mu.Lock()
			w.pauseCond.Broadcast()
			w.mu.Unlock()
		default:
			// from RunningWaitingForStop or RunningWaitingForPause: the
			// existing task was never stopped, so there is nothing to
			// spawn or signal - the pending request is simply rescinded.
		}
		w.forEachObserver(func(o Observer) { o.Running() })

	case RunningWaitingForPause:
		w.forEachObserver(func(o Observer) { o.RunningWaitingToPause() })

	case RunningWaitingForStop:
		w.forEachObserver(func(o Observer) { o.RunningWaitingToStop() })

	case Stopping:
		w.forEachObserver(func(o Observer) { o.Stopping() })

	case Paused:
		w.forEachObserver(func(o Observer) { o.Paused() })

	case Crashed:
		failure := w.LastCrashFailure()
		w.forEachObserver(func(o Observer) { o.Crashed(failure) })

	case Stopped:
		switch from {
		case Stopping:
			w.forEachObserver(func(o Observer) { o.StoppedAfterStopRequest() })
		case Crashed:
			w.lastCrashMu.Lock()
			w.lastCrash = nil
			w.lastCrashMu.Unlock()
			w.forEachObserver(func(o Observer) { o.Restarted() })
		default:
			w.forEachObserver(func(o Observer) { o.StoppedNormally() })
		}
	}
}

// spawn starts the execution task goroutine. It records the goroutine's
// own id (via currentGoroutineID, read from inside the goroutine itself)
// so that Handle's breakpoint methods can verify their caller.
func (w *Worker) spawn() {
	go func() {
		id := currentGoroutineID()

		w.mu.Lock()
		w.taskID = id
		w.mu.Unlock()

		handle := &Handle{w: w, executionGoroutine: id}

		// A panic raised by Handle.checkExecutionTask (ErrNotExecutionTask)
		// indicates a bug in the user's own code - a breakpoint called
		// from a goroutine other than this one - and is deliberately not
		// recovered here: it propagates and crashes the goroutine, as an
		// unrecovered programmer error should.
		err := w.execute(handle)

		w.mu.Lock()
		w.taskID = 0
		w.mu.Unlock()

		switch {
		case err == nil, errors.Is(err, ErrStopSentinel):
			w.fsm.ProcessEventSilent(eventTerminated)
		default:
			w.lastCrashMu.Lock()
			w.lastCrash = err
			w.lastCrashMu.Unlock()
			w.fsm.ProcessEventSilent(eventCrash)
		}
	}()
}
