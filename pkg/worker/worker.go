// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

// Package worker implements a cooperative controllable worker: a
// long-running unit of user-supplied work that external callers can
// start, pause, resume, stop, and restart through breakpoints the work
// itself declares at safe points, rather than through preemptive thread
// interruption.
//
// The worker is built on top of pkg/fsm: a single fsm.FSM instance with
// states/events/transitions fixed by this package models the worker's
// lifecycle, and an internal fsm.Listener translates every transition
// into the corresponding worker effect (spawning the execution task,
// signalling pause/resume, capturing a crash, firing Observer hooks).
package worker

import (
	"sync"

	"github.com/softiron/cworker/pkg/fsm"
)

// Execute is the user-supplied work routine run by the execution task
// between Start and termination. It should call h.SetPauseBreakpoint()
// and h.SetStopBreakpoint() at safe points; the contract around the
// stop breakpoint's returned error is documented on SetStopBreakpoint.
type Execute func(h *Handle) error

// Worker wraps a single fsm.FSM whose states model the worker lifecycle.
// All control and query methods are safe for concurrent use; at most one
// execution task is alive at a time.
type Worker struct {
	name    string
	execute Execute

	fsm *fsm.FSM

	mu        sync.Mutex // guards pauseCond's condition and taskID
	pauseCond *sync.Cond
	taskID    uint64 // the execution goroutine's id, 0 when none is alive

	observersMu sync.Mutex
	observers   []Observer

	lastCrashMu sync.Mutex
	lastCrash   error
}

// New creates a Worker named name (empty is fine) in the Stopped state,
// wrapping execute as its execution task's body. It panics if execute is
// nil - a construction-time programmer error, not a runtime condition.
func New(name string, execute Execute) *Worker {
	if execute == nil {
		panic(ErrNilExecute)
	}

	w := &Worker{
		name:    name,
		execute: execute,
	}
	w.pauseCond = sync.NewCond(&w.mu)
	w.fsm = buildTransitions().Create(Stopped)
	w.fsm.AddListener(&lifecycleListener{w: w})
	return w
}

// Name returns the worker's name, or "" if none was given.
func (w *Worker) Name() string {
	return w.name
}

// CurrentState returns the worker's current lifecycle state.
func (w *Worker) CurrentState() fsm.State {
	return w.fsm.CurrentState()
}

// LastCrashFailure returns the failure captured the last time the worker
// entered Crashed, or nil if it has never crashed, or if it has since
// left Crashed via Restart.
func (w *Worker) LastCrashFailure() error {
	w.lastCrashMu.Lock()
	defer w.lastCrashMu.Unlock()
	return w.lastCrash
}

// State predicates, one per lifecycle state.
func (w *Worker) IsStopped() bool                { return w.CurrentState() == Stopped }
func (w *Worker) IsRunning() bool                { return w.CurrentState() == Running }
func (w *Worker) IsRunningWaitingForPause() bool { return w.CurrentState() == RunningWaitingForPause }
func (w *Worker) IsRunningWaitingForStop() bool  { return w.CurrentState() == RunningWaitingForStop }
func (w *Worker) IsStopping() bool               { return w.CurrentState() == Stopping }
func (w *Worker) IsPaused() bool                 { return w.CurrentState() == Paused }
func (w *Worker) IsCrashed() bool                { return w.CurrentState() == Crashed }

// ID returns the execution task's goroutine identifier while it is
// alive, or (0, false) when no task is running.
func (w *Worker) ID() (id uint64, alive bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.taskID, w.taskID != 0
}

// AddListener registers o to receive this worker's lifecycle
// notifications. It panics with ErrNilListener if o is nil.
func (w *Worker) AddListener(o Observer) {
	if o == nil {
		panic(ErrNilListener)
	}
	w.observersMu.Lock()
	defer w.observersMu.Unlock()
	w.observers = append(w.observers, o)
}

// RemoveListener unregisters o. It is a no-op if o was never registered.
func (w *Worker) RemoveListener(o Observer) {
	w.observersMu.Lock()
	defer w.observersMu.Unlock()
	for i, existing := range w.observers {
		if existing == o {
			w.observers = append(w.observers[:i], w.observers[i+1:]...)
			return
		}
	}
}

func (w *Worker) forEachObserver(fn func(Observer)) {
	w.observersMu.Lock()
	snapshot := make([]Observer, len(w.observers))
	copy(snapshot, w.observers)
	w.observersMu.Unlock()

	for _, o := range snapshot {
		fn(o)
	}
}

// control submits event strictly and rewraps a transition-not-allowed
// failure into an *OperationNotAllowedError naming the operation and the
// worker's current state, per the control-verb contract in spec.md §7.
func (w *Worker) control(operation string, event fsm.Event) error {
	if err := w.fsm.ProcessEvent(event); err != nil {
		return &OperationNotAllowedError{
			WorkerName: w.name,
			State:      w.fsm.CurrentState(),
			operation:  operation,
		}
	}
	return nil
}

// Start spawns the execution task from Stopped, or rescinds a pending
// stop request from RunningWaitingForStop. It is not allowed from
// Crashed; Restart must be called first.
func (w *Worker) Start() error { return w.control("start", eventStart) }

// Stop requests cooperative cancellation. It has no effect until the
// execution task reaches a stop breakpoint (see SetStopBreakpoint).
func (w *Worker) Stop() error { return w.control("stop", eventStop) }

// Pause requests cooperative suspension. It has no effect until the
// execution task reaches a pause breakpoint (see SetPauseBreakpoint).
func (w *Worker) Pause() error { return w.control("pause", eventPause) }

// Resume releases a task blocked in Paused, or rescinds a pending pause
// request from RunningWaitingForPause.
func (w *Worker) Resume() error { return w.control("resume", eventResume) }

// Restart clears a captured crash failure and returns the worker to
// Stopped, from which Start may be called again.
func (w *Worker) Restart() error { return w.control("restart", eventRestart) }

// CanStart, CanStop, CanPause, CanResume, CanRestart report whether the
// corresponding control verb would currently succeed.
func (w *Worker) CanStart() bool   { return w.fsm.IsTransitionExisting(eventStart) }
func (w *Worker) CanStop() bool    { return w.fsm.IsTransitionExisting(eventStop) }
func (w *Worker) CanPause() bool   { return w.fsm.IsTransitionExisting(eventPause) }
func (w *Worker) CanResume() bool  { return w.fsm.IsTransitionExisting(eventResume) }
func (w *Worker) CanRestart() bool { return w.fsm.IsTransitionExisting(eventRestart) }

// processBreakpointEvent is called by Handle from the execution task; it
// submits a breakpoint event silently, since it is legal for such events
// to have no matching transition in the current state (a no-op).
func (w *Worker) processBreakpointEvent(event fsm.Event) {
	w.fsm.ProcessEventSilent(event)
}
