package worker

import "github.com/softiron/cworker/pkg/fsm"

// The seven states a Worker's lifecycle FSM can be in. Only these states
// and the nine events below are ever used by the worker's internal FSM;
// the transition table wiring them together lives in worker.go next to
// New.
const (
	Stopped                fsm.State = "STOPPED"
	Running                fsm.State = "RUNNING"
	RunningWaitingForPause fsm.State = "RUNNING_WAITING_FOR_PAUSE"
	RunningWaitingForStop  fsm.State = "RUNNING_WAITING_FOR_STOP"
	Stopping               fsm.State = "STOPPING"
	Paused                 fsm.State = "PAUSED"
	Crashed                fsm.State = "CRASHED"
)

// The nine events that drive the worker's lifecycle FSM. Start/Stop/
// Pause/Resume/Restart are submitted by the control surface; the
// breakpoint and terminal events are submitted by the execution task.
const (
	eventStart                      fsm.Event = "START"
	eventStop                       fsm.Event = "STOP"
	eventPause                      fsm.Event = "PAUSE"
	eventResume                     fsm.Event = "RESUME"
	eventRestart                    fsm.Event = "RESTART"
	eventPauseBreakpointEncountered fsm.Event = "PAUSE_BREAKPOINT_ENCOUNTERED"
	eventStopBreakpointEncountered  fsm.Event = "STOP_BREAKPOINT_ENCOUNTERED"
	eventTerminated                 fsm.Event = "TERMINATED"
	eventCrash                      fsm.Event = "CRASH"
)

// buildTransitions constructs the worker's complete, fixed transition
// table. This mirrors the teacher's validWSTransitions table, generalized
// from a bespoke opcode-indexed map onto the shared fsm.Builder.
func buildTransitions() *fsm.Builder {
	b := fsm.NewBuilder()
	b.MustAddTransition(Stopped, eventStart, Running)

	b.MustAddTransition(Running, eventStop, RunningWaitingForStop)
	b.MustAddTransition(Running, eventPause, RunningWaitingForPause)
	b.MustAddTransition(Running, eventCrash, Crashed)
	b.MustAddTransition(Running, eventTerminated, Stopped)

	b.MustAddTransition(RunningWaitingForStop, eventStart, Running)
	b.MustAddTransition(RunningWaitingForStop, eventStopBreakpointEncountered, Stopping)
	b.MustAddTransition(RunningWaitingForStop, eventPause, RunningWaitingForPause)
	b.MustAddTransition(RunningWaitingForStop, eventCrash, Crashed)
	b.MustAddTransition(RunningWaitingForStop, eventTerminated, Stopped)

	b.MustAddTransition(RunningWaitingForPause, eventResume, Running)
	b.MustAddTransition(RunningWaitingForPause, eventPauseBreakpointEncountered, Paused)
	b.MustAddTransition(RunningWaitingForPause, eventStop, RunningWaitingForStop)
	b.MustAddTransition(RunningWaitingForPause, eventCrash, Crashed)
	b.MustAddTransition(RunningWaitingForPause, eventTerminated, Stopped)

	b.MustAddTransition(Paused, eventResume, Running)

	b.MustAddTransition(Stopping, eventTerminated, Stopped)
	b.MustAddTransition(Stopping, eventCrash, Crashed)

	b.MustAddTransition(Crashed, eventRestart, Stopped)

	return b
}
