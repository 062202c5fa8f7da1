package workload

import (
	"errors"
	"testing"
	"time"

	"github.com/softiron/cworker/pkg/worker"
)

func TestCounterRespectsPauseAndStopBreakpoints(t *testing.T) {
	execute := Counter(time.Millisecond, 3, 9)
	w := worker.New("counter", execute)

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for w.CurrentState().String() != worker.Running.String() {
		if time.Now().After(deadline) {
			t.Fatalf("worker never reached Running, stuck at %v", w.CurrentState())
		}
		time.Sleep(time.Millisecond)
	}

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	for !w.IsStopped() {
		if time.Now().After(deadline) {
			t.Fatalf("worker never reached Stopped after Stop, stuck at %v", w.CurrentState())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestCounterStopBreakpointPropagatesSentinel(t *testing.T) {
	execute := Counter(time.Millisecond, 0, 1)
	w := worker.New("counter", execute)

	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !w.IsStopped() {
		if time.Now().After(deadline) {
			t.Fatalf("worker never reached Stopped, stuck at %v", w.CurrentState())
		}
		time.Sleep(time.Millisecond)
	}

	if w.IsCrashed() {
		t.Fatalf("stop sentinel should not be reported as a crash")
	}
	if !errors.Is(w.LastCrashFailure(), nil) {
		t.Fatalf("expected no crash failure, got %v", w.LastCrashFailure())
	}
}
