package fsm

import (
	"errors"
	"testing"
)

const (
	stateA State = "A"
	stateB State = "B"
	stateC State = "C"

	eventGo     Event = "GO"
	eventBack   Event = "BACK"
	eventStay   Event = "STAY"
	eventUnused Event = "UNUSED"
)

func buildABC(t *testing.T) *FSM {
	t.Helper()
	b := NewBuilder()
	if err := b.AddTransition(stateA, eventGo, stateB); err != nil {
		t.Fatalf("unexpected error building transition: %v", err)
	}
	if err := b.AddTransition(stateB, eventGo, stateC); err != nil {
		t.Fatalf("unexpected error building transition: %v", err)
	}
	if err := b.AddTransition(stateB, eventBack, stateA); err != nil {
		t.Fatalf("unexpected error building transition: %v", err)
	}
	if err := b.AddTransition(stateA, eventStay, stateA); err != nil {
		t.Fatalf("unexpected error building transition: %v", err)
	}
	return b.Create(stateA)
}

func TestBuilderRejectsDuplicateTransition(t *testing.T) {
	b := NewBuilder()
	if err := b.AddTransition(stateA, eventGo, stateB); err != nil {
		t.Fatalf("first AddTransition failed: %v", err)
	}
	err := b.AddTransition(stateA, eventGo, stateC)
	if err == nil {
		t.Fatal("expected a duplicate-transition error, got nil")
	}
	var dup *ErrDuplicateTransition
	if !errors.As(err, &dup) {
		t.Fatalf("expected *ErrDuplicateTransition, got %T: %v", err, err)
	}
}

func TestProcessEventAdvancesState(t *testing.T) {
	f := buildABC(t)
	if got := f.CurrentState(); got != stateA {
		t.Fatalf("expected initial state A, got %v", got)
	}
	if err := f.ProcessEvent(eventGo); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := f.CurrentState(); got != stateB {
		t.Fatalf("expected state B after GO, got %v", got)
	}
}

func TestProcessEventRejectsIllegalTransition(t *testing.T) {
	f := buildABC(t)
	err := f.ProcessEvent(eventUnused)
	if err == nil {
		t.Fatal("expected ErrTransitionNotAllowed, got nil")
	}
	var notAllowed *ErrTransitionNotAllowed
	if !errors.As(err, &notAllowed) {
		t.Fatalf("expected *ErrTransitionNotAllowed, got %T: %v", err, err)
	}
	if got := f.CurrentState(); got != stateA {
		t.Fatalf("state must be unchanged after rejected transition, got %v", got)
	}
}

func TestProcessEventSilentSwallowsIllegalTransition(t *testing.T) {
	f := buildABC(t)
	var notified bool
	f.AddListener(&ListenerFuncs{
		OnStateChanged: func(from State, event Event, to State) { notified = true },
	})
	f.ProcessEventSilent(eventUnused)
	if got := f.CurrentState(); got != stateA {
		t.Fatalf("state must be unchanged, got %v", got)
	}
	if notified {
		t.Fatal("silent illegal transition must not notify listeners")
	}
}

func TestIsTransitionExisting(t *testing.T) {
	f := buildABC(t)
	if !f.IsTransitionExisting(eventGo) {
		t.Fatal("expected GO to be a valid transition from A")
	}
	if f.IsTransitionExisting(eventBack) {
		t.Fatal("expected BACK to not be valid from A")
	}
}

func TestListenerReceivesStateChangedInOrder(t *testing.T) {
	f := buildABC(t)
	var seen []Event

	f.AddListener(&ListenerFuncs{
		OnStateChanged: func(from State, event Event, to State) {
			seen = append(seen, event)
		},
	})

	if err := f.ProcessEvent(eventGo); err != nil {
		t.Fatal(err)
	}
	if err := f.ProcessEvent(eventBack); err != nil {
		t.Fatal(err)
	}
	if err := f.ProcessEvent(eventGo); err != nil {
		t.Fatal(err)
	}

	want := []Event{eventGo, eventBack, eventGo}
	if len(seen) != len(want) {
		t.Fatalf("expected %d notifications, got %d: %v", len(want), len(seen), seen)
	}
	for i, e := range want {
		if seen[i] != e {
			t.Fatalf("notification %d: expected %v, got %v", i, e, seen[i])
		}
	}
}

func TestStateLoopFiresInsteadOfStateChanged(t *testing.T) {
	f := buildABC(t)
	var loopFired, changedFired bool
	f.AddListener(&ListenerFuncs{
		OnStateChanged: func(from State, event Event, to State) { changedFired = true },
		OnStateLoop:    func(state State, event Event) { loopFired = true },
	})

	if err := f.ProcessEvent(eventStay); err != nil {
		t.Fatal(err)
	}
	if !loopFired {
		t.Fatal("expected StateLoop to fire for a self-transition")
	}
	if changedFired {
		t.Fatal("StateChanged must not fire for a self-transition")
	}
	if got := f.CurrentState(); got != stateA {
		t.Fatalf("state-loop must still assign the (identical) target, got %v", got)
	}
}

func TestEventOccurredFiresOnlyForMatchingTransitions(t *testing.T) {
	f := buildABC(t)
	var occurrences int
	f.AddListener(&ListenerFuncs{
		OnEventOccurred: func(from State, event Event, to State) { occurrences++ },
	})

	if err := f.ProcessEvent(eventGo); err != nil {
		t.Fatal(err)
	}
	if err := f.ProcessEvent(eventStay); err == nil {
		t.Fatal("expected STAY from state B to be illegal")
	}

	if occurrences != 1 {
		t.Fatalf("expected EventOccurred to fire once for the legal transition, got %d", occurrences)
	}
}

func TestRemoveListenerStopsNotifications(t *testing.T) {
	f := buildABC(t)
	var count int
	l := &ListenerFuncs{OnStateChanged: func(from State, event Event, to State) { count++ }}
	f.AddListener(l)
	if err := f.ProcessEvent(eventGo); err != nil {
		t.Fatal(err)
	}
	f.RemoveListener(l)
	if err := f.ProcessEvent(eventBack); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one notification before removal, got %d", count)
	}
}

func TestReentrantProcessEventFromListenerPreservesOrder(t *testing.T) {
	f := buildABC(t)
	var seen []Event

	recording := &ListenerFuncs{}
	recording.OnStateChanged = func(from State, event Event, to State) {
		seen = append(seen, event)
		if event == eventGo && to == stateB {
			// Reentrant call made from inside a listener callback.
			if err := f.ProcessEvent(eventGo); err != nil {
				t.Errorf("unexpected error from reentrant ProcessEvent: %v", err)
			}
		}
	}
	f.AddListener(recording)

	if err := f.ProcessEvent(eventGo); err != nil {
		t.Fatal(err)
	}

	want := []Event{eventGo, eventGo}
	if len(seen) != len(want) {
		t.Fatalf("expected %d notifications, got %d: %v", len(want), len(seen), seen)
	}
	if got := f.CurrentState(); got != stateC {
		t.Fatalf("expected state C after both GOs land in order, got %v", got)
	}
}

