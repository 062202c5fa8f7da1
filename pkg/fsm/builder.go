package fsm

import "fmt"

// ErrDuplicateTransition is returned by Builder.AddTransition when a
// (from, event) pair has already been registered. A duplicate transition
// is a programmer error in the FSM's configuration, not a runtime
// condition to recover from.
type ErrDuplicateTransition struct {
	From  State
	Event Event
}

func (e *ErrDuplicateTransition) Error() string {
	return fmt.Sprintf("fsm: duplicate transition for state %q on event %q", e.From, e.Event)
}

// Builder accumulates (from, event) -> to transitions into a table. Once
// Create is called the table is frozen; the Builder itself may continue
// to be used to build further, independent FSMs.
type Builder struct {
	transitions map[transitionKey]State
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{transitions: make(map[transitionKey]State)}
}

// AddTransition registers a transition from "from" to "to" on "event". It
// returns *ErrDuplicateTransition if (from, event) was already
// registered; the existing entry is left untouched.
func (b *Builder) AddTransition(from State, event Event, to State) error {
	key := transitionKey{From: from, Event: event}
	if _, exists := b.transitions[key]; exists {
		return &ErrDuplicateTransition{From: from, Event: event}
	}
	b.transitions[key] = to
	return nil
}

// MustAddTransition is AddTransition, panicking on error. It is intended
// for use at construction time, where a duplicate transition indicates a
// bug in the caller's own transition table literal.
func (b *Builder) MustAddTransition(from State, event Event, to State) *Builder {
	if err := b.AddTransition(from, event, to); err != nil {
		panic(err)
	}
	return b
}

// Create freezes the transition table accumulated so far and returns a
// FSM sitting in initial. The returned FSM has its own independent copy
// of the table; further calls to AddTransition on the Builder do not
// affect FSMs already created from it.
func (b *Builder) Create(initial State) *FSM {
	frozen := make(map[transitionKey]State, len(b.transitions))
	for k, v := range b.transitions {
		frozen[k] = v
	}
	return &FSM{
		transitions: frozen,
		current:     initial,
	}
}
