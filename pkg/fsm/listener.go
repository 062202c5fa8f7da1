package fsm

// Listener receives notifications about transitions processed by a FSM.
// All four hooks are optional in spirit: embed NopListener to get
// no-op defaults and override only the hooks you care about.
type Listener interface {
	// StateChanged fires after a successful transition whose target
	// differs from its source, once the FSM's state has already been
	// updated.
	StateChanged(from State, event Event, to State)

	// EventOccurred fires for every event submitted to the FSM that has
	// a matching transition, whether or not the transition changed the
	// state. It fires before StateChanged/StateLoop.
	EventOccurred(from State, event Event, to State)

	// StateLoop fires instead of StateChanged when the transition's
	// target equals its source.
	StateLoop(state State, event Event)

	// UnexistingTransition fires in strict mode, before
	// ErrTransitionNotAllowed is returned. It does not fire in silent
	// mode, where an illegal transition notifies no listener at all.
	UnexistingTransition(from State, event Event)
}

// NopListener implements Listener with no-op methods. Embed it in a
// listener type to only override the hooks it needs.
type NopListener struct{}

func (NopListener) StateChanged(from State, event Event, to State)   {}
func (NopListener) EventOccurred(from State, event Event, to State)  {}
func (NopListener) StateLoop(state State, event Event)               {}
func (NopListener) UnexistingTransition(from State, event Event)     {}

// ListenerFuncs adapts plain functions to the Listener interface; any nil
// field behaves as a no-op, matching NopListener's defaults.
//
// Always register a *ListenerFuncs (take its address), never a value: the
// methods have pointer receivers so that RemoveListener can identify a
// previously-added listener by pointer equality. A value receiver here
// would make the Listener interface value uncomparable, since the struct
// holds func fields, and RemoveListener's equality check would panic.
type ListenerFuncs struct {
	OnStateChanged         func(from State, event Event, to State)
	OnEventOccurred        func(from State, event Event, to State)
	OnStateLoop            func(state State, event Event)
	OnUnexistingTransition func(from State, event Event)
}

func (l *ListenerFuncs) StateChanged(from State, event Event, to State) {
	if l.OnStateChanged != nil {
		l.OnStateChanged(from, event, to)
	}
}

func (l *ListenerFuncs) EventOccurred(from State, event Event, to State) {
	if l.OnEventOccurred != nil {
		l.OnEventOccurred(from, event, to)
	}
}

func (l *ListenerFuncs) StateLoop(state State, event Event) {
	if l.OnStateLoop != nil {
		l.OnStateLoop(state, event)
	}
}

func (l *ListenerFuncs) UnexistingTransition(from State, event Event) {
	if l.OnUnexistingTransition != nil {
		l.OnUnexistingTransition(from, event)
	}
}
