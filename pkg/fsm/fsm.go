package fsm

import (
	"errors"
	"sync"
)

// State represents an FSM state.
type State uint8

const (
	// StateInit - bring-up probing and low-level reset.
	StateInit State = iota

	// StateWaitingConfiguration - waiting for the minimum attribute
	// set required to take the module to operational.
	StateWaitingConfiguration

	// StateReady - steady-state operation.
	StateReady

	// StateEnd - terminal; the FSM has stopped and no further
	// callbacks fire.
	StateEnd
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateWaitingConfiguration:
		return "WAITING_CONFIGURATION"
	case StateReady:
		return "READY"
	case StateEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Callback is a state-entry callback. It runs on the FSM worker and
// returns the next state. Callbacks for steady states block on the
// event handle so externally requested transitions are not missed.
type Callback func(current State) State

// StateChangeCallback is invoked immediately before moving from
// current to next. Its return value overrides next: it may redirect,
// or veto by returning current. Side effects (logging, metrics,
// cached-attribute refresh) are permitted.
type StateChangeCallback func(current, next State) State

// Behavior is what a platform implements on top of the FSM base.
type Behavior interface {
	// Configured reports whether the module holds the minimum
	// attribute set required to go READY.
	Configured() bool

	// CB returns the entry callback for a state. Returning nil sends
	// the FSM to END; END itself has no callback.
	CB(state State) Callback

	// StateChangeCB returns the state-change callback, or nil if the
	// behavior does not observe transitions.
	StateChangeCB() StateChangeCallback
}

// FSM errors.
var (
	ErrAlreadyStarted = errors.New("fsm already started")
)

// FSM is the framework FSM base. A platform embeds or owns one per
// module and supplies the Behavior that gives each state its entry
// callback.
type FSM struct {
	behavior Behavior

	mu      sync.Mutex
	state   State
	next    State
	started bool
	closed  bool

	// One-slot event channel: the Go analogue of the eventfd the
	// supervisor signals to request a transition.
	event chan struct{}

	// Closed when the worker reaches END.
	done chan struct{}
}

// New creates an FSM driven by the given behavior. The worker does
// not run until Start.
func New(behavior Behavior) *FSM {
	return &FSM{
		behavior: behavior,
		state:    StateInit,
		next:     StateInit,
		event:    make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Start spawns the worker goroutine, entering INIT.
// Starting twice returns ErrAlreadyStarted.
func (f *FSM) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.started {
		return ErrAlreadyStarted
	}
	f.started = true
	go f.loop()
	return nil
}

// loop is the worker: it dispatches state-entry callbacks until the
// FSM reaches END, then closes the event handle and the done channel.
func (f *FSM) loop() {
	state := StateInit
	for state != StateEnd {
		cb := f.behavior.CB(state)

		var next State
		if cb == nil {
			// No callback for the current state is the canonical
			// shutdown signal.
			next = StateEnd
		} else {
			next = cb(state)
		}

		if next != state {
			if scb := f.behavior.StateChangeCB(); scb != nil {
				next = scb(state, next)
			}
		}

		f.mu.Lock()
		f.state = next
		f.mu.Unlock()
		state = next
	}

	f.mu.Lock()
	f.closed = true
	close(f.event)
	f.mu.Unlock()
	close(f.done)
}

// Transit requests a transition to next. The request is stored in the
// one-slot next-state field (last writer wins) and the event handle
// is signalled without blocking. Requests after END are ignored.
func (f *FSM) Transit(next State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.next = next
	select {
	case f.event <- struct{}{}:
	default:
		// A signal is already pending; the stored next state is the
		// one the worker will observe.
	}
}

// Shutdown requests the terminal state. Callbacks observing the event
// handle return promptly; Done closes once the worker exits.
func (f *FSM) Shutdown() {
	f.Transit(StateEnd)
}

// NextState returns the pending requested state.
func (f *FSM) NextState() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next
}

// CurrentState returns the state the worker last entered.
func (f *FSM) CurrentState() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// EventHandle returns the readable event handle. Callbacks select on
// it to observe transition requests; it is closed when the FSM
// reaches END.
func (f *FSM) EventHandle() <-chan struct{} {
	return f.event
}

// Done returns a channel closed when the worker has stopped.
func (f *FSM) Done() <-chan struct{} {
	return f.done
}

// Configured exposes the behavior's predicate to supervisors.
func (f *FSM) Configured() bool {
	return f.behavior.Configured()
}
