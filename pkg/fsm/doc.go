// Package fsm provides the framework FSM base that drives a module's
// operational progression.
//
// The framework defines four states: INIT, WAITING_CONFIGURATION,
// READY and END. The FSM starts in INIT and stops when it reaches
// END. The framework makes no assumption on how states transit; the
// platform supplies a Behavior whose CB method returns the entry
// callback for each state, and each callback returns the next state.
// A nil callback sends the FSM to END.
//
// Transitions can also be requested externally: Transit stores the
// requested state and signals the event handle. A cooperative
// callback selects on EventHandle and, on signal, returns NextState
// promptly. At most one request is pending at a time; the last writer
// wins.
//
// Each FSM owns one long-lived worker goroutine; state-entry
// callbacks run only there. Everything a supervisor touches (Transit,
// CurrentState, Done) is safe from any goroutine.
package fsm
