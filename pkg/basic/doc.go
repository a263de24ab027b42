// Package basic implements the reference platform: typed object
// envelopes (Module, NetIf, HostIf), the per-module FSM behavior, and
// the platform facade a controller drives.
//
// Each module owns one FSM and one worker goroutine. The module's
// line-side interface (NetIf) and client-side lanes (HostIf) share
// the module's FSM; the FSM holds back-references to all three,
// installed set-once after construction. Attribute traffic for the
// TX-disable path is routed to the FSM through the object base's
// user-context pointer.
//
// Object creation is rare and serialized under one coarse platform
// mutex; steady-state attribute traffic does not touch it.
package basic
