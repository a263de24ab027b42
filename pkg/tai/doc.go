// Package tai defines the core contract types of the transponder
// abstraction platform: status codes, the attribute model, the
// generic object base with getter/setter dispatch, and the host
// service method table.
//
// The platform is a passive library: a controller drives it through
// object creation and attribute traffic, and every operation answers
// with a Status. Failures never cross the boundary as panics; the
// facade translates internal errors to statuses (see StatusOf).
package tai
