// Package oid implements the 64-bit object identity scheme shared by
// the platform and its controllers.
//
// An object id carries its own type tag and locator, so every id is
// self-describing: no global id-to-type table is consulted on the hot
// path. The layout is a stable external contract; controllers are
// allowed to parse it.
//
// Layout (most-significant bit first):
//
//	bits 63..48  object type tag
//	bits 15..8   module index (zero for MODULE objects)
//	bits 7..0    sub-index (the module's own index for MODULE objects)
//
// All remaining bits are zero.
package oid
