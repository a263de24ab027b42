package oid

import (
	"errors"
	"fmt"
)

// ObjectType tags the kind of platform object an id refers to.
// The tag occupies the top 16 bits of every object id.
type ObjectType uint16

const (
	// ObjectTypeNull is the zero value; no object carries it.
	ObjectTypeNull ObjectType = 0

	// ObjectTypeModule is a pluggable optical transponder module.
	ObjectTypeModule ObjectType = 1

	// ObjectTypeNetworkIf is a line-side optical port on a module.
	ObjectTypeNetworkIf ObjectType = 2

	// ObjectTypeHostIf is a client-side electrical lane on a module.
	ObjectTypeHostIf ObjectType = 3
)

// String returns the object type name.
func (t ObjectType) String() string {
	switch t {
	case ObjectTypeNull:
		return "NULL"
	case ObjectTypeModule:
		return "MODULE"
	case ObjectTypeNetworkIf:
		return "NETWORKIF"
	case ObjectTypeHostIf:
		return "HOSTIF"
	default:
		return "UNKNOWN"
	}
}

// valid reports whether the tag names a defined object type.
func (t ObjectType) valid() bool {
	return t >= ObjectTypeModule && t <= ObjectTypeHostIf
}

// ID is an opaque 64-bit object identifier.
type ID uint64

// None is the null object id, passed to create calls that have no
// owning module.
const None ID = 0

const typeShift = 48

// Identity errors.
var (
	// ErrInvalidObjectID indicates an id whose type tag is not a
	// defined object type.
	ErrInvalidObjectID = errors.New("invalid object id")
)

// Encode packs an object id for a sub-object of a module.
//
// moduleIdx and subIdx must fit in 8 bits; values outside [0,255] are
// truncated to their low byte. Callers validate ranges beforehand.
func Encode(t ObjectType, moduleIdx, subIdx uint32) ID {
	return ID(uint64(t)<<typeShift | uint64(moduleIdx&0xff)<<8 | uint64(subIdx&0xff))
}

// EncodeModule packs a MODULE object id. The module's own index sits
// in the low byte; the middle byte is zero.
func EncodeModule(moduleIdx uint32) ID {
	return ID(uint64(ObjectTypeModule)<<typeShift | uint64(moduleIdx&0xff))
}

// DecodeType extracts the object type tag from an id.
// Returns ErrInvalidObjectID if the tag is not a defined type.
func DecodeType(id ID) (ObjectType, error) {
	t := ObjectType(uint64(id) >> typeShift)
	if !t.valid() {
		return ObjectTypeNull, fmt.Errorf("%w: %s", ErrInvalidObjectID, id)
	}
	return t, nil
}

// DecodeModuleIndex extracts the index of the owning module.
// For MODULE ids the index is in the low byte; for sub-objects it is
// the middle byte.
func DecodeModuleIndex(id ID) (uint8, error) {
	t, err := DecodeType(id)
	if err != nil {
		return 0, err
	}
	if t == ObjectTypeModule {
		return uint8(id & 0xff), nil
	}
	return uint8(id >> 8 & 0xff), nil
}

// ModuleID rebuilds the owning module's id from any object id.
// For a MODULE id it returns the id itself. The result is computed
// from the bit layout alone; no registry is consulted.
func ModuleID(id ID) (ID, error) {
	idx, err := DecodeModuleIndex(id)
	if err != nil {
		return None, err
	}
	return EncodeModule(uint32(idx)), nil
}

// SubIndex extracts the sub-index (low byte) of a sub-object id.
func SubIndex(id ID) uint8 {
	return uint8(id & 0xff)
}

// String returns the id in fixed-width hex, e.g. 0x0002000000000300.
func (id ID) String() string {
	return fmt.Sprintf("0x%016x", uint64(id))
}
