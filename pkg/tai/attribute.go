package tai

import (
	"errors"
	"fmt"
	"sync"
)

// AttrID identifies an attribute. IDs are scoped per object type by
// range (convention below), so an id is unambiguous given the object
// it is addressed to.
type AttrID uint32

// Attribute ID ranges (convention).
const (
	// AttrIDModuleBase is the start of MODULE attributes.
	AttrIDModuleBase AttrID = 0x1000

	// AttrIDNetworkIfBase is the start of NETWORKIF attributes.
	AttrIDNetworkIfBase AttrID = 0x2000

	// AttrIDHostIfBase is the start of HOSTIF attributes.
	AttrIDHostIfBase AttrID = 0x3000
)

// Attribute IDs.
const (
	// ModuleAttrLocation is the module's location, a decimal string
	// interpreted as a 0-255 module index. Mandatory on creation.
	ModuleAttrLocation = AttrIDModuleBase + 1

	// NetworkIfAttrIndex is the line-side interface index (u32).
	// Mandatory on creation.
	NetworkIfAttrIndex = AttrIDNetworkIfBase + 1

	// NetworkIfAttrTxDis disables the TX laser (bool).
	NetworkIfAttrTxDis = AttrIDNetworkIfBase + 2

	// HostIfAttrIndex is the client-side lane index (u32).
	// Mandatory on creation.
	HostIfAttrIndex = AttrIDHostIfBase + 1
)

// AttributeValue is one element of the attribute list a controller
// passes to creation and bulk-set calls.
type AttributeValue struct {
	ID    AttrID
	Value any
}

// Access flags for attributes.
type Access uint8

const (
	// AccessRead allows reading the attribute.
	AccessRead Access = 1 << iota

	// AccessWrite allows writing the attribute.
	AccessWrite

	// AccessCreate allows setting the attribute at creation time.
	AccessCreate

	// Common access combinations.

	// AccessReadOnly is read only.
	AccessReadOnly = AccessRead

	// AccessReadWrite is read and write.
	AccessReadWrite = AccessRead | AccessWrite

	// AccessCreateOnly is read plus set-at-creation.
	AccessCreateOnly = AccessRead | AccessCreate
)

// CanRead returns true if reading is allowed.
func (a Access) CanRead() bool { return a&AccessRead != 0 }

// CanWrite returns true if writing is allowed.
func (a Access) CanWrite() bool { return a&AccessWrite != 0 }

// CanCreate returns true if the attribute may be set at creation.
func (a Access) CanCreate() bool { return a&AccessCreate != 0 }

// String returns the access flags as a string.
func (a Access) String() string {
	var s string
	if a.CanRead() {
		s += "R"
	}
	if a.CanWrite() {
		s += "W"
	}
	if a.CanCreate() {
		s += "C"
	}
	if s == "" {
		return "-"
	}
	return s
}

// DataType represents the type of an attribute value.
type DataType uint8

const (
	DataTypeUnknown DataType = iota
	DataTypeBool
	DataTypeUint32
	DataTypeUint64
	DataTypeString
)

// String returns the data type name.
func (d DataType) String() string {
	names := []string{"unknown", "bool", "uint32", "uint64", "string"}
	if int(d) < len(names) {
		return names[d]
	}
	return "unknown"
}

// AttributeMetadata describes an attribute's properties.
type AttributeMetadata struct {
	// ID is the attribute identifier.
	ID AttrID

	// Name is the human-readable attribute name.
	Name string

	// Type is the data type of the attribute value.
	Type DataType

	// Access defines the allowed operations.
	Access Access

	// Mandatory indicates the attribute must appear in the creation
	// attribute list.
	Mandatory bool

	// RequiredToReady indicates the attribute must be set before the
	// owning module's FSM may leave WAITING_CONFIGURATION.
	RequiredToReady bool

	// MinValue is the minimum allowed value (for numeric types).
	MinValue any

	// MaxValue is the maximum allowed value (for numeric types).
	MaxValue any

	// Description is a human-readable description.
	Description string
}

// Attribute errors.
var (
	ErrAttributeNotWritable = errors.New("attribute is not writable")
	ErrAttributeValueType   = errors.New("invalid value type for attribute")
	ErrAttributeOutOfRange  = errors.New("value out of range")
)

// Attribute represents an attribute instance with its current value.
type Attribute struct {
	mu       sync.RWMutex
	metadata *AttributeMetadata
	value    any
	set      bool // True once a value has been written
}

// NewAttribute creates a new attribute with the given metadata.
// The attribute starts unset; Value returns nil until a write occurs.
func NewAttribute(meta *AttributeMetadata) *Attribute {
	return &Attribute{metadata: meta}
}

// ID returns the attribute ID.
func (a *Attribute) ID() AttrID {
	return a.metadata.ID
}

// Metadata returns the attribute metadata.
func (a *Attribute) Metadata() *AttributeMetadata {
	return a.metadata
}

// Value returns the current attribute value, or nil if never set.
func (a *Attribute) Value() any {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.value
}

// IsSet returns true once a value has been written.
func (a *Attribute) IsSet() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.set
}

// SetValue sets the attribute value.
// Returns an error if the attribute is not writable or the value is
// invalid.
func (a *Attribute) SetValue(value any) error {
	if !a.metadata.Access.CanWrite() {
		return ErrAttributeNotWritable
	}
	return a.setValueInternal(value)
}

// SetValueInternal sets the value without checking write access.
// Used during object creation and by the platform to refresh
// read-only attributes.
func (a *Attribute) SetValueInternal(value any) error {
	return a.setValueInternal(value)
}

func (a *Attribute) setValueInternal(value any) error {
	if err := a.validateValue(value); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.value = value
	a.set = true
	return nil
}

// validateValue checks if the value matches the expected type and range.
func (a *Attribute) validateValue(value any) error {
	switch a.metadata.Type {
	case DataTypeBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: %s expects bool", ErrAttributeValueType, a.metadata.Name)
		}
	case DataTypeUint32:
		if _, ok := value.(uint32); !ok {
			return fmt.Errorf("%w: %s expects uint32", ErrAttributeValueType, a.metadata.Name)
		}
	case DataTypeUint64:
		if _, ok := value.(uint64); !ok {
			return fmt.Errorf("%w: %s expects uint64", ErrAttributeValueType, a.metadata.Name)
		}
	case DataTypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: %s expects string", ErrAttributeValueType, a.metadata.Name)
		}
	}

	if a.metadata.MinValue != nil || a.metadata.MaxValue != nil {
		if err := a.checkRange(value); err != nil {
			return err
		}
	}

	return nil
}

// checkRange validates numeric range constraints.
func (a *Attribute) checkRange(value any) error {
	v, ok := toUint64(value)
	if !ok {
		return nil
	}

	if a.metadata.MinValue != nil {
		if min, ok := toUint64(a.metadata.MinValue); ok && v < min {
			return fmt.Errorf("%w: %v < %v", ErrAttributeOutOfRange, value, a.metadata.MinValue)
		}
	}

	if a.metadata.MaxValue != nil {
		if max, ok := toUint64(a.metadata.MaxValue); ok && v > max {
			return fmt.Errorf("%w: %v > %v", ErrAttributeOutOfRange, value, a.metadata.MaxValue)
		}
	}

	return nil
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
