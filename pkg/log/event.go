package log

import (
	"time"

	"github.com/tai-platform/tai-go/pkg/oid"
)

// Event represents a platform event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ObjectID is the originating object (module, netif or hostif).
	ObjectID oid.ID `cbor:"2,keyasint,omitempty"`

	// RunID uniquely identifies the FSM run that produced the event
	// (UUID, assigned when the FSM starts).
	RunID string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Location is the module's LOCATION attribute, for correlation
	// with hardware inventory.
	Location string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	StateChange *StateChangeEvent `cbor:"6,keyasint,omitempty"` // FSM transitions
	Attribute   *AttributeEvent   `cbor:"7,keyasint,omitempty"` // Attribute traffic
	Hardware    *HardwareEvent    `cbor:"8,keyasint,omitempty"` // Hardware access
	Error       *ErrorEventData   `cbor:"9,keyasint,omitempty"` // Errors at any layer
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryState indicates an FSM state change.
	CategoryState Category = 0
	// CategoryAttribute indicates attribute get/set traffic.
	CategoryAttribute Category = 1
	// CategoryHardware indicates a hardware access.
	CategoryHardware Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryState:
		return "STATE"
	case CategoryAttribute:
		return "ATTRIBUTE"
	case CategoryHardware:
		return "HARDWARE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures an FSM transition.
type StateChangeEvent struct {
	// OldState is the state being left.
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the state being entered.
	NewState string `cbor:"2,keyasint"`

	// Requested indicates the transition was requested by the
	// supervisor through the event handle, as opposed to self-driven
	// by a state-entry callback.
	Requested bool `cbor:"3,keyasint,omitempty"`
}

// AttributeOp distinguishes attribute reads from writes.
type AttributeOp uint8

const (
	// AttributeOpGet indicates an attribute read.
	AttributeOpGet AttributeOp = 0
	// AttributeOpSet indicates an attribute write.
	AttributeOpSet AttributeOp = 1
)

// String returns the operation name.
func (o AttributeOp) String() string {
	switch o {
	case AttributeOpGet:
		return "GET"
	case AttributeOpSet:
		return "SET"
	default:
		return "UNKNOWN"
	}
}

// AttributeEvent captures one attribute get or set.
type AttributeEvent struct {
	// Op is the operation performed.
	Op AttributeOp `cbor:"1,keyasint"`

	// AttrID is the attribute identifier.
	AttrID uint32 `cbor:"2,keyasint"`

	// Name is the human-readable attribute name (if known).
	Name string `cbor:"3,keyasint,omitempty"`

	// Value is a printable rendering of the value involved.
	Value string `cbor:"4,keyasint,omitempty"`

	// Status is the status name the operation answered with.
	Status string `cbor:"5,keyasint,omitempty"`
}

// HardwareEvent captures one black-box hardware access.
type HardwareEvent struct {
	// Op names the access (e.g. "reset", "set-tx-dis").
	Op string `cbor:"1,keyasint"`

	// Duration is how long the access took.
	Duration time.Duration `cbor:"2,keyasint"`

	// Success indicates the access completed without error.
	Success bool `cbor:"3,keyasint"`
}

// ErrorEventData captures error details.
type ErrorEventData struct {
	// Message is the error text.
	Message string `cbor:"1,keyasint"`

	// Context describes what was being attempted.
	Context string `cbor:"2,keyasint,omitempty"`

	// Code is the status code, if one applies.
	Code *int32 `cbor:"3,keyasint,omitempty"`
}
