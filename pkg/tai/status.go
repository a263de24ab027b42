package tai

import "errors"

// Status represents an operation status code. Statuses are the
// external error contract: controllers see codes, not Go errors.
type Status int32

const (
	// StatusSuccess indicates the operation completed successfully.
	StatusSuccess Status = 0

	// StatusFailure indicates an unspecified internal failure.
	StatusFailure Status = -1

	// StatusNotSupported indicates the operation is not supported.
	StatusNotSupported Status = -2

	// StatusInvalidParameter indicates a parameter value is invalid.
	StatusInvalidParameter Status = -3

	// StatusInvalidObjectID indicates an id whose type tag is unknown
	// or which refers to no live object.
	StatusInvalidObjectID Status = -4

	// StatusMandatoryAttributeMissing indicates a creation attribute
	// list lacking a required attribute.
	StatusMandatoryAttributeMissing Status = -5

	// StatusItemAlreadyExists indicates the target slot is occupied.
	StatusItemAlreadyExists Status = -6

	// StatusAttrNotSupported indicates the attribute is not supported
	// by the object, or has no value to report.
	StatusAttrNotSupported Status = -7

	// StatusTimeout indicates a hardware access exceeded its bound.
	StatusTimeout Status = -8
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusNotSupported:
		return "NOT_SUPPORTED"
	case StatusInvalidParameter:
		return "INVALID_PARAMETER"
	case StatusInvalidObjectID:
		return "INVALID_OBJECT_ID"
	case StatusMandatoryAttributeMissing:
		return "MANDATORY_ATTRIBUTE_MISSING"
	case StatusItemAlreadyExists:
		return "ITEM_ALREADY_EXISTS"
	case StatusAttrNotSupported:
		return "ATTR_NOT_SUPPORTED"
	case StatusTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// IsError returns true if the status indicates an error.
func (s Status) IsError() bool {
	return s != StatusSuccess
}

// Error adapts a Status for use as a Go error inside the library.
type Error struct {
	Status Status
}

// Error returns the status name.
func (e *Error) Error() string {
	return e.Status.String()
}

// Per-status sentinel errors. Internal code returns (and wraps) these;
// the facade folds them back to codes with StatusOf.
var (
	ErrFailure                   = &Error{StatusFailure}
	ErrNotSupported              = &Error{StatusNotSupported}
	ErrInvalidParameter          = &Error{StatusInvalidParameter}
	ErrInvalidObjectID           = &Error{StatusInvalidObjectID}
	ErrMandatoryAttributeMissing = &Error{StatusMandatoryAttributeMissing}
	ErrItemAlreadyExists         = &Error{StatusItemAlreadyExists}
	ErrAttrNotSupported          = &Error{StatusAttrNotSupported}
	ErrTimeout                   = &Error{StatusTimeout}
)

// StatusOf extracts the status code from an error chain.
// Nil maps to StatusSuccess; errors without an embedded Status map to
// StatusFailure.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return StatusFailure
}
