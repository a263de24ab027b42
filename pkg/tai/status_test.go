package tai

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := map[Status]string{
		StatusSuccess:                   "SUCCESS",
		StatusFailure:                   "FAILURE",
		StatusNotSupported:              "NOT_SUPPORTED",
		StatusInvalidParameter:          "INVALID_PARAMETER",
		StatusInvalidObjectID:           "INVALID_OBJECT_ID",
		StatusMandatoryAttributeMissing: "MANDATORY_ATTRIBUTE_MISSING",
		StatusItemAlreadyExists:         "ITEM_ALREADY_EXISTS",
		StatusAttrNotSupported:          "ATTR_NOT_SUPPORTED",
		StatusTimeout:                   "TIMEOUT",
		Status(42):                      "UNKNOWN",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("Status(%d).String() = %s, want %s", status, got, want)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	if !StatusSuccess.IsSuccess() || StatusSuccess.IsError() {
		t.Error("StatusSuccess misclassified")
	}
	if StatusFailure.IsSuccess() || !StatusFailure.IsError() {
		t.Error("StatusFailure misclassified")
	}
}

func TestStatusOf(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		if got := StatusOf(nil); got != StatusSuccess {
			t.Errorf("StatusOf(nil) = %s, want SUCCESS", got)
		}
	})

	t.Run("Sentinel", func(t *testing.T) {
		if got := StatusOf(ErrItemAlreadyExists); got != StatusItemAlreadyExists {
			t.Errorf("StatusOf = %s, want ITEM_ALREADY_EXISTS", got)
		}
	})

	t.Run("Wrapped", func(t *testing.T) {
		err := fmt.Errorf("creating hostif: %w", ErrMandatoryAttributeMissing)
		if got := StatusOf(err); got != StatusMandatoryAttributeMissing {
			t.Errorf("StatusOf = %s, want MANDATORY_ATTRIBUTE_MISSING", got)
		}
	})

	t.Run("Unrelated", func(t *testing.T) {
		if got := StatusOf(errors.New("boom")); got != StatusFailure {
			t.Errorf("StatusOf = %s, want FAILURE", got)
		}
	})
}

func TestSentinelsMatchWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("context: %w", ErrNotSupported)
	if !errors.Is(wrapped, ErrNotSupported) {
		t.Error("wrapped sentinel not matched by errors.Is")
	}
	if errors.Is(wrapped, ErrTimeout) {
		t.Error("wrong sentinel matched")
	}
}
