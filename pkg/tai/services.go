package tai

import (
	"io"
	"log/slog"

	"github.com/tai-platform/tai-go/pkg/log"
	"github.com/tai-platform/tai-go/pkg/oid"
)

// AlarmSeverity grades platform alarm notifications.
type AlarmSeverity uint8

const (
	// AlarmSeverityWarning is a condition worth surfacing but not
	// affecting traffic.
	AlarmSeverityWarning AlarmSeverity = iota

	// AlarmSeverityMajor is a condition degrading traffic.
	AlarmSeverityMajor

	// AlarmSeverityCritical is a condition stopping traffic.
	AlarmSeverityCritical
)

// String returns the severity name.
func (s AlarmSeverity) String() string {
	switch s {
	case AlarmSeverityWarning:
		return "WARNING"
	case AlarmSeverityMajor:
		return "MAJOR"
	case AlarmSeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// AlarmFunc receives platform alarm notifications on the host side.
// Implementations must be thread-safe; they are invoked from FSM
// workers.
type AlarmFunc func(id oid.ID, severity AlarmSeverity, message string)

// Services is the host service method table supplied at platform
// construction. All members are optional; nil members default to
// no-ops.
type Services struct {
	// Logger receives operational log records.
	Logger *slog.Logger

	// EventLogger receives structured platform events.
	EventLogger log.Logger

	// Alarm receives alarm notifications raised by FSM workers.
	Alarm AlarmFunc
}

// Normalize returns a copy with nil members replaced by no-ops, so
// platform code never nil-checks.
func (s Services) Normalize() Services {
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.EventLogger == nil {
		s.EventLogger = log.NoopLogger{}
	}
	if s.Alarm == nil {
		s.Alarm = func(oid.ID, AlarmSeverity, string) {}
	}
	return s
}
