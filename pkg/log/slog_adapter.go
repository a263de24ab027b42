package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes platform events to an slog.Logger.
// Useful for development when you want to see platform events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("object_id", event.ObjectID.String()),
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.RunID != "" {
		attrs = append(attrs, slog.String("run_id", event.RunID))
	}
	if event.Location != "" {
		attrs = append(attrs, slog.String("location", event.Location))
	}

	// Add type-specific attributes
	switch {
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Requested {
			attrs = append(attrs, slog.Bool("requested", true))
		}
	case event.Attribute != nil:
		attrs = append(attrs,
			slog.String("op", event.Attribute.Op.String()),
			slog.Uint64("attr_id", uint64(event.Attribute.AttrID)),
		)
		if event.Attribute.Name != "" {
			attrs = append(attrs, slog.String("attr", event.Attribute.Name))
		}
		if event.Attribute.Value != "" {
			attrs = append(attrs, slog.String("value", event.Attribute.Value))
		}
		if event.Attribute.Status != "" {
			attrs = append(attrs, slog.String("status", event.Attribute.Status))
		}
	case event.Hardware != nil:
		attrs = append(attrs,
			slog.String("hw_op", event.Hardware.Op),
			slog.Duration("duration", event.Hardware.Duration),
			slog.Bool("success", event.Hardware.Success),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Code != nil {
			attrs = append(attrs, slog.Int("error_code", int(*event.Error.Code)))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "platform", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
