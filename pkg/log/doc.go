// Package log provides structured event capture for the platform.
//
// This package defines the Logger interface and Event types for
// recording platform-level events: FSM state changes, attribute
// traffic, hardware access, and errors. It is separate from
// operational logging (slog) - event capture provides a complete
// machine-readable trace for debugging and analysis.
//
// # Basic Usage
//
// Hosts configure capture by providing a Logger in the platform's
// service method table:
//
//	// For development: log to console via slog
//	services.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	services.EventLogger, _ = log.NewFileLogger("/var/log/tai/platform.tlog")
//
//	// Both: use MultiLogger
//	services.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    log.NewFileLogger("/var/log/tai/platform.tlog"),
//	)
//
// # Event Types
//
// Events carry the originating object id and the FSM run id, plus a
// category-specific payload:
//   - State: FSM transitions (StateChangeEvent)
//   - Attribute: get/set traffic (AttributeEvent)
//   - Hardware: black-box hardware access (HardwareEvent)
//   - Error: failures at any layer (ErrorEventData)
//
// # File Format
//
// Log files use CBOR encoding with .tlog extension. Reader streams
// events back with optional filtering.
package log
