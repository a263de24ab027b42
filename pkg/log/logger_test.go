package log

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tai-platform/tai-go/pkg/oid"
)

// captureLogger records events for assertions.
type captureLogger struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureLogger) Log(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureLogger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestNoopLogger(t *testing.T) {
	// Must not panic on a zero value.
	var l NoopLogger
	l.Log(Event{Category: CategoryError})
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := &captureLogger{}
	b := &captureLogger{}
	m := NewMultiLogger(a, b, NoopLogger{})

	m.Log(Event{Category: CategoryState})
	m.Log(Event{Category: CategoryHardware})

	if a.count() != 2 || b.count() != 2 {
		t.Errorf("fan-out counts = %d/%d, want 2/2", a.count(), b.count())
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{
		Timestamp: time.Now(),
		ObjectID:  oid.EncodeModule(3),
		RunID:     "run-a",
		Category:  CategoryState,
		StateChange: &StateChangeEvent{
			OldState: "INIT",
			NewState: "WAITING_CONFIGURATION",
		},
	})

	out := buf.String()
	for _, want := range []string{"platform", "STATE", "INIT", "WAITING_CONFIGURATION", "run-a"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output missing %q: %s", want, out)
		}
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	code := int32(-7)
	in := Event{
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
		ObjectID:  oid.Encode(oid.ObjectTypeHostIf, 3, 1),
		RunID:     "run-b",
		Category:  CategoryError,
		Error: &ErrorEventData{
			Message: "set-tx-dis failed",
			Context: "READY entry",
			Code:    &code,
		},
	}

	data, err := EncodeEvent(in)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	out, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if out.ObjectID != in.ObjectID || out.RunID != in.RunID || out.Category != in.Category {
		t.Errorf("envelope mismatch: %+v", out)
	}
	if out.Error == nil || out.Error.Message != in.Error.Message || *out.Error.Code != code {
		t.Errorf("error payload mismatch: %+v", out.Error)
	}
}
