package basic

import (
	"context"
	"time"
)

// HardwareTimeout bounds every black-box hardware access.
const HardwareTimeout = 5 * time.Second

// Hardware is the black-box hardware access a module's FSM performs.
// Implementations talk to the physical driver (I2C/MDIO/serdes) and
// may succeed, fail, or time out; they must honor ctx cancellation.
type Hardware interface {
	// Reset performs low-level bring-up of the module.
	Reset(ctx context.Context) error

	// SetTxDis enables or disables the TX laser.
	SetTxDis(ctx context.Context, disabled bool) error
}

// NoopHardware is the skeleton hardware hook: every access succeeds
// immediately. It is the default when no hardware factory is
// configured.
type NoopHardware struct{}

// Reset does nothing.
func (NoopHardware) Reset(context.Context) error { return nil }

// SetTxDis does nothing.
func (NoopHardware) SetTxDis(context.Context, bool) error { return nil }

// Compile-time interface satisfaction check.
var _ Hardware = NoopHardware{}
