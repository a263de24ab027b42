package basic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tai-platform/tai-go/pkg/fsm"
	"github.com/tai-platform/tai-go/pkg/log"
	"github.com/tai-platform/tai-go/pkg/oid"
	"github.com/tai-platform/tai-go/pkg/tai"
)

// initRetryInterval paces bring-up retries after a failed hardware
// reset, unless an external transition request arrives first.
const initRetryInterval = time.Second

// ModuleFSM is the per-module FSM behavior. It holds set-once
// back-references to the module and its sub-interfaces, caches the
// TX-disable value for the getter/setter path, and implements the
// state-entry callbacks.
//
// The module and each sub-interface hold the ModuleFSM; the FSM's
// references back to them are installed after construction and do not
// manage their lifetime.
type ModuleFSM struct {
	*fsm.FSM

	services  tai.Services
	hw        Hardware
	numNetIf  int
	numHostIf int
	runID     string

	mu     sync.Mutex
	module *Module
	netif  *NetIf
	hostif []*HostIf

	// TX-disable cache. Writes land here from controller threads;
	// the worker applies them to hardware when READY.
	txDis        bool
	txDisSet     bool
	txDisPending bool

	// Pulsed when an install or a required-to-ready attribute write
	// may have changed the Configured predicate.
	configCh chan struct{}
}

// NewModuleFSM creates the FSM behavior for one module. The worker
// does not run until Start. The interface limits bound the index
// ranges of the module's netif and hostif envelopes.
func NewModuleFSM(services tai.Services, hw Hardware, numNetIf, numHostIf int) *ModuleFSM {
	m := &ModuleFSM{
		services:  services.Normalize(),
		hw:        hw,
		numNetIf:  numNetIf,
		numHostIf: numHostIf,
		runID:     uuid.NewString(),
		hostif:    make([]*HostIf, numHostIf),
		configCh:  make(chan struct{}, 1),
	}
	m.FSM = fsm.New(m)
	return m
}

// RunID identifies this FSM run in captured events.
func (m *ModuleFSM) RunID() string {
	return m.runID
}

// SetModule installs the module back-reference. Set-once; a second
// call fails with ITEM_ALREADY_EXISTS without mutating state.
func (m *ModuleFSM) SetModule(module *Module) error {
	m.mu.Lock()
	if m.module != nil {
		m.mu.Unlock()
		return fmt.Errorf("%w: module already installed", tai.ErrItemAlreadyExists)
	}
	m.module = module
	m.mu.Unlock()

	m.NotifyConfigChanged()
	return nil
}

// SetNetIf installs the netif back-reference. Set-once.
func (m *ModuleFSM) SetNetIf(netif *NetIf) error {
	m.mu.Lock()
	if m.netif != nil {
		m.mu.Unlock()
		return fmt.Errorf("%w: netif already installed", tai.ErrItemAlreadyExists)
	}
	m.netif = netif
	m.mu.Unlock()

	m.NotifyConfigChanged()
	return nil
}

// SetHostIf installs a hostif back-reference into the slot named by
// index. Set-once per slot.
func (m *ModuleFSM) SetHostIf(hostif *HostIf, index int) error {
	if index < 0 || index >= m.numHostIf {
		return fmt.Errorf("%w: hostif index %d out of range [0,%d)",
			tai.ErrInvalidParameter, index, m.numHostIf)
	}

	m.mu.Lock()
	if m.hostif[index] != nil {
		m.mu.Unlock()
		return fmt.Errorf("%w: hostif %d already installed", tai.ErrItemAlreadyExists, index)
	}
	m.hostif[index] = hostif
	m.mu.Unlock()

	m.NotifyConfigChanged()
	return nil
}

// Module returns the installed module, or nil.
func (m *ModuleFSM) Module() *Module {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.module
}

// NetIf returns the installed netif, or nil.
func (m *ModuleFSM) NetIf() *NetIf {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.netif
}

// HostIf returns the installed hostif in slot index, or nil.
func (m *ModuleFSM) HostIf(index int) *HostIf {
	if index < 0 || index >= m.numHostIf {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hostif[index]
}

// NotifyConfigChanged pulses the configuration channel so a worker
// blocked in WAITING_CONFIGURATION re-evaluates the predicate.
func (m *ModuleFSM) NotifyConfigChanged() {
	select {
	case m.configCh <- struct{}{}:
	default:
	}
}

// Configured reports whether the module can go READY: the module,
// its netif and every hostif slot are installed, and every attribute
// flagged required-to-ready on any of them has been set. Once true it
// stays true for the rest of the run.
func (m *ModuleFSM) Configured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.module == nil || m.netif == nil {
		return false
	}
	for _, h := range m.hostif {
		if h == nil {
			return false
		}
	}

	if !m.module.ConfiguredForReady() || !m.netif.ConfiguredForReady() {
		return false
	}
	for _, h := range m.hostif {
		if !h.ConfiguredForReady() {
			return false
		}
	}
	return true
}

// CB returns the entry callback for each state; END has none.
func (m *ModuleFSM) CB(state fsm.State) fsm.Callback {
	switch state {
	case fsm.StateInit:
		return m.initCB
	case fsm.StateWaitingConfiguration:
		return m.waitingConfigurationCB
	case fsm.StateReady:
		return m.readyCB
	default:
		return nil
	}
}

// StateChangeCB logs every transition to the host logger and the
// event capture pipeline.
func (m *ModuleFSM) StateChangeCB() fsm.StateChangeCallback {
	return func(current, next fsm.State) fsm.State {
		requested := next != fsm.StateInit && next == m.FSM.NextState()

		m.services.Logger.Info("module state change",
			"module", m.moduleID().String(),
			"from", current.String(),
			"to", next.String(),
		)
		m.services.EventLogger.Log(log.Event{
			Timestamp: time.Now(),
			ObjectID:  m.moduleID(),
			RunID:     m.runID,
			Category:  log.CategoryState,
			Location:  m.location(),
			StateChange: &log.StateChangeEvent{
				OldState:  current.String(),
				NewState:  next.String(),
				Requested: requested,
			},
		})
		return next
	}
}

// initCB performs bring-up: a hardware reset bounded by
// HardwareTimeout. On failure it raises an alarm and retries, unless
// the supervisor requests a transition first.
func (m *ModuleFSM) initCB(current fsm.State) fsm.State {
	ctx, cancel := context.WithTimeout(context.Background(), HardwareTimeout)
	start := time.Now()
	err := m.hw.Reset(ctx)
	cancel()
	m.logHardware("reset", time.Since(start), err)

	if err != nil {
		m.services.Alarm(m.moduleID(), tai.AlarmSeverityMajor,
			"module reset failed: "+err.Error())
		m.logError("module reset", err)
		select {
		case <-m.EventHandle():
			return m.NextState()
		case <-time.After(initRetryInterval):
			return current
		}
	}

	return fsm.StateWaitingConfiguration
}

// waitingConfigurationCB blocks until the module is configured, then
// goes READY. Transition requests interrupt the wait.
func (m *ModuleFSM) waitingConfigurationCB(fsm.State) fsm.State {
	for {
		if m.Configured() {
			return fsm.StateReady
		}
		select {
		case <-m.EventHandle():
			return m.NextState()
		case <-m.configCh:
		}
	}
}

// readyCB is steady-state operation: apply any deferred TX-disable,
// then block on the event handle and honor the requested state.
func (m *ModuleFSM) readyCB(fsm.State) fsm.State {
	m.applyPendingTxDis()

	<-m.EventHandle()
	return m.NextState()
}

// setTxDis stashes a TX-disable write from the controller. The value
// reaches hardware immediately when READY, otherwise on the next
// READY entry. Runs on controller threads; never blocks on the worker.
func (m *ModuleFSM) setTxDis(value any) error {
	disabled, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: tx-dis expects bool", tai.ErrInvalidParameter)
	}

	m.mu.Lock()
	m.txDis = disabled
	m.txDisSet = true
	ready := m.CurrentState() == fsm.StateReady
	m.txDisPending = !ready
	m.mu.Unlock()

	status := tai.StatusSuccess
	if ready {
		ctx, cancel := context.WithTimeout(context.Background(), HardwareTimeout)
		defer cancel()
		start := time.Now()
		err := m.hw.SetTxDis(ctx, disabled)
		m.logHardware("set-tx-dis", time.Since(start), err)
		if err != nil {
			status = tai.StatusFailure
			m.logAttribute(log.AttributeOpSet, tai.NetworkIfAttrTxDis, "tx-dis",
				fmt.Sprintf("%t", disabled), status)
			return fmt.Errorf("%w: set-tx-dis: %v", tai.ErrFailure, err)
		}
	}

	m.logAttribute(log.AttributeOpSet, tai.NetworkIfAttrTxDis, "tx-dis",
		fmt.Sprintf("%t", disabled), status)
	return nil
}

// getTxDis returns the last-known cached value; if never set it fails
// with ATTR_NOT_SUPPORTED.
func (m *ModuleFSM) getTxDis() (any, error) {
	m.mu.Lock()
	set := m.txDisSet
	disabled := m.txDis
	m.mu.Unlock()

	if !set {
		m.logAttribute(log.AttributeOpGet, tai.NetworkIfAttrTxDis, "tx-dis",
			"", tai.StatusAttrNotSupported)
		return nil, fmt.Errorf("%w: tx-dis has never been set", tai.ErrAttrNotSupported)
	}

	m.logAttribute(log.AttributeOpGet, tai.NetworkIfAttrTxDis, "tx-dis",
		fmt.Sprintf("%t", disabled), tai.StatusSuccess)
	return disabled, nil
}

// applyPendingTxDis pushes a deferred TX-disable value to hardware.
// Runs on the worker at READY entry.
func (m *ModuleFSM) applyPendingTxDis() {
	m.mu.Lock()
	pending := m.txDisSet && m.txDisPending
	disabled := m.txDis
	m.txDisPending = false
	m.mu.Unlock()

	if !pending {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), HardwareTimeout)
	defer cancel()
	start := time.Now()
	err := m.hw.SetTxDis(ctx, disabled)
	m.logHardware("set-tx-dis", time.Since(start), err)
	if err != nil {
		m.services.Alarm(m.moduleID(), tai.AlarmSeverityMajor,
			"deferred set-tx-dis failed: "+err.Error())
		m.logError("deferred set-tx-dis", err)
	}
}

// moduleID returns the installed module's id, or the null id before
// installation.
func (m *ModuleFSM) moduleID() oid.ID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.module == nil {
		return oid.None
	}
	return m.module.id
}

// location returns the installed module's location, or empty.
func (m *ModuleFSM) location() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.module == nil {
		return ""
	}
	return m.module.location
}

func (m *ModuleFSM) logHardware(op string, d time.Duration, err error) {
	if err != nil {
		m.services.Logger.Warn("hardware access failed",
			"module", m.moduleID().String(), "op", op, "err", err)
	}
	m.services.EventLogger.Log(log.Event{
		Timestamp: time.Now(),
		ObjectID:  m.moduleID(),
		RunID:     m.runID,
		Category:  log.CategoryHardware,
		Location:  m.location(),
		Hardware: &log.HardwareEvent{
			Op:       op,
			Duration: d,
			Success:  err == nil,
		},
	})
}

func (m *ModuleFSM) logAttribute(op log.AttributeOp, id tai.AttrID, name, value string, status tai.Status) {
	m.services.EventLogger.Log(log.Event{
		Timestamp: time.Now(),
		ObjectID:  m.moduleID(),
		RunID:     m.runID,
		Category:  log.CategoryAttribute,
		Location:  m.location(),
		Attribute: &log.AttributeEvent{
			Op:     op,
			AttrID: uint32(id),
			Name:   name,
			Value:  value,
			Status: status.String(),
		},
	})
}

func (m *ModuleFSM) logError(op string, err error) {
	status := tai.StatusFailure
	if errors.Is(err, context.DeadlineExceeded) {
		status = tai.StatusTimeout
	}
	code := int32(status)
	m.services.EventLogger.Log(log.Event{
		Timestamp: time.Now(),
		ObjectID:  m.moduleID(),
		RunID:     m.runID,
		Category:  log.CategoryError,
		Location:  m.location(),
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Context: op,
			Code:    &code,
		},
	})
}
