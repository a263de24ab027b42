package basic

import (
	"fmt"
	"sync"

	"github.com/tai-platform/tai-go/pkg/fsm"
	"github.com/tai-platform/tai-go/pkg/oid"
	"github.com/tai-platform/tai-go/pkg/tai"
)

// Object is the capability every platform object exposes to the
// controller: its id and generic attribute access.
type Object interface {
	ID() oid.ID
	Type() oid.ObjectType
	GetAttribute(id tai.AttrID) (any, error)
	SetAttribute(id tai.AttrID, value any) error
}

// Config configures a Platform.
type Config struct {
	// Services is the host service method table.
	Services tai.Services

	// NumModule / NumNetIf / NumHostIf override the platform limits.
	// Zero means the reference defaults (4 / 1 / 2).
	NumModule int
	NumNetIf  int
	NumHostIf int

	// NewHardware builds the hardware access for a module location.
	// Nil means NoopHardware.
	NewHardware func(location string) Hardware
}

// normalize fills defaults.
func (c Config) normalize() Config {
	if c.NumModule <= 0 {
		c.NumModule = NumModule
	}
	if c.NumNetIf <= 0 {
		c.NumNetIf = NumNetIf
	}
	if c.NumHostIf <= 0 {
		c.NumHostIf = NumHostIf
	}
	if c.NewHardware == nil {
		c.NewHardware = func(string) Hardware { return NoopHardware{} }
	}
	c.Services = c.Services.Normalize()
	return c
}

// Platform is the creation entry point. It dispatches object
// construction by requested type, validates mandatory attributes, and
// installs new objects under their owning module.
//
// The registry is guarded by one coarse mutex; creation is rare and
// steady-state attribute traffic goes directly to objects.
type Platform struct {
	services tai.Services

	numModule int
	numNetIf  int
	numHostIf int

	newHardware func(string) Hardware

	mu      sync.Mutex
	objects map[oid.ID]Object
	modules map[oid.ID]*Module
}

// NewPlatform creates a platform with the given configuration.
func NewPlatform(cfg Config) *Platform {
	cfg = cfg.normalize()
	return &Platform{
		services:    cfg.Services,
		numModule:   cfg.NumModule,
		numNetIf:    cfg.NumNetIf,
		numHostIf:   cfg.NumHostIf,
		newHardware: cfg.NewHardware,
		objects:     make(map[oid.ID]Object),
		modules:     make(map[oid.ID]*Module),
	}
}

// Create constructs an object of the requested type from the
// controller's attribute list and returns its id.
//
// MODULE creation allocates a fresh FSM, installs the module and
// starts the worker; moduleID must be the null id. NETWORKIF and
// HOSTIF are created under the module named by moduleID and installed
// into the shared FSM set-once (a second install of a filled slot
// fails with ITEM_ALREADY_EXISTS). Other types fail with
// NOT_SUPPORTED.
func (p *Platform) Create(typ oid.ObjectType, moduleID oid.ID, attrs []tai.AttributeValue) (oid.ID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch typ {
	case oid.ObjectTypeModule:
		return p.createModule(moduleID, attrs)
	case oid.ObjectTypeNetworkIf:
		return p.createNetIf(moduleID, attrs)
	case oid.ObjectTypeHostIf:
		return p.createHostIf(moduleID, attrs)
	default:
		return oid.None, fmt.Errorf("%w: object type %s", tai.ErrNotSupported, typ)
	}
}

func (p *Platform) createModule(moduleID oid.ID, attrs []tai.AttributeValue) (oid.ID, error) {
	if moduleID != oid.None {
		return oid.None, fmt.Errorf("%w: module creation takes the null module id",
			tai.ErrInvalidParameter)
	}

	mfsm := NewModuleFSM(p.services, nil, p.numNetIf, p.numHostIf)
	module, err := NewModule(attrs, mfsm)
	if err != nil {
		// Nothing registered and the worker never started: the FSM is
		// discarded with the error.
		return oid.None, err
	}
	mfsm.hw = p.newHardware(module.Location())

	if existing, ok := p.modules[module.ID()]; ok {
		// A module slot can be reused only once its previous FSM has
		// terminated; there is no Remove to free it explicitly.
		if existing.FSM().CurrentState() != fsm.StateEnd {
			return oid.None, fmt.Errorf("%w: module %s is live at location %s",
				tai.ErrItemAlreadyExists, existing.ID(), existing.Location())
		}
		p.dropModuleObjects(existing.ID())
	}

	if len(p.modules) >= p.numModule {
		return oid.None, fmt.Errorf("%w: platform has %d module slots",
			tai.ErrInvalidParameter, p.numModule)
	}

	if err := mfsm.SetModule(module); err != nil {
		return oid.None, err
	}

	p.objects[module.ID()] = module
	p.modules[module.ID()] = module

	if err := mfsm.Start(); err != nil {
		delete(p.objects, module.ID())
		delete(p.modules, module.ID())
		return oid.None, fmt.Errorf("%w: %v", tai.ErrFailure, err)
	}

	return module.ID(), nil
}

func (p *Platform) createNetIf(moduleID oid.ID, attrs []tai.AttributeValue) (oid.ID, error) {
	module, ok := p.modules[moduleID]
	if !ok {
		return oid.None, fmt.Errorf("%w: no module %s", tai.ErrInvalidObjectID, moduleID)
	}

	// The envelope constructor enforces the module's interface limit.
	netif, err := NewNetIf(module, attrs)
	if err != nil {
		return oid.None, err
	}

	if err := module.FSM().SetNetIf(netif); err != nil {
		return oid.None, err
	}

	p.objects[netif.ID()] = netif
	return netif.ID(), nil
}

func (p *Platform) createHostIf(moduleID oid.ID, attrs []tai.AttributeValue) (oid.ID, error) {
	module, ok := p.modules[moduleID]
	if !ok {
		return oid.None, fmt.Errorf("%w: no module %s", tai.ErrInvalidObjectID, moduleID)
	}

	hostif, err := NewHostIf(module, attrs)
	if err != nil {
		return oid.None, err
	}

	if err := module.FSM().SetHostIf(hostif, int(hostif.Index())); err != nil {
		return oid.None, err
	}

	p.objects[hostif.ID()] = hostif
	return hostif.ID(), nil
}

// dropModuleObjects forgets a terminated module and its sub-objects.
// Caller holds p.mu.
func (p *Platform) dropModuleObjects(moduleID oid.ID) {
	for id := range p.objects {
		owner, err := oid.ModuleID(id)
		if err == nil && owner == moduleID {
			delete(p.objects, id)
		}
	}
	delete(p.modules, moduleID)
}

// Remove is not supported by this platform. A production
// implementation must quiesce the FSM before detaching objects.
func (p *Platform) Remove(oid.ID) error {
	return tai.ErrNotSupported
}

// GetObjectType decodes the type tag of an id. Pure function of the
// id bit layout.
func (p *Platform) GetObjectType(id oid.ID) (oid.ObjectType, error) {
	typ, err := oid.DecodeType(id)
	if err != nil {
		return oid.ObjectTypeNull, fmt.Errorf("%w: %v", tai.ErrInvalidObjectID, err)
	}
	return typ, nil
}

// GetModuleID rebuilds the owning module's id from any object id.
// Pure function of the id bit layout.
func (p *Platform) GetModuleID(id oid.ID) (oid.ID, error) {
	moduleID, err := oid.ModuleID(id)
	if err != nil {
		return oid.None, fmt.Errorf("%w: %v", tai.ErrInvalidObjectID, err)
	}
	return moduleID, nil
}

// GetObject returns the live object registered under id.
func (p *Platform) GetObject(id oid.ID) (Object, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	obj, ok := p.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: no object %s", tai.ErrInvalidObjectID, id)
	}
	return obj, nil
}

// Modules returns the live modules, for host inspection.
func (p *Platform) Modules() []*Module {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := make([]*Module, 0, len(p.modules))
	for _, m := range p.modules {
		result = append(result, m)
	}
	return result
}

// SetAttribute writes one attribute on the object named by id and
// wakes the owning FSM so WAITING_CONFIGURATION re-evaluates its
// predicate.
func (p *Platform) SetAttribute(id oid.ID, av tai.AttributeValue) error {
	obj, err := p.GetObject(id)
	if err != nil {
		return err
	}
	if err := obj.SetAttribute(av.ID, av.Value); err != nil {
		return err
	}

	if mfsm := p.fsmOf(id); mfsm != nil {
		mfsm.NotifyConfigChanged()
	}
	return nil
}

// GetAttribute reads one attribute from the object named by id.
func (p *Platform) GetAttribute(id oid.ID, attrID tai.AttrID) (any, error) {
	obj, err := p.GetObject(id)
	if err != nil {
		return nil, err
	}
	return obj.GetAttribute(attrID)
}

// fsmOf resolves the FSM owning any object id, or nil.
func (p *Platform) fsmOf(id oid.ID) *ModuleFSM {
	moduleID, err := oid.ModuleID(id)
	if err != nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	module, ok := p.modules[moduleID]
	if !ok {
		return nil
	}
	return module.FSM()
}

// Close drives every live FSM to END and waits for the workers to
// stop. The platform must not be used afterwards.
func (p *Platform) Close() {
	p.mu.Lock()
	fsms := make([]*ModuleFSM, 0, len(p.modules))
	for _, m := range p.modules {
		fsms = append(fsms, m.FSM())
	}
	p.mu.Unlock()

	for _, f := range fsms {
		f.Shutdown()
	}
	for _, f := range fsms {
		<-f.Done()
	}
}
