package tai

import (
	"fmt"

	"github.com/tai-platform/tai-go/pkg/oid"
)

// AttributeHook routes get/set traffic for one attribute to
// platform-specific logic instead of the generic store. The opaque
// user context supplied at object construction is threaded through,
// which is how hooks re-associate with per-module state (the FSM)
// without runtime type inspection of the object itself.
type AttributeHook struct {
	// Get produces the attribute value. Called on the controller's
	// thread; must not block on the FSM worker.
	Get func(userCtx any) (any, error)

	// Set applies a new value. Called on the controller's thread;
	// must not block on the FSM worker.
	Set func(userCtx any, value any) error
}

// Object is the generic base every platform object embeds. It stores
// the attribute set declared by the object's schema and dispatches
// get/set traffic through registered hooks.
type Object struct {
	typ        oid.ObjectType
	userCtx    any
	attributes map[AttrID]*Attribute
	hooks      map[AttrID]AttributeHook
}

// NewObject builds an object base of the given type.
//
// schema declares the supported attributes; attrs is the creation
// attribute list received from the controller and is validated
// against the schema (unknown ids fail with ATTR_NOT_SUPPORTED).
// userCtx is the opaque pointer later passed to attribute hooks.
func NewObject(typ oid.ObjectType, schema []*AttributeMetadata, attrs []AttributeValue, userCtx any) (*Object, error) {
	o := &Object{
		typ:        typ,
		userCtx:    userCtx,
		attributes: make(map[AttrID]*Attribute, len(schema)),
		hooks:      make(map[AttrID]AttributeHook),
	}
	for _, meta := range schema {
		o.attributes[meta.ID] = NewAttribute(meta)
	}

	for _, av := range attrs {
		attr, ok := o.attributes[av.ID]
		if !ok {
			return nil, fmt.Errorf("%w: attribute 0x%04x", ErrAttrNotSupported, uint32(av.ID))
		}
		if !attr.Metadata().Access.CanCreate() && !attr.Metadata().Access.CanWrite() {
			return nil, fmt.Errorf("%w: attribute %s is not settable", ErrInvalidParameter, attr.Metadata().Name)
		}
		if err := attr.SetValueInternal(av.Value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
		}
	}

	return o, nil
}

// Type returns the object type.
func (o *Object) Type() oid.ObjectType {
	return o.typ
}

// UserContext returns the opaque pointer supplied at construction.
func (o *Object) UserContext() any {
	return o.userCtx
}

// RegisterHook installs a get/set hook for one attribute. Hooks are
// installed during object construction, before any controller traffic
// can reach the object.
func (o *Object) RegisterHook(id AttrID, hook AttributeHook) {
	o.hooks[id] = hook
}

// Attribute returns the attribute instance for id, or nil if the
// object does not support it.
func (o *Object) Attribute(id AttrID) *Attribute {
	return o.attributes[id]
}

// GetAttribute reads one attribute. Hooked attributes are served by
// their hook; plain attributes come from the generic store. Reading
// an attribute that has never been set fails with ATTR_NOT_SUPPORTED.
func (o *Object) GetAttribute(id AttrID) (any, error) {
	if hook, ok := o.hooks[id]; ok && hook.Get != nil {
		return hook.Get(o.userCtx)
	}

	attr, ok := o.attributes[id]
	if !ok || !attr.Metadata().Access.CanRead() {
		return nil, fmt.Errorf("%w: attribute 0x%04x", ErrAttrNotSupported, uint32(id))
	}
	if !attr.IsSet() {
		return nil, fmt.Errorf("%w: attribute %s has no value", ErrAttrNotSupported, attr.Metadata().Name)
	}
	return attr.Value(), nil
}

// SetAttribute writes one attribute. Hooked attributes are handled by
// their hook; plain attributes go to the generic store.
func (o *Object) SetAttribute(id AttrID, value any) error {
	attr, ok := o.attributes[id]
	if !ok {
		return fmt.Errorf("%w: attribute 0x%04x", ErrAttrNotSupported, uint32(id))
	}

	if hook, ok := o.hooks[id]; ok && hook.Set != nil {
		if err := hook.Set(o.userCtx, value); err != nil {
			return err
		}
		// Mirror into the store so RequiredToReady tracking and bulk
		// reads observe the value.
		return attr.SetValueInternal(value)
	}

	if err := attr.SetValue(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return nil
}

// SetAttributes applies an attribute list in order. The first failure
// stops the walk; earlier writes are not rolled back.
func (o *Object) SetAttributes(attrs []AttributeValue) error {
	for _, av := range attrs {
		if err := o.SetAttribute(av.ID, av.Value); err != nil {
			return err
		}
	}
	return nil
}

// ConfiguredForReady reports whether every attribute flagged
// RequiredToReady has been set.
func (o *Object) ConfiguredForReady() bool {
	for _, attr := range o.attributes {
		if attr.Metadata().RequiredToReady && !attr.IsSet() {
			return false
		}
	}
	return true
}
