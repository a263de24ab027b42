package basic

import (
	"fmt"

	"github.com/tai-platform/tai-go/pkg/oid"
	"github.com/tai-platform/tai-go/pkg/tai"
)

// hostifSchema declares the attributes a HostIf supports. The index
// range follows the owning platform's lane limit.
func hostifSchema(numHostIf int) []*tai.AttributeMetadata {
	return []*tai.AttributeMetadata{
		{
			ID:          tai.HostIfAttrIndex,
			Name:        "index",
			Type:        tai.DataTypeUint32,
			Access:      tai.AccessCreateOnly,
			Mandatory:   true,
			MaxValue:    uint32(numHostIf - 1),
			Description: "Client-side lane index within the module",
		},
	}
}

// HostIf is the envelope for a client-side electrical lane. It shares
// its owning module's FSM.
type HostIf struct {
	*tai.Object

	id  oid.ID
	fsm *ModuleFSM
}

// NewHostIf builds a hostif under its owning module from the
// controller's attribute list. The INDEX attribute is mandatory and
// must be below the module's lane count.
func NewHostIf(module *Module, attrs []tai.AttributeValue) (*HostIf, error) {
	index, err := findIndexAttr(attrs, tai.HostIfAttrIndex)
	if err != nil {
		return nil, err
	}

	fsm := module.FSM()
	if index >= uint32(fsm.numHostIf) {
		return nil, fmt.Errorf("%w: hostif index %d out of range [0,%d)",
			tai.ErrInvalidParameter, index, fsm.numHostIf)
	}

	base, err := tai.NewObject(oid.ObjectTypeHostIf, hostifSchema(fsm.numHostIf), attrs, fsm)
	if err != nil {
		return nil, err
	}

	return &HostIf{
		Object: base,
		id:     oid.Encode(oid.ObjectTypeHostIf, uint32(oid.SubIndex(module.ID())), index),
		fsm:    fsm,
	}, nil
}

// ID returns the hostif's object id.
func (h *HostIf) ID() oid.ID {
	return h.id
}

// Index returns the hostif's lane index within its module.
func (h *HostIf) Index() uint32 {
	return uint32(oid.SubIndex(h.id))
}
