package basic

import (
	"fmt"

	"github.com/tai-platform/tai-go/pkg/oid"
	"github.com/tai-platform/tai-go/pkg/tai"
)

// netifSchema declares the attributes a NetIf supports. The index
// range follows the owning platform's interface limit.
func netifSchema(numNetIf int) []*tai.AttributeMetadata {
	return []*tai.AttributeMetadata{
		{
			ID:          tai.NetworkIfAttrIndex,
			Name:        "index",
			Type:        tai.DataTypeUint32,
			Access:      tai.AccessCreateOnly,
			Mandatory:   true,
			MaxValue:    uint32(numNetIf - 1),
			Description: "Line-side interface index within the module",
		},
		{
			ID:          tai.NetworkIfAttrTxDis,
			Name:        "tx-dis",
			Type:        tai.DataTypeBool,
			Access:      tai.AccessReadWrite,
			Description: "TX laser disable",
		},
	}
}

// NetIf is the envelope for a line-side optical port. It shares its
// owning module's FSM; TX-disable traffic is routed there through the
// user-context pointer.
type NetIf struct {
	*tai.Object

	id  oid.ID
	fsm *ModuleFSM
}

// NewNetIf builds a netif under its owning module from the
// controller's attribute list. The INDEX attribute is mandatory and
// must be below the module's line-side interface count.
func NewNetIf(module *Module, attrs []tai.AttributeValue) (*NetIf, error) {
	index, err := findIndexAttr(attrs, tai.NetworkIfAttrIndex)
	if err != nil {
		return nil, err
	}

	fsm := module.FSM()
	if index >= uint32(fsm.numNetIf) {
		return nil, fmt.Errorf("%w: netif index %d out of range [0,%d)",
			tai.ErrInvalidParameter, index, fsm.numNetIf)
	}

	base, err := tai.NewObject(oid.ObjectTypeNetworkIf, netifSchema(fsm.numNetIf), attrs, fsm)
	if err != nil {
		return nil, err
	}

	n := &NetIf{
		Object: base,
		id:     oid.Encode(oid.ObjectTypeNetworkIf, uint32(oid.SubIndex(module.ID())), index),
		fsm:    fsm,
	}

	// Route TX-disable through the FSM via the opaque user context.
	n.RegisterHook(tai.NetworkIfAttrTxDis, tai.AttributeHook{
		Get: func(userCtx any) (any, error) {
			return userCtx.(*ModuleFSM).getTxDis()
		},
		Set: func(userCtx any, value any) error {
			return userCtx.(*ModuleFSM).setTxDis(value)
		},
	})

	return n, nil
}

// ID returns the netif's object id.
func (n *NetIf) ID() oid.ID {
	return n.id
}

// Index returns the netif's index within its module.
func (n *NetIf) Index() uint32 {
	return uint32(oid.SubIndex(n.id))
}

// findIndexAttr scans a creation attribute list for the mandatory
// index attribute.
func findIndexAttr(attrs []tai.AttributeValue, id tai.AttrID) (uint32, error) {
	for _, av := range attrs {
		if av.ID != id {
			continue
		}
		index, ok := av.Value.(uint32)
		if !ok {
			return 0, fmt.Errorf("%w: index expects uint32", tai.ErrInvalidParameter)
		}
		return index, nil
	}
	return 0, fmt.Errorf("%w: interface index", tai.ErrMandatoryAttributeMissing)
}
