package basic

import (
	"fmt"
	"strconv"

	"github.com/tai-platform/tai-go/pkg/oid"
	"github.com/tai-platform/tai-go/pkg/tai"
)

// Widely-used platform limits, matching the reference hardware.
const (
	// NumModule is the number of module slots on the platform.
	NumModule = 4

	// NumNetIf is the number of line-side interfaces per module.
	NumNetIf = 1

	// NumHostIf is the number of client-side lanes per module.
	NumHostIf = 2
)

// moduleSchema declares the attributes a Module supports.
func moduleSchema() []*tai.AttributeMetadata {
	return []*tai.AttributeMetadata{
		{
			ID:          tai.ModuleAttrLocation,
			Name:        "location",
			Type:        tai.DataTypeString,
			Access:      tai.AccessCreateOnly,
			Mandatory:   true,
			Description: "Decimal string naming the module slot (0-255)",
		},
	}
}

// Module is the envelope for a pluggable optical transponder.
// It owns (shares) the module FSM; the FSM's lifetime is tied to the
// module and any sub-interface holding it.
type Module struct {
	*tai.Object

	id       oid.ID
	location string
	fsm      *ModuleFSM
}

// NewModule builds a module from the controller's attribute list.
//
// The LOCATION attribute is mandatory: absent or empty fails with
// MANDATORY_ATTRIBUTE_MISSING. LOCATION must parse as a decimal
// integer in [0,255]; anything else is rejected with
// INVALID_PARAMETER (strict rejection, no truncation).
func NewModule(attrs []tai.AttributeValue, fsm *ModuleFSM) (*Module, error) {
	var loc string
	for _, av := range attrs {
		if av.ID == tai.ModuleAttrLocation {
			loc, _ = av.Value.(string)
			break
		}
	}
	if loc == "" {
		return nil, fmt.Errorf("%w: module location", tai.ErrMandatoryAttributeMissing)
	}

	idx, err := strconv.ParseUint(loc, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: location %q is not a decimal integer in [0,255]",
			tai.ErrInvalidParameter, loc)
	}

	base, err := tai.NewObject(oid.ObjectTypeModule, moduleSchema(), attrs, fsm)
	if err != nil {
		return nil, err
	}

	return &Module{
		Object:   base,
		id:       oid.EncodeModule(uint32(idx)),
		location: loc,
		fsm:      fsm,
	}, nil
}

// ID returns the module's object id.
func (m *Module) ID() oid.ID {
	return m.id
}

// Location returns the module's LOCATION attribute.
func (m *Module) Location() string {
	return m.location
}

// FSM returns the module's FSM handle, shared with its netif and
// hostifs.
func (m *Module) FSM() *ModuleFSM {
	return m.fsm
}
