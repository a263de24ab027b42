package basic

import (
	"errors"
	"testing"

	"github.com/tai-platform/tai-go/pkg/oid"
	"github.com/tai-platform/tai-go/pkg/tai"
)

func newTestModule(t *testing.T, loc string) *Module {
	t.Helper()
	mfsm := NewModuleFSM(tai.Services{}, NoopHardware{}, NumNetIf, NumHostIf)
	module, err := NewModule(locationAttrs(loc), mfsm)
	if err != nil {
		t.Fatalf("NewModule(%q) failed: %v", loc, err)
	}
	return module
}

func TestModuleEnvelope(t *testing.T) {
	module := newTestModule(t, "3")

	if module.ID() != oid.EncodeModule(3) {
		t.Errorf("id = %s, want %s", module.ID(), oid.EncodeModule(3))
	}
	if module.Location() != "3" {
		t.Errorf("location = %q, want \"3\"", module.Location())
	}
	if module.Type() != oid.ObjectTypeModule {
		t.Errorf("type = %s, want MODULE", module.Type())
	}

	// The LOCATION attribute is readable through the generic base.
	v, err := module.GetAttribute(tai.ModuleAttrLocation)
	if err != nil {
		t.Fatalf("GetAttribute failed: %v", err)
	}
	if v != "3" {
		t.Errorf("location attribute = %v, want \"3\"", v)
	}
}

func TestModuleUserContextIsFSM(t *testing.T) {
	mfsm := NewModuleFSM(tai.Services{}, NoopHardware{}, NumNetIf, NumHostIf)
	module, err := NewModule(locationAttrs("3"), mfsm)
	if err != nil {
		t.Fatalf("NewModule failed: %v", err)
	}
	if module.UserContext() != mfsm {
		t.Error("module user context is not the FSM handle")
	}
	if module.FSM() != mfsm {
		t.Error("module FSM handle mismatch")
	}
}

func TestNetIfEnvelope(t *testing.T) {
	module := newTestModule(t, "3")

	netif, err := NewNetIf(module, []tai.AttributeValue{
		{ID: tai.NetworkIfAttrIndex, Value: uint32(0)},
	})
	if err != nil {
		t.Fatalf("NewNetIf failed: %v", err)
	}

	if netif.ID() != oid.Encode(oid.ObjectTypeNetworkIf, 3, 0) {
		t.Errorf("id = %s", netif.ID())
	}
	if netif.Index() != 0 {
		t.Errorf("index = %d, want 0", netif.Index())
	}
	if netif.UserContext() != module.FSM() {
		t.Error("netif user context is not the module's FSM")
	}
}

func TestNetIfIndexErrors(t *testing.T) {
	module := newTestModule(t, "3")

	t.Run("Missing", func(t *testing.T) {
		_, err := NewNetIf(module, nil)
		if !errors.Is(err, tai.ErrMandatoryAttributeMissing) {
			t.Errorf("expected MANDATORY_ATTRIBUTE_MISSING, got %v", err)
		}
	})

	t.Run("WrongType", func(t *testing.T) {
		_, err := NewNetIf(module, []tai.AttributeValue{
			{ID: tai.NetworkIfAttrIndex, Value: "0"},
		})
		if !errors.Is(err, tai.ErrInvalidParameter) {
			t.Errorf("expected INVALID_PARAMETER, got %v", err)
		}
	})
}

func TestHostIfEnvelope(t *testing.T) {
	module := newTestModule(t, "3")

	hostif, err := NewHostIf(module, []tai.AttributeValue{
		{ID: tai.HostIfAttrIndex, Value: uint32(1)},
	})
	if err != nil {
		t.Fatalf("NewHostIf failed: %v", err)
	}

	if hostif.ID() != oid.Encode(oid.ObjectTypeHostIf, 3, 1) {
		t.Errorf("id = %s", hostif.ID())
	}
	if hostif.Index() != 1 {
		t.Errorf("index = %d, want 1", hostif.Index())
	}

	t.Run("IndexOutOfRange", func(t *testing.T) {
		_, err := NewHostIf(module, []tai.AttributeValue{
			{ID: tai.HostIfAttrIndex, Value: uint32(NumHostIf)},
		})
		if !errors.Is(err, tai.ErrInvalidParameter) {
			t.Errorf("expected INVALID_PARAMETER, got %v", err)
		}
	})

	t.Run("IndexMissing", func(t *testing.T) {
		_, err := NewHostIf(module, nil)
		if !errors.Is(err, tai.ErrMandatoryAttributeMissing) {
			t.Errorf("expected MANDATORY_ATTRIBUTE_MISSING, got %v", err)
		}
	})
}

// Sub-object ids embed the owning module's index: the module-index
// byte of a netif/hostif id equals the low byte of the module's id.
func TestSubObjectIDCarriesModuleIndex(t *testing.T) {
	module := newTestModule(t, "42")

	netif, err := NewNetIf(module, []tai.AttributeValue{
		{ID: tai.NetworkIfAttrIndex, Value: uint32(0)},
	})
	if err != nil {
		t.Fatalf("NewNetIf failed: %v", err)
	}

	idx, err := oid.DecodeModuleIndex(netif.ID())
	if err != nil {
		t.Fatalf("DecodeModuleIndex failed: %v", err)
	}
	if idx != uint8(module.ID()&0xff) {
		t.Errorf("module index %d does not match module id %s", idx, module.ID())
	}
}
