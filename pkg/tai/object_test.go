package tai

import (
	"errors"
	"testing"

	"github.com/tai-platform/tai-go/pkg/oid"
)

func testSchema() []*AttributeMetadata {
	return []*AttributeMetadata{
		{
			ID:        NetworkIfAttrIndex,
			Name:      "index",
			Type:      DataTypeUint32,
			Access:    AccessCreateOnly,
			Mandatory: true,
		},
		{
			ID:     NetworkIfAttrTxDis,
			Name:   "tx-dis",
			Type:   DataTypeBool,
			Access: AccessReadWrite,
		},
	}
}

func TestNewObjectAppliesCreationList(t *testing.T) {
	obj, err := NewObject(oid.ObjectTypeNetworkIf, testSchema(), []AttributeValue{
		{ID: NetworkIfAttrIndex, Value: uint32(0)},
	}, nil)
	if err != nil {
		t.Fatalf("NewObject failed: %v", err)
	}

	if obj.Type() != oid.ObjectTypeNetworkIf {
		t.Errorf("Type = %s, want NETWORKIF", obj.Type())
	}

	v, err := obj.GetAttribute(NetworkIfAttrIndex)
	if err != nil {
		t.Fatalf("GetAttribute failed: %v", err)
	}
	if v != uint32(0) {
		t.Errorf("index = %v, want 0", v)
	}
}

func TestNewObjectRejectsUnknownAttribute(t *testing.T) {
	_, err := NewObject(oid.ObjectTypeNetworkIf, testSchema(), []AttributeValue{
		{ID: HostIfAttrIndex, Value: uint32(0)},
	}, nil)
	if !errors.Is(err, ErrAttrNotSupported) {
		t.Errorf("expected ErrAttrNotSupported, got %v", err)
	}
}

func TestNewObjectRejectsBadValue(t *testing.T) {
	_, err := NewObject(oid.ObjectTypeNetworkIf, testSchema(), []AttributeValue{
		{ID: NetworkIfAttrIndex, Value: "zero"},
	}, nil)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestGetAttributeUnset(t *testing.T) {
	obj, err := NewObject(oid.ObjectTypeNetworkIf, testSchema(), nil, nil)
	if err != nil {
		t.Fatalf("NewObject failed: %v", err)
	}

	if _, err := obj.GetAttribute(NetworkIfAttrTxDis); !errors.Is(err, ErrAttrNotSupported) {
		t.Errorf("expected ErrAttrNotSupported for unset attribute, got %v", err)
	}
	if _, err := obj.GetAttribute(HostIfAttrIndex); !errors.Is(err, ErrAttrNotSupported) {
		t.Errorf("expected ErrAttrNotSupported for unknown attribute, got %v", err)
	}
}

func TestHookDispatch(t *testing.T) {
	type fakeFSM struct {
		value bool
		set   bool
	}
	ctx := &fakeFSM{}

	obj, err := NewObject(oid.ObjectTypeNetworkIf, testSchema(), nil, ctx)
	if err != nil {
		t.Fatalf("NewObject failed: %v", err)
	}
	if obj.UserContext() != ctx {
		t.Fatal("user context not preserved")
	}

	obj.RegisterHook(NetworkIfAttrTxDis, AttributeHook{
		Get: func(userCtx any) (any, error) {
			f := userCtx.(*fakeFSM)
			if !f.set {
				return nil, ErrAttrNotSupported
			}
			return f.value, nil
		},
		Set: func(userCtx any, value any) error {
			f := userCtx.(*fakeFSM)
			f.value = value.(bool)
			f.set = true
			return nil
		},
	})

	if _, err := obj.GetAttribute(NetworkIfAttrTxDis); !errors.Is(err, ErrAttrNotSupported) {
		t.Errorf("expected ErrAttrNotSupported before set, got %v", err)
	}

	if err := obj.SetAttribute(NetworkIfAttrTxDis, true); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	if !ctx.set || !ctx.value {
		t.Error("setter hook did not reach user context")
	}

	v, err := obj.GetAttribute(NetworkIfAttrTxDis)
	if err != nil {
		t.Fatalf("GetAttribute failed: %v", err)
	}
	if v != true {
		t.Errorf("tx-dis = %v, want true", v)
	}
}

func TestConfiguredForReady(t *testing.T) {
	schema := []*AttributeMetadata{
		{
			ID:              NetworkIfAttrTxDis,
			Name:            "tx-dis",
			Type:            DataTypeBool,
			Access:          AccessReadWrite,
			RequiredToReady: true,
		},
	}

	obj, err := NewObject(oid.ObjectTypeNetworkIf, schema, nil, nil)
	if err != nil {
		t.Fatalf("NewObject failed: %v", err)
	}

	if obj.ConfiguredForReady() {
		t.Error("expected not configured before required attribute is set")
	}
	if err := obj.SetAttribute(NetworkIfAttrTxDis, false); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	if !obj.ConfiguredForReady() {
		t.Error("expected configured after required attribute is set")
	}
}
