package oid

import (
	"errors"
	"testing"
)

func TestEncodeModule(t *testing.T) {
	id := EncodeModule(3)

	if id != 0x0001_0000_0000_0003 {
		t.Errorf("expected 0x0001000000000003, got %s", id)
	}

	typ, err := DecodeType(id)
	if err != nil {
		t.Fatalf("DecodeType failed: %v", err)
	}
	if typ != ObjectTypeModule {
		t.Errorf("expected MODULE, got %s", typ)
	}

	idx, err := DecodeModuleIndex(id)
	if err != nil {
		t.Fatalf("DecodeModuleIndex failed: %v", err)
	}
	if idx != 3 {
		t.Errorf("expected module index 3, got %d", idx)
	}
}

func TestEncodeSubObjects(t *testing.T) {
	tests := []struct {
		name      string
		typ       ObjectType
		moduleIdx uint32
		subIdx    uint32
		want      ID
	}{
		{"NetIfIndex0", ObjectTypeNetworkIf, 3, 0, 0x0002_0000_0000_0300},
		{"HostIfIndex0", ObjectTypeHostIf, 3, 0, 0x0003_0000_0000_0300},
		{"HostIfIndex1", ObjectTypeHostIf, 3, 1, 0x0003_0000_0000_0301},
		{"NetIfModule255", ObjectTypeNetworkIf, 255, 0, 0x0002_0000_0000_ff00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.typ, tt.moduleIdx, tt.subIdx)
			if got != tt.want {
				t.Errorf("Encode(%s, %d, %d) = %s, want %s",
					tt.typ, tt.moduleIdx, tt.subIdx, got, tt.want)
			}
		})
	}
}

// TestRoundTrip verifies DecodeType(Encode(t, m, s)) == t for every
// defined type across the full index range.
func TestRoundTrip(t *testing.T) {
	for _, typ := range []ObjectType{ObjectTypeModule, ObjectTypeNetworkIf, ObjectTypeHostIf} {
		for m := uint32(0); m <= 255; m += 5 {
			for s := uint32(0); s <= 255; s += 5 {
				id := Encode(typ, m, s)
				got, err := DecodeType(id)
				if err != nil {
					t.Fatalf("DecodeType(%s) failed: %v", id, err)
				}
				if got != typ {
					t.Fatalf("DecodeType(%s) = %s, want %s", id, got, typ)
				}
			}
		}
	}
}

func TestEncodeTruncation(t *testing.T) {
	// Values outside [0,255] are truncated to their low byte.
	id := Encode(ObjectTypeNetworkIf, 0x103, 0x201)
	if id != Encode(ObjectTypeNetworkIf, 3, 1) {
		t.Errorf("expected truncation to low byte, got %s", id)
	}
}

func TestDecodeTypeInvalid(t *testing.T) {
	for _, id := range []ID{0, ID(uint64(99) << typeShift), ^ID(0)} {
		if _, err := DecodeType(id); !errors.Is(err, ErrInvalidObjectID) {
			t.Errorf("DecodeType(%s): expected ErrInvalidObjectID, got %v", id, err)
		}
	}
}

func TestModuleID(t *testing.T) {
	module := EncodeModule(3)

	t.Run("FromNetIf", func(t *testing.T) {
		id, err := ModuleID(Encode(ObjectTypeNetworkIf, 3, 0))
		if err != nil {
			t.Fatalf("ModuleID failed: %v", err)
		}
		if id != module {
			t.Errorf("expected %s, got %s", module, id)
		}
	})

	t.Run("FromHostIf", func(t *testing.T) {
		id, err := ModuleID(Encode(ObjectTypeHostIf, 3, 1))
		if err != nil {
			t.Fatalf("ModuleID failed: %v", err)
		}
		if id != module {
			t.Errorf("expected %s, got %s", module, id)
		}
	})

	t.Run("FromModule", func(t *testing.T) {
		id, err := ModuleID(module)
		if err != nil {
			t.Fatalf("ModuleID failed: %v", err)
		}
		if id != module {
			t.Errorf("expected %s, got %s", module, id)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if _, err := ModuleID(None); !errors.Is(err, ErrInvalidObjectID) {
			t.Errorf("expected ErrInvalidObjectID, got %v", err)
		}
	})
}

func TestSubIndex(t *testing.T) {
	if got := SubIndex(Encode(ObjectTypeHostIf, 3, 1)); got != 1 {
		t.Errorf("expected sub-index 1, got %d", got)
	}
}

func TestIDString(t *testing.T) {
	id := Encode(ObjectTypeNetworkIf, 3, 0)
	if got := id.String(); got != "0x0002000000000300" {
		t.Errorf("unexpected String(): %s", got)
	}
}
