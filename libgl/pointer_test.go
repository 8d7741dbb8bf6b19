package libgl

import (
	"testing"
	"unsafe"
)

func TestPointer(t *testing.T) {
	data := []float32{1, 2, 3}
	if Pointer(data) != unsafe.Pointer(&data[0]) {
		t.Error("slice should point to its first element")
	}
	value := uint16(7)
	if Pointer(&value) != unsafe.Pointer(&value) {
		t.Error("pointer should point to its value")
	}
	raw := unsafe.Pointer(&value)
	if Pointer(raw) != raw {
		t.Error("unsafe pointer should be passed through")
	}
	if Pointer(uintptr(16)) == nil {
		t.Error("uintptr offsets should be kept")
	}
}

func TestPointerEmpty(t *testing.T) {
	if Pointer(nil) != nil {
		t.Error("nil should yield nil")
	}
	if Pointer([]uint16{}) != nil {
		t.Error("empty slice should yield nil")
	}
	var ptr *float32
	if Pointer(ptr) != nil {
		t.Error("nil pointer should yield nil")
	}
}

func TestPointerUnsupported(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a plain value")
		}
	}()
	Pointer(42)
}
