package libgl

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Pointer returns the address of the first element of a slice, the value behind a pointer
// or the raw address itself. Empty slices have no address and yield nil.
func Pointer(data any) unsafe.Pointer {
	if data == nil {
		return unsafe.Pointer(nil)
	}
	if ptr, ok := data.(unsafe.Pointer); ok {
		return ptr
	}
	var addr unsafe.Pointer
	v := reflect.ValueOf(data)
	switch v.Type().Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return unsafe.Pointer(nil)
		}
		addr = unsafe.Pointer(v.Elem().UnsafeAddr())
	case reflect.Uintptr:
		addr = unsafe.Pointer(data.(uintptr))
	case reflect.Slice:
		if v.Len() == 0 {
			return unsafe.Pointer(nil)
		}
		addr = unsafe.Pointer(v.Index(0).UnsafeAddr())
	default:
		panic(fmt.Errorf("unsupported type %s; must be a slice, uintptr or pointer to a value", v.Type()))
	}
	return addr
}
