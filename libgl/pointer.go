package libgl

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Pointer returns the address of the first element of a slice, the value behind a pointer
// or the address held by a uintptr. Empty slices and nil yield a nil pointer.
func Pointer(data any) unsafe.Pointer {
	if data == nil {
		return nil
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return v.UnsafePointer()
	case reflect.Uintptr:
		return unsafe.Pointer(uintptr(v.Uint()))
	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}
		return v.Index(0).Addr().UnsafePointer()
	}
	panic(fmt.Errorf("unsupported type %s; must be a slice, uintptr or pointer to a value", v.Type()))
}
