package smallptr

import "unsafe"

// A pointer and its address must be the same size.
var (
	_ [unsafe.Sizeof(uintptr(0)) - unsafe.Sizeof(unsafe.Pointer(nil))]struct{}
	_ [unsafe.Sizeof(unsafe.Pointer(nil)) - unsafe.Sizeof(uintptr(0))]struct{}
)

// addrOf and pointerAt are the only conversions between pointers and packed
// addresses.
func addrOf(p unsafe.Pointer) uintptr {
	return uintptr(p)
}

// pointerAt is the single place a packed address becomes a pointer again.
// checkptr cannot tell the address came from a live pointer, so it is
// disabled here; race builds would otherwise abort on every Unpack.
//
//go:nocheckptr
func pointerAt(addr uintptr) unsafe.Pointer {
	return unsafe.Pointer(addr)
}
