//go:build !amd64 && !arm64

package common

// MaxPtrBits is the number of significant bits in a user space address.
const MaxPtrBits = PtrBits
