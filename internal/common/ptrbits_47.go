//go:build amd64 || arm64

package common

// MaxPtrBits is the number of significant bits in a user space address.
// amd64 has 48-bit virtual addresses and addresses with bit 47 set belong to
// the kernel on Linux, macOS and Windows, so user pointers are 47 bits
// zero-extended to 64. arm64 user addresses keep bits 63:48 clear as well.
const MaxPtrBits = 47
