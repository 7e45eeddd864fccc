// Package common holds the bit-width arithmetic shared by the packed integer
// selector and the tagged pointer layout engine.
package common

import "math/bits"

// PtrSize is the size of a native pointer in bytes, as an untyped constant.
const PtrSize = 4 << (^uintptr(0) >> 63)

// PtrBits is the full width of a native pointer in bits.
const PtrBits = PtrSize * 8

// BitsToBytes converts a bit count to the number of bytes needed to hold it.
func BitsToBytes(bits int) int {
	return (bits + 7) >> 3
}

// IsPowTwo reports whether n is a positive power of two.
func IsPowTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// LeastWidth returns the byte width of the smallest native unsigned integer
// (1, 2, 4 or 8 bytes) holding the given number of bits, or -1 if none does.
func LeastWidth(nbits int) int {
	switch {
	case nbits <= 8:
		return 1
	case nbits <= 16:
		return 2
	case nbits <= 32:
		return 4
	case nbits <= 64:
		return 8
	default:
		return -1
	}
}

// Log2 returns floor(log2(n)) for n > 0 and 0 otherwise.
func Log2(n uintptr) int {
	if n == 0 {
		return 0
	}
	return bits.Len64(uint64(n)) - 1
}

// LowMask returns a mask with the low n bits set.
func LowMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}
