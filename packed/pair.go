package packed

import "unsafe"

// Pair composes two adjacent words into one integer whose value is
// lo | hi<<(8*sizeof(lo)). Lo sits at the lower address.
type Pair[Lo Word[Lo], Hi Word[Hi]] struct {
	lo Lo
	hi Hi
}

func (p Pair[Lo, Hi]) shift() uint {
	return 8 * uint(unsafe.Sizeof(p.lo))
}

func (p Pair[Lo, Hi]) Uint64() uint64 {
	return p.lo.Uint64() | p.hi.Uint64()<<p.shift()
}

func (p Pair[Lo, Hi]) With(v uint64) Pair[Lo, Hi] {
	var out Pair[Lo, Hi]
	out.lo = out.lo.With(v)
	out.hi = out.hi.With(v >> p.shift())
	return out
}

// The odd widths split into a low part of size&(size-1) bytes and a high
// part of size&-size bytes.
type (
	U24 = Pair[U16, U8]
	U40 = Pair[U32, U8]
	U48 = Pair[U32, U16]
	U56 = Pair[U48, U8]
)

// Each index is only valid when the representation has exactly the
// requested size and alignment 1.
var (
	_ = [1]struct{}{}[unsafe.Sizeof(U16{})-2]
	_ = [1]struct{}{}[unsafe.Sizeof(U24{})-3]
	_ = [1]struct{}{}[unsafe.Sizeof(U32{})-4]
	_ = [1]struct{}{}[unsafe.Sizeof(U40{})-5]
	_ = [1]struct{}{}[unsafe.Sizeof(U48{})-6]
	_ = [1]struct{}{}[unsafe.Sizeof(U56{})-7]
	_ = [1]struct{}{}[unsafe.Sizeof(U64{})-8]
	_ = [1]struct{}{}[unsafe.Alignof(U56{})-1]
)
