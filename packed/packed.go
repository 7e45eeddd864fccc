// Package packed provides unsigned integers of an exact byte width.
//
// Go has no packed structs, but [N]byte has alignment 1, so a field built
// from byte arrays never forces padding into the struct that holds it. The
// types here use that to represent 1 to 8 byte integers, including the
// non-power-of-two widths 3, 5, 6 and 7, and Select picks the cheapest one
// for a width.
package packed

import (
	"cmp"
	"errors"
)

var (
	ErrSize        = errors.New("packed: size must be between 1 and 8 bytes")
	ErrRepMismatch = errors.New("packed: type does not match selected representation")
)

// Word is implemented by every representation in this package.
//
// With returns a value holding the low 8*size bits of v; higher bits are
// discarded the way a native integer conversion truncates.
type Word[W any] interface {
	comparable
	Uint64() uint64
	With(v uint64) W
}

// Options control representation selection.
type Options struct {
	// SafeToLoadBefore asserts that the aligned word ending at the value's
	// last byte is readable, as when the value is not the first field of its
	// enclosing struct. Nothing verifies this.
	SafeToLoadBefore bool

	// SafeToLoadAfter asserts that the word starting at the value's first
	// byte is readable, as when the value is not the last field.
	SafeToLoadAfter bool

	// Pack drops alignment so the value takes exactly size bytes. When false,
	// power-of-two sizes use an aligned native scalar.
	Pack bool
}

// DefaultOptions returns packing on and no unsafe load hints.
func DefaultOptions() Options {
	return Options{Pack: true}
}

// LoadHint selects how Load reads a non-power-of-two value.
type LoadHint uint8

const (
	// LoadPiecewise reads each part and combines them. Always safe.
	LoadPiecewise LoadHint = iota
	// LoadBefore reads one word ending at the value's end and shifts away
	// the borrowed low bytes.
	LoadBefore
	// LoadAfter reads one word starting at the value and masks off the
	// borrowed high bytes.
	LoadAfter
)

func (h LoadHint) String() string {
	switch h {
	case LoadBefore:
		return "before"
	case LoadAfter:
		return "after"
	default:
		return "piecewise"
	}
}

// Compare orders two values numerically.
func Compare[W Word[W]](a, b W) int {
	return cmp.Compare(a.Uint64(), b.Uint64())
}
