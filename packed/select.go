package packed

import (
	"fmt"
	"reflect"

	"github.com/rawbytedev/smallptr/internal/common"
	"golang.org/x/xerrors"
)

// Selection describes the representation chosen for a byte width.
type Selection struct {
	Size int
	Type reflect.Type

	// Native is set when the representation is a plain aligned scalar.
	Native bool

	// Hint is the load strategy Load should use. It is always
	// LoadPiecewise for power-of-two sizes.
	Hint LoadHint
}

// Name is the type a caller writes for this representation, such as
// packed.U48.
func (s Selection) Name() string {
	if name, ok := compositeNames[s.Size]; ok && s.Type == packedTypes[s.Size] {
		return name
	}
	if s.Type == nil {
		return ""
	}
	return s.Type.String()
}

func (s Selection) String() string {
	return fmt.Sprintf("%s(%dB, load=%s)", s.Name(), s.Size, s.Hint)
}

var (
	alignedTypes = map[int]reflect.Type{
		1: reflect.TypeFor[U8](),
		2: reflect.TypeFor[A16](),
		4: reflect.TypeFor[A32](),
		8: reflect.TypeFor[A64](),
	}
	packedTypes = map[int]reflect.Type{
		1: reflect.TypeFor[U8](),
		2: reflect.TypeFor[U16](),
		3: reflect.TypeFor[U24](),
		4: reflect.TypeFor[U32](),
		5: reflect.TypeFor[U40](),
		6: reflect.TypeFor[U48](),
		7: reflect.TypeFor[U56](),
		8: reflect.TypeFor[U64](),
	}
	// The generic Pair types print with their full instantiation.
	compositeNames = map[int]string{
		3: "packed.U24",
		5: "packed.U40",
		6: "packed.U48",
		7: "packed.U56",
	}
)

// Select picks the cheapest representation of a size-byte unsigned integer.
func Select(size int, opts Options) (Selection, error) {
	if size < 1 || size > 8 {
		return Selection{}, xerrors.Errorf("%w: got %d", ErrSize, size)
	}
	if common.IsPowTwo(size) {
		if !opts.Pack || size == 1 {
			return Selection{Size: size, Type: alignedTypes[size], Native: true}, nil
		}
		return Selection{Size: size, Type: packedTypes[size]}, nil
	}
	sel := Selection{Size: size, Type: packedTypes[size]}
	switch {
	case opts.SafeToLoadBefore:
		sel.Hint = LoadBefore
	case opts.SafeToLoadAfter:
		sel.Hint = LoadAfter
	}
	return sel, nil
}

// Check reports whether W is the representation described by sel.
func Check[W Word[W]](sel Selection) error {
	if t := reflect.TypeFor[W](); t != sel.Type {
		return xerrors.Errorf("%w: have %s, want %s", ErrRepMismatch, t, sel.Type)
	}
	return nil
}
