package smallptr

import (
	"unsafe"

	"github.com/rawbytedev/smallptr/packed"
	"golang.org/x/xerrors"
)

// Union is a tagged pointer whose pointee type is not fixed: the tag usually
// says what the address points to. It has no dereference; use UnionAs with
// the concrete type.
type Union[W packed.Word[W], P Params] struct {
	w word[W, P]
}

// Assign stores p and tag under the same preconditions as TaggedPtr.Assign.
func (u *Union[W, P]) Assign(p unsafe.Pointer, tag uint64) {
	u.w.assign(addrOf(p), tag)
}

// TryAssign is Assign with its preconditions checked.
func (u *Union[W, P]) TryAssign(p unsafe.Pointer, tag uint64) error {
	addr := addrOf(p)
	if err := u.w.layout().Check(addr, tag); err != nil {
		return err
	}
	u.w.assign(addr, tag)
	return nil
}

// SetNil clears every bit, tag included.
func (u *Union[W, P]) SetNil() {
	u.w.store(0)
}

// SetBits stores raw packed bits as returned by Bits.
func (u *Union[W, P]) SetBits(bits uint64) {
	u.w.store(bits)
}

// Unpack decodes the address and tag.
func (u *Union[W, P]) Unpack() (unsafe.Pointer, uint64) {
	addr, tag := u.w.unpack()
	return pointerAt(addr), tag
}

// Addr returns the stored address.
func (u *Union[W, P]) Addr() unsafe.Pointer {
	p, _ := u.Unpack()
	return p
}

// Tag returns the stored tag.
func (u *Union[W, P]) Tag() uint64 {
	_, tag := u.Unpack()
	return tag
}

// Bits returns the raw packed bits.
func (u *Union[W, P]) Bits() uint64 {
	return u.w.load()
}

// IsNil reports whether the address is nil, whatever the tag.
func (u *Union[W, P]) IsNil() bool {
	return u.Addr() == nil
}

// Layout returns P's layout.
func (u *Union[W, P]) Layout() *Layout {
	return u.w.layout()
}

// AssignUnion stores a typed pointer in u.
func AssignUnion[T any, W packed.Word[W], P Params](u *Union[W, P], p *T, tag uint64) {
	u.Assign(unsafe.Pointer(p), tag)
}

// UnionAs reinterprets the address held by u as a *T. The caller decides,
// usually from the tag, that T is the right type.
func UnionAs[T any, W packed.Word[W], P Params](u *Union[W, P]) *T {
	return (*T)(u.Addr())
}

// TaggedUnionLayout is the layout of a union that trades size for a natural
// alignment: packing and both load hints are off and the value takes the
// next native width. Alignment comes from T.
func TaggedUnionLayout[T any](tagBits int) (*Layout, error) {
	return NewLayout(AlignOf[T](), WithTagBits(tagBits), Unpacked())
}

// MustTaggedUnionLayout is TaggedUnionLayout with W checked against the
// selected representation. It panics on error.
func MustTaggedUnionLayout[T any, W packed.Word[W]](tagBits int) *Layout {
	l, err := TaggedUnionLayout[T](tagBits)
	if err == nil {
		if cerr := packed.Check[W](l.rep); cerr != nil {
			err = xerrors.Errorf("layout %s: %w", l, cerr)
		}
	}
	if err != nil {
		panic(err)
	}
	return l
}
