package smallptr

import (
	"unsafe"

	"github.com/rawbytedev/smallptr/packed"
)

// Params binds a tagged pointer type to its layout. Implementations are
// zero-size types returning a package-level *Layout.
type Params interface {
	Layout() *Layout
}

// word is the storage shared by TaggedPtr and Union.
type word[W packed.Word[W], P Params] struct {
	bits W
}

func (w *word[W, P]) layout() *Layout {
	var p P
	return p.Layout()
}

func (w *word[W, P]) load() uint64 {
	return packed.Load(&w.bits, w.layout().rep.Hint)
}

func (w *word[W, P]) store(v uint64) {
	w.bits = w.bits.With(v)
}

func (w *word[W, P]) assign(addr uintptr, tag uint64) {
	w.store(w.layout().Encode(addr, tag))
}

func (w *word[W, P]) unpack() (uintptr, uint64) {
	return w.layout().Decode(w.load())
}

// Pair is a decoded pointer and tag.
type Pair[T any] struct {
	Ptr *T
	Tag uint64
}

// TaggedPtr stores a *T and a tag in W, laid out as P's Layout says. The zero
// value is a nil pointer with tag 0. TaggedPtr values compare equal when
// their bits are equal.
type TaggedPtr[T any, W packed.Word[W], P Params] struct {
	w word[W, P]
}

// With returns a tagged pointer holding p and tag.
func (TaggedPtr[T, W, P]) With(p *T, tag uint64) TaggedPtr[T, W, P] {
	var t TaggedPtr[T, W, P]
	t.Assign(p, tag)
	return t
}

// WithPair returns a tagged pointer holding the pair.
func (t TaggedPtr[T, W, P]) WithPair(pair Pair[T]) TaggedPtr[T, W, P] {
	return t.With(pair.Ptr, pair.Tag)
}

// WithBits returns a tagged pointer holding raw packed bits.
func (TaggedPtr[T, W, P]) WithBits(bits uint64) TaggedPtr[T, W, P] {
	var t TaggedPtr[T, W, P]
	t.SetBits(bits)
	return t
}

// Assign stores p and tag. p must be aligned to the layout and tag must not
// exceed its TagMask; see Layout.Encode.
func (t *TaggedPtr[T, W, P]) Assign(p *T, tag uint64) {
	t.w.assign(addrOf(unsafe.Pointer(p)), tag)
}

// TryAssign is Assign with its preconditions checked.
func (t *TaggedPtr[T, W, P]) TryAssign(p *T, tag uint64) error {
	addr := addrOf(unsafe.Pointer(p))
	if err := t.w.layout().Check(addr, tag); err != nil {
		return err
	}
	t.w.assign(addr, tag)
	return nil
}

// AssignPair stores pair.Ptr and pair.Tag.
func (t *TaggedPtr[T, W, P]) AssignPair(pair Pair[T]) {
	t.Assign(pair.Ptr, pair.Tag)
}

// Set stores p with tag 0.
func (t *TaggedPtr[T, W, P]) Set(p *T) {
	t.Assign(p, 0)
}

// SetNil clears every bit, tag included.
func (t *TaggedPtr[T, W, P]) SetNil() {
	t.w.store(0)
}

// SetBits stores raw packed bits as returned by Bits.
func (t *TaggedPtr[T, W, P]) SetBits(bits uint64) {
	t.w.store(bits)
}

// Reset is SetNil.
func (t *TaggedPtr[T, W, P]) Reset() {
	t.SetNil()
}

// Unpack decodes the pointer and tag. Prefer it over separate Pointer and
// Tag calls.
func (t *TaggedPtr[T, W, P]) Unpack() Pair[T] {
	addr, tag := t.w.unpack()
	return Pair[T]{Ptr: (*T)(pointerAt(addr)), Tag: tag}
}

// Pointer returns the stored pointer.
func (t *TaggedPtr[T, W, P]) Pointer() *T {
	return t.Unpack().Ptr
}

// Tag returns the stored tag.
func (t *TaggedPtr[T, W, P]) Tag() uint64 {
	return t.Unpack().Tag
}

// Bits returns the raw packed bits.
func (t *TaggedPtr[T, W, P]) Bits() uint64 {
	return t.w.load()
}

// IsNil reports whether the pointer is nil, whatever the tag.
func (t *TaggedPtr[T, W, P]) IsNil() bool {
	return t.Pointer() == nil
}

// Layout returns P's layout.
func (t *TaggedPtr[T, W, P]) Layout() *Layout {
	return t.w.layout()
}
