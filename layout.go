package smallptr

import (
	"fmt"

	"github.com/rawbytedev/smallptr/internal/common"
	"github.com/rawbytedev/smallptr/packed"
	"golang.org/x/xerrors"
)

// Kind is the strategy used to share the packed bits between pointer and
// tag. The tag always occupies the low bits.
type Kind uint8

const (
	// TagAppended shifts the pointer, alignment bits included, left to make
	// room for the tag. [PTR, ALIGN, TAG]
	TagAppended Kind = iota

	// TagOverlapped stores the tag inside the known-zero alignment bits.
	// [PTR, ALIGN|TAG]
	TagOverlapped

	// AlignmentRemoved drops alignment bits before appending the tag. It
	// always fits but costs an extra shift. [PTR, TAG]
	AlignmentRemoved
)

func (k Kind) String() string {
	switch k {
	case TagAppended:
		return "tag-appended"
	case TagOverlapped:
		return "tag-overlapped"
	case AlignmentRemoved:
		return "alignment-removed"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ChooseKind picks the layout for numBytes of storage. It depends only on
// its arguments.
func ChooseKind(numBytes, ptrBits, tagBits, alignBits int, safeBefore, safeAfter bool) Kind {
	if numBytes >= common.BitsToBytes(ptrBits+tagBits) {
		// The right shift of TagAppended combines well with the shift of a
		// before-load; the mask of TagOverlapped with the mask of an
		// after-load.
		if tagBits > alignBits || safeBefore || !safeAfter {
			return TagAppended
		}
		return TagOverlapped
	}
	if tagBits <= alignBits && numBytes == common.BitsToBytes(ptrBits) {
		return TagOverlapped
	}
	return AlignmentRemoved
}

// Layout is the fixed encoding of one tagged pointer configuration. Layouts
// are immutable and shared.
type Layout struct {
	kind      Kind
	numBytes  int
	ptrBits   int
	tagBits   int
	alignBits int
	pack      bool
	tagMask   uint64
	alignMask uint64
	rep       packed.Selection
}

// NewLayout computes the layout for the given options. Identical options
// return the same *Layout.
func NewLayout(opts ...Option) (*Layout, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		if err := o(cfg); err != nil {
			return nil, err
		}
	}
	return layouts.get(*cfg)
}

// MustLayout is like NewLayout but panics on error. It is meant for
// package-level variables.
func MustLayout(opts ...Option) *Layout {
	l, err := NewLayout(opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// LayoutFor computes the layout for pointers to T stored in W. Alignment
// defaults to T's alignment; W must be the representation the layout
// selects.
func LayoutFor[T any, W packed.Word[W]](opts ...Option) (*Layout, error) {
	l, err := NewLayout(append([]Option{AlignOf[T]()}, opts...)...)
	if err != nil {
		return nil, err
	}
	if err := packed.Check[W](l.rep); err != nil {
		return nil, xerrors.Errorf("layout %s: %w", l, err)
	}
	return l, nil
}

// MustLayoutFor is like LayoutFor but panics on error.
func MustLayoutFor[T any, W packed.Word[W]](opts ...Option) *Layout {
	l, err := LayoutFor[T, W](opts...)
	if err != nil {
		panic(err)
	}
	return l
}

func newLayout(cfg config) (*Layout, error) {
	if cfg.ptrBits < 1 || cfg.ptrBits > MaxPtrBits {
		return nil, xerrors.Errorf("%w: %d not in [1, %d]", ErrPtrBits, cfg.ptrBits, MaxPtrBits)
	}
	if cfg.alignBits < 0 || cfg.alignBits >= cfg.ptrBits {
		return nil, xerrors.Errorf("%w: %d with %d pointer bits", ErrAlignBits, cfg.alignBits, cfg.ptrBits)
	}
	tagBits := cfg.tagBits
	if tagBits == AutoTagBits {
		tagBits = common.PtrBits - cfg.ptrBits + cfg.alignBits
	}
	if tagBits < 0 {
		return nil, xerrors.Errorf("%w: %d", ErrTagBits, tagBits)
	}

	payload := cfg.ptrBits - cfg.alignBits + tagBits
	numBytes := common.BitsToBytes(payload)
	if !cfg.pack {
		numBytes = common.LeastWidth(payload)
	}
	if numBytes < 0 || numBytes > PtrSize {
		return nil, xerrors.Errorf("%w: %d pointer bits, %d alignment bits, %d tag bits",
			ErrTooManyTagBits, cfg.ptrBits, cfg.alignBits, tagBits)
	}

	kind := ChooseKind(numBytes, cfg.ptrBits, tagBits, cfg.alignBits, cfg.before, cfg.after)

	// When both loads are allowed, use the one whose discard step merges
	// with the layout's own pointer extraction.
	rep, err := packed.Select(numBytes, packed.Options{
		SafeToLoadBefore: cfg.before && (!cfg.after || kind != TagOverlapped),
		SafeToLoadAfter:  cfg.after && (!cfg.before || kind == TagOverlapped),
		Pack:             cfg.pack,
	})
	if err != nil {
		return nil, err
	}

	return &Layout{
		kind:      kind,
		numBytes:  numBytes,
		ptrBits:   cfg.ptrBits,
		tagBits:   tagBits,
		alignBits: cfg.alignBits,
		pack:      cfg.pack,
		tagMask:   common.LowMask(tagBits),
		alignMask: common.LowMask(cfg.alignBits),
		rep:       rep,
	}, nil
}

// Kind returns the bit layout in use.
func (l *Layout) Kind() Kind { return l.kind }

// NumBytes is the storage width of a tagged pointer with this layout.
func (l *Layout) NumBytes() int { return l.numBytes }

// PtrBits is the number of significant address bits.
func (l *Layout) PtrBits() int { return l.ptrBits }

// TagBits is the tag width, with AutoTagBits already resolved.
func (l *Layout) TagBits() int { return l.tagBits }

// AlignBits is the number of low address bits known to be zero.
func (l *Layout) AlignBits() int { return l.alignBits }

// Packed reports whether the storage is allowed to be unaligned.
func (l *Layout) Packed() bool { return l.pack }

// TagMask is the largest tag the layout can hold.
func (l *Layout) TagMask() uint64 { return l.tagMask }

// Rep describes the packed integer that stores the bits.
func (l *Layout) Rep() packed.Selection { return l.rep }

func (l *Layout) String() string {
	return fmt.Sprintf("%s %dB (ptr=%d align=%d tag=%d)", l.kind, l.numBytes, l.ptrBits, l.alignBits, l.tagBits)
}

// Encode packs addr and tag. addr must have its low AlignBits clear and fit
// in PtrBits, and tag must not exceed TagMask; nothing checks this unless
// built with the smallptr_debug tag, and a violation silently corrupts the
// result.
func (l *Layout) Encode(addr uintptr, tag uint64) uint64 {
	if debugChecks {
		if err := l.Check(addr, tag); err != nil {
			panic(err)
		}
	}
	b := uint64(addr)
	switch l.kind {
	case TagAppended:
		b <<= uint(l.tagBits)
	case TagOverlapped:
	case AlignmentRemoved:
		// Only one of these shifts is non-zero.
		b >>= uint(max(l.alignBits-l.tagBits, 0))
		b <<= uint(max(l.tagBits-l.alignBits, 0))
	}
	// The low bits are zero, so + is the same as |.
	return b + tag
}

// Decode recovers the address and tag from packed bits. It never fails.
func (l *Layout) Decode(bits uint64) (addr uintptr, tag uint64) {
	tag = bits & l.tagMask
	switch l.kind {
	case TagAppended:
		bits >>= uint(l.tagBits)
	case TagOverlapped:
		bits &^= l.tagMask
	case AlignmentRemoved:
		bits >>= uint(l.tagBits)
		bits <<= uint(l.alignBits)
	}
	return uintptr(bits), tag
}

// Check validates the preconditions of Encode.
func (l *Layout) Check(addr uintptr, tag uint64) error {
	if uint64(addr)&l.alignMask != 0 {
		return xerrors.Errorf("%w: %#x needs %d zero low bits", ErrMisaligned, addr, l.alignBits)
	}
	if uint64(addr)&^common.LowMask(l.ptrBits) != 0 {
		return xerrors.Errorf("%w: %#x wider than %d bits", ErrPtrRange, addr, l.ptrBits)
	}
	if tag > l.tagMask {
		return xerrors.Errorf("%w: %d > %d", ErrTagRange, tag, l.tagMask)
	}
	return nil
}
