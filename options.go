package smallptr

import (
	"unsafe"

	"github.com/rawbytedev/smallptr/internal/common"
	"golang.org/x/xerrors"
)

// config is comparable so it can key the layout registry.
type config struct {
	tagBits   int
	alignBits int
	ptrBits   int
	before    bool
	after     bool
	pack      bool
}

// Option configures a Layout.
type Option func(*config) error

func defaultConfig() *config {
	return &config{
		ptrBits: MaxPtrBits,
		pack:    true,
	}
}

// WithTagBits sets the number of tag bits. AutoTagBits fills the rest of a
// pointer-sized word.
func WithTagBits(n int) Option {
	return func(c *config) error {
		if n < AutoTagBits {
			return xerrors.Errorf("%w: %d", ErrTagBits, n)
		}
		c.tagBits = n
		return nil
	}
}

// WithAlignBits sets the number of low pointer bits known to be zero.
func WithAlignBits(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return xerrors.Errorf("%w: %d", ErrAlignBits, n)
		}
		c.alignBits = n
		return nil
	}
}

// AlignOf derives the alignment bits from the Go alignment of T.
func AlignOf[T any]() Option {
	var zero T
	return WithAlignBits(common.Log2(unsafe.Alignof(zero)))
}

// WithPtrBits narrows the pointer width, for pointers known to address only
// the low 2^n bytes.
func WithPtrBits(n int) Option {
	return func(c *config) error {
		if n < 1 || n > MaxPtrBits {
			return xerrors.Errorf("%w: %d not in [1, %d]", ErrPtrBits, n, MaxPtrBits)
		}
		c.ptrBits = n
		return nil
	}
}

// SafeToLoadBefore asserts that the word ending at the tagged pointer's last
// byte is readable, as when it is not the first field of its struct.
func SafeToLoadBefore() Option {
	return func(c *config) error {
		c.before = true
		return nil
	}
}

// SafeToLoadAfter asserts that the word starting at the tagged pointer's
// first byte is readable, as when it is not the last field of its struct.
func SafeToLoadAfter() Option {
	return func(c *config) error {
		c.after = true
		return nil
	}
}

// Unpacked keeps the value naturally aligned in the next native width
// instead of the fewest bytes.
func Unpacked() Option {
	return func(c *config) error {
		c.pack = false
		return nil
	}
}
