// Package smallptr packs a pointer and a small integer tag into the fewest
// bytes the platform allows.
//
// User space addresses use fewer bits than a machine word (47 of 64 on amd64
// and arm64) and pointers to aligned types have known-zero low bits. A Layout
// uses both facts to pick one of three bit layouts and the minimal storage
// width for a given pointee alignment and tag width; TaggedPtr and Union are
// the value types that store pointer and tag in that width.
//
// A layout belongs to a type: declare a zero-size params type whose Layout
// method returns a package-level *Layout built with MustLayoutFor, then alias
// the tagged pointer type:
//
//	var nodeRefLayout = smallptr.MustLayoutFor[Node, packed.U48](smallptr.WithTagBits(2))
//
//	type nodeRef struct{}
//
//	func (nodeRef) Layout() *smallptr.Layout { return nodeRefLayout }
//
//	type NodeRef = smallptr.TaggedPtr[Node, packed.U48, nodeRef]
//
// An invalid configuration panics during package initialisation.
//
// A tagged pointer holds an address as an integer. It does not keep the
// pointee alive and the pointee must not move, so the pointee must stay
// reachable through an ordinary pointer elsewhere or live outside the Go heap.
package smallptr

import (
	"errors"

	"github.com/rawbytedev/smallptr/internal/common"
	"github.com/rawbytedev/smallptr/packed"
)

const (
	// MaxPtrBits is the number of significant bits in a user space address.
	MaxPtrBits = common.MaxPtrBits

	// PtrSize is the size of a native pointer in bytes.
	PtrSize = common.PtrSize

	// AutoTagBits requests as many tag bits as fit in one pointer-sized word.
	AutoTagBits = -1
)

var (
	// ErrPtrBits is returned for a pointer width outside [1, MaxPtrBits].
	ErrPtrBits = errors.New("smallptr: pointer bits out of range")
	// ErrAlignBits is returned for alignment bits outside [0, pointer bits).
	ErrAlignBits = errors.New("smallptr: alignment bits out of range")
	// ErrTagBits is returned for a negative tag width other than AutoTagBits.
	ErrTagBits = errors.New("smallptr: invalid tag bit count")
	// ErrTooManyTagBits is returned when pointer and tag need more than a
	// pointer-sized word.
	ErrTooManyTagBits = errors.New("smallptr: pointer and tag do not fit in a machine word")

	// ErrMisaligned, ErrTagRange and ErrPtrRange report a value Encode
	// cannot hold.
	ErrMisaligned = errors.New("smallptr: pointer is not aligned")
	ErrTagRange   = errors.New("smallptr: tag exceeds tag mask")
	ErrPtrRange   = errors.New("smallptr: pointer exceeds pointer bits")

	// ErrRepMismatch is returned when W is not the representation a layout
	// selects.
	ErrRepMismatch = packed.ErrRepMismatch
)
