package packed

import "encoding/binary"

// U8 is a one byte value. It serves both packed and aligned layouts.
type U8 uint8

func (u U8) Uint64() uint64 { return uint64(u) }
func (U8) With(v uint64) U8 { return U8(v) }

// A16, A32 and A64 are naturally aligned native scalars.
type (
	A16 uint16
	A32 uint32
	A64 uint64
)

func (u A16) Uint64() uint64 { return uint64(u) }
func (A16) With(v uint64) A16 { return A16(v) }
func (u A32) Uint64() uint64 { return uint64(u) }
func (A32) With(v uint64) A32 { return A32(v) }
func (u A64) Uint64() uint64 { return uint64(u) }
func (A64) With(v uint64) A64 { return A64(v) }

// U16, U32 and U64 hold native widths at any address. Bytes are little
// endian so that a composed value reads back with a single wide load.
type (
	U16 [2]byte
	U32 [4]byte
	U64 [8]byte
)

func (u U16) Uint64() uint64 { return uint64(binary.LittleEndian.Uint16(u[:])) }

func (U16) With(v uint64) (u U16) {
	binary.LittleEndian.PutUint16(u[:], uint16(v))
	return u
}

func (u U32) Uint64() uint64 { return uint64(binary.LittleEndian.Uint32(u[:])) }

func (U32) With(v uint64) (u U32) {
	binary.LittleEndian.PutUint32(u[:], uint32(v))
	return u
}

func (u U64) Uint64() uint64 { return binary.LittleEndian.Uint64(u[:]) }

func (U64) With(v uint64) (u U64) {
	binary.LittleEndian.PutUint64(u[:], v)
	return u
}
