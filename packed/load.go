package packed

import (
	"encoding/binary"
	"unsafe"

	"github.com/rawbytedev/smallptr/internal/common"
)

// Load returns the value stored at w.
//
// With LoadBefore or LoadAfter and a non-power-of-two size, Load reads a
// whole 4 or 8 byte word that extends past w's own storage and discards the
// borrowed bytes. The caller guarantees those bytes are mapped and belong to
// the same allocation; violating that is undefined behavior. Builds with
// race, asan or msan always use the piecewise path.
func Load[W Word[W]](w *W, hint LoadHint) uint64 {
	if wideLoads && hint != LoadPiecewise {
		if size := unsafe.Sizeof(*w); size&(size-1) != 0 {
			return loadWide(unsafe.Pointer(w), size, hint)
		}
	}
	return (*w).Uint64()
}

func loadWide(p unsafe.Pointer, size uintptr, hint LoadHint) uint64 {
	width := uintptr(8)
	if size < 4 {
		width = 4
	}
	junk := width - size
	if hint == LoadBefore {
		p = unsafe.Add(p, -int(junk))
	}
	b := unsafe.Slice((*byte)(p), width)

	var v uint64
	if width == 4 {
		v = uint64(binary.LittleEndian.Uint32(b))
	} else {
		v = binary.LittleEndian.Uint64(b)
	}
	if hint == LoadBefore {
		return v >> (junk * 8)
	}
	return v & common.LowMask(int(size*8))
}
