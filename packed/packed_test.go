package packed

import (
	"math/rand"
	"testing"
	"testing/quick"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sandwich surrounds a value with readable garbage so the wide loads have
// bytes to borrow on both sides.
type sandwich[W Word[W]] struct {
	before [8]byte
	w      W
	after  [8]byte
}

func newSandwich[W Word[W]](v uint64) *sandwich[W] {
	s := &sandwich[W]{}
	for i := range s.before {
		s.before[i] = 0xA5
		s.after[i] = 0x5A
	}
	s.w = s.w.With(v)
	return s
}

func checkFidelity[W Word[W]](t *testing.T, size int) {
	t.Helper()
	var zero W
	require.Equal(t, uintptr(size), unsafe.Sizeof(zero))
	require.Equal(t, uintptr(1), unsafe.Alignof(zero))

	limit := uint64(1)<<(8*uint(size)) - 1
	values := []uint64{0, 1, 0x80, 0xff, 0x100, limit >> 1, limit - 1, limit}
	r := rand.New(rand.NewSource(int64(size)))
	for i := 0; i < 256; i++ {
		values = append(values, r.Uint64()&limit)
	}
	for _, v := range values {
		s := newSandwich[W](v)
		assert.Equal(t, v, s.w.Uint64(), "piecewise %#x", v)
		assert.Equal(t, v, Load(&s.w, LoadPiecewise), "piecewise load %#x", v)
		assert.Equal(t, v, Load(&s.w, LoadBefore), "load before %#x", v)
		assert.Equal(t, v, Load(&s.w, LoadAfter), "load after %#x", v)
	}
}

func TestPackedFidelity(t *testing.T) {
	t.Run("size=3", func(t *testing.T) { checkFidelity[U24](t, 3) })
	t.Run("size=5", func(t *testing.T) { checkFidelity[U40](t, 5) })
	t.Run("size=6", func(t *testing.T) { checkFidelity[U48](t, 6) })
	t.Run("size=7", func(t *testing.T) { checkFidelity[U56](t, 7) })
	t.Run("size=2", func(t *testing.T) { checkFidelity[U16](t, 2) })
	t.Run("size=4", func(t *testing.T) { checkFidelity[U32](t, 4) })
	t.Run("size=8", func(t *testing.T) { checkFidelity[U64](t, 8) })
}

func TestTruncation(t *testing.T) {
	assert.Equal(t, uint64(0x563412), U24{}.With(0xff563412).Uint64())
	assert.Equal(t, uint64(0xbc9a78563412), U48{}.With(0xf0debc9a78563412).Uint64())
	assert.Equal(t, uint64(0xdebc9a78563412), U56{}.With(0xf0debc9a78563412).Uint64())
	assert.Equal(t, uint64(0x12), U8(0).With(0x3412).Uint64())
	assert.Equal(t, uint64(0x3412), A16(0).With(0x563412).Uint64())
}

func TestPairLayoutIsLittleEndian(t *testing.T) {
	v := U48{}.With(0x060504030201)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, b)
}

func TestPackedQuick(t *testing.T) {
	f := func(v uint64) bool {
		v &= 1<<56 - 1
		s := newSandwich[U56](v)
		return Load(&s.w, LoadBefore) == v && Load(&s.w, LoadAfter) == v && s.w.Uint64() == v
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 2000}))
}

func TestCompare(t *testing.T) {
	a := U40{}.With(0x0100000000)
	b := U40{}.With(0x00ffffffff)
	assert.Equal(t, 1, Compare(a, b))
	assert.Equal(t, -1, Compare(b, a))
	assert.Equal(t, 0, Compare(a, a))
	assert.True(t, a == U40{}.With(0x0100000000))
}

func FuzzU56(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(1<<56 - 1))
	f.Fuzz(func(t *testing.T, v uint64) {
		s := newSandwich[U56](v)
		want := v & (1<<56 - 1)
		require.Equal(t, want, Load(&s.w, LoadPiecewise))
		require.Equal(t, want, Load(&s.w, LoadBefore))
		require.Equal(t, want, Load(&s.w, LoadAfter))
	})
}
