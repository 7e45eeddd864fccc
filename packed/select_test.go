package packed

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAligned(t *testing.T) {
	want := map[int]reflect.Type{
		1: reflect.TypeFor[U8](),
		2: reflect.TypeFor[A16](),
		4: reflect.TypeFor[A32](),
		8: reflect.TypeFor[A64](),
	}
	for size, typ := range want {
		sel, err := Select(size, Options{})
		require.NoError(t, err)
		assert.Equal(t, typ, sel.Type, "size=%d", size)
		assert.True(t, sel.Native)
		assert.Equal(t, LoadPiecewise, sel.Hint)
	}
}

func TestSelectPacked(t *testing.T) {
	want := map[int]reflect.Type{
		1: reflect.TypeFor[U8](),
		2: reflect.TypeFor[U16](),
		3: reflect.TypeFor[U24](),
		4: reflect.TypeFor[U32](),
		5: reflect.TypeFor[U40](),
		6: reflect.TypeFor[U48](),
		7: reflect.TypeFor[U56](),
		8: reflect.TypeFor[U64](),
	}
	for size, typ := range want {
		sel, err := Select(size, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, typ, sel.Type, "size=%d", size)
		assert.Equal(t, uintptr(size), sel.Type.Size())
		assert.Equal(t, size == 1, sel.Native)
	}
}

func TestSelectionName(t *testing.T) {
	want := map[int]string{
		1: "packed.U8",
		2: "packed.U16",
		3: "packed.U24",
		4: "packed.U32",
		5: "packed.U40",
		6: "packed.U48",
		7: "packed.U56",
		8: "packed.U64",
	}
	for size, name := range want {
		sel, err := Select(size, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, name, sel.Name(), "size=%d", size)
	}

	sel, err := Select(8, Options{})
	require.NoError(t, err)
	assert.Equal(t, "packed.A64", sel.Name())
	assert.Equal(t, "packed.U48(6B, load=after)", Selection{Size: 6, Type: packedTypes[6], Hint: LoadAfter}.String())
	assert.Equal(t, "", Selection{}.Name())
}

func TestSelectHints(t *testing.T) {
	sel, err := Select(6, Options{Pack: true, SafeToLoadBefore: true, SafeToLoadAfter: true})
	require.NoError(t, err)
	assert.Equal(t, LoadBefore, sel.Hint)

	sel, err = Select(3, Options{Pack: true, SafeToLoadAfter: true})
	require.NoError(t, err)
	assert.Equal(t, LoadAfter, sel.Hint)

	// Hints do nothing for power-of-two widths.
	sel, err = Select(4, Options{Pack: true, SafeToLoadBefore: true})
	require.NoError(t, err)
	assert.Equal(t, LoadPiecewise, sel.Hint)

	// Odd widths are always packed.
	sel, err = Select(5, Options{SafeToLoadAfter: true})
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[U40](), sel.Type)
	assert.Equal(t, LoadAfter, sel.Hint)
}

func TestSelectErrors(t *testing.T) {
	for _, size := range []int{-1, 0, 9, 16} {
		_, err := Select(size, DefaultOptions())
		assert.True(t, errors.Is(err, ErrSize), "size=%d", size)
	}
}

func TestCheck(t *testing.T) {
	sel, err := Select(6, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, Check[U48](sel))
	assert.ErrorIs(t, Check[U64](sel), ErrRepMismatch)
	assert.ErrorIs(t, Check[A64](sel), ErrRepMismatch)
}
