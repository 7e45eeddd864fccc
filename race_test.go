//go:build race && (amd64 || arm64)

package smallptr

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// Race builds enable checkptr. Unpacking must survive it for objects that
// each live in their own allocation.
func TestUnpackUnderCheckptr(t *testing.T) {
	owned := make([]*node, 16)
	for i := range owned {
		owned[i] = &node{id: uint64(i)}
	}

	for i, n := range owned {
		tag := uint64(i) & 3

		var r NodeRef
		r.Assign(n, tag)
		require.Same(t, n, r.Unpack().Ptr)
		require.Equal(t, tag, r.Tag())

		var s SpillRef
		s.Assign(n, uint64(i))
		require.Same(t, n, s.Pointer())

		var a AppendRef
		a.Assign(n, tag)
		require.Same(t, n, a.Pointer())

		var u AnyRef
		AssignUnion(&u, n, tag)
		require.Same(t, n, UnionAs[node](&u))

		var w WideRef
		w.Assign(unsafe.Pointer(n), tag)
		p, _ := w.Unpack()
		require.Equal(t, unsafe.Pointer(n), p)
	}
	runtime.KeepAlive(owned)
}
