package alloc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memparanoid/redoubt/alloc"
)

func TestAllockedVecZeroCapacityIsNoop(t *testing.T) {
	v, err := alloc.WithCapacity[byte](0)
	require.NoError(t, err)
	require.Equal(t, 0, v.Capacity())
	require.True(t, v.IsZeroized())
	v.Dispose()
}

func TestAllockedVecFastZeroizeCoversFullCapacityWindow(t *testing.T) {
	v, err := alloc.WithCapacity[byte](32)
	require.NoError(t, err)
	defer v.Dispose()

	s := v.AsCapacitySlice()
	for i := range s {
		s[i] = byte(i + 1)
	}
	v.SetLen(16)

	v.FastZeroize()

	require.True(t, v.IsZeroized())
	require.Equal(t, 0, v.Len())
	for i, b := range v.AsCapacitySlice() {
		require.Equalf(t, byte(0), b, "capacity byte %d not zeroized", i)
	}
}

func TestAllockedVecReallocPreservesOverlapAndResetsLen(t *testing.T) {
	v, err := alloc.WithCapacity[byte](8)
	require.NoError(t, err)
	defer v.Dispose()

	s := v.AsCapacitySlice()
	for i := range s {
		s[i] = byte(i + 1)
	}
	v.SetLen(8)

	oldCapacitySlice := append([]byte(nil), v.AsCapacitySlice()...)
	require.NoError(t, v.ReallocWithCapacity(16))

	require.Equal(t, 16, v.Capacity())
	require.Equal(t, 0, v.Len())
	grown := v.AsCapacitySlice()
	for i := 0; i < 8; i++ {
		require.Equal(t, oldCapacitySlice[i], grown[i])
	}
}
