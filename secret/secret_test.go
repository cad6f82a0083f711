package secret_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memparanoid/redoubt/secret"
)

// key32 satisfies secret.Movable with value-receiver methods: Secret[T]
// requires T itself (not *T) to implement FastZeroize/IsZeroized.
type key32 struct {
	data [32]byte
}

func (k key32) FastZeroize() {
	for i := range k.data {
		k.data[i] = 0
	}
}

func (k key32) IsZeroized() bool {
	for _, b := range k.data {
		if b != 0 {
			return false
		}
	}
	return true
}

func zeroKey32() key32 { return key32{} }

func TestSecretFromZeroizesSource(t *testing.T) {
	source := key32{}
	for i := range source.data {
		source.data[i] = byte(i + 1)
	}

	s := secret.From(&source, zeroKey32)

	require.True(t, source.IsZeroized(), "From must zeroize the source it moved from")
	require.False(t, s.IsZeroized())
	require.Equal(t, byte(1), s.Ref().data[0])
}

func TestSecretReplaceZeroizesOldAndNewSource(t *testing.T) {
	original := key32{}
	original.data[0] = 0xAA
	s := secret.From(&original, zeroKey32)

	replacement := key32{}
	replacement.data[0] = 0xBB

	s.Replace(&replacement, zeroKey32)

	require.True(t, replacement.IsZeroized())
	require.Equal(t, byte(0xBB), s.Ref().data[0])
}

func TestSecretFastZeroizeFlipsSentinel(t *testing.T) {
	src := key32{data: [32]byte{1}}
	s := secret.From(&src, zeroKey32)
	sentinel := s.CloneSentinel()
	require.False(t, sentinel.IsZeroized())

	s.FastZeroize()
	require.True(t, s.IsZeroized())
	require.True(t, sentinel.IsZeroized(), "sentinel shares zeroization state with the Secret it was cloned from")
}

func TestSecretStringIsRedacted(t *testing.T) {
	src := key32{data: [32]byte{1, 2, 3}}
	s := secret.From(&src, zeroKey32)
	require.Equal(t, "[REDACTED Secret]", s.String())
	require.Equal(t, "[REDACTED Secret]", s.GoString())
}
