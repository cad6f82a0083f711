package hkdf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memparanoid/redoubt/hkdf"
)

// No RFC 5869 test vector is asserted here verbatim: this module's
// implementation is checked for determinism, empty-salt handling and
// sensitivity to info rather than against a memorized hex constant.
func TestDeriveIsDeterministic(t *testing.T) {
	ikm := []byte("input keying material, arbitrary length")
	salt := []byte("a salt value")
	info := []byte("application info")

	out1 := make([]byte, 96)
	out2 := make([]byte, 96)

	require.NoError(t, hkdf.Derive(append([]byte(nil), ikm...), append([]byte(nil), salt...), info, out1))
	require.NoError(t, hkdf.Derive(append([]byte(nil), ikm...), append([]byte(nil), salt...), info, out2))

	require.Equal(t, out1, out2)
	require.NotEqual(t, make([]byte, 96), out1)
}

func TestDeriveEmptySaltMatchesZeroSalt(t *testing.T) {
	ikm := []byte("some key material")
	info := []byte("ctx")

	withEmpty := make([]byte, 64)
	withZeros := make([]byte, 64)

	require.NoError(t, hkdf.Derive(append([]byte(nil), ikm...), nil, info, withEmpty))
	require.NoError(t, hkdf.Derive(append([]byte(nil), ikm...), make([]byte, 64), info, withZeros))

	require.Equal(t, withEmpty, withZeros)
}

func TestDeriveDifferentInfoProducesDifferentOutput(t *testing.T) {
	ikm := []byte("some key material")
	salt := []byte("salt")

	outA := make([]byte, 32)
	outB := make([]byte, 32)

	require.NoError(t, hkdf.Derive(append([]byte(nil), ikm...), append([]byte(nil), salt...), []byte("context-a"), outA))
	require.NoError(t, hkdf.Derive(append([]byte(nil), ikm...), append([]byte(nil), salt...), []byte("context-b"), outB))

	require.NotEqual(t, outA, outB)
}

func TestDeriveZeroLengthOutputIsNoop(t *testing.T) {
	err := hkdf.Derive([]byte("ikm"), []byte("salt"), []byte("info"), nil)
	require.NoError(t, err)
}

func TestDeriveRejectsOversizedOutput(t *testing.T) {
	out := make([]byte, 255*64+1)
	err := hkdf.Derive([]byte("ikm"), []byte("salt"), []byte("info"), out)
	require.ErrorIs(t, err, hkdf.ErrOutputTooLong)
}
