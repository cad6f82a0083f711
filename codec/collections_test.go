package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memparanoid/redoubt/codec"
)

func TestEncodeByteVecRoundtrip(t *testing.T) {
	buf, err := codec.NewBuffer(64)
	require.NoError(t, err)
	defer buf.Dispose()

	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	require.NoError(t, codec.EncodeByteVec(buf, payload))

	written := append([]byte(nil), buf.Written()...)
	src := written
	out, err := codec.DecodeByteVec(&src)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, out)
	require.Empty(t, src)
}

// EncodeByteVec must zeroize the source slice's own window after a
// successful encode.
func TestEncodeByteVecZeroizesSource(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	buf, err := codec.NewBuffer(64)
	require.NoError(t, err)
	defer buf.Dispose()

	require.NoError(t, codec.EncodeByteVec(buf, payload))

	for i, b := range payload {
		require.Equalf(t, byte(0), b, "payload[%d] was not zeroized", i)
	}
}

func TestDecodeByteVecRejectsLengthMismatch(t *testing.T) {
	buf, err := codec.NewBuffer(64)
	require.NoError(t, err)
	defer buf.Dispose()

	elemCount := uint64(8)
	byteLen := uint64(4) // deliberately wrong
	require.NoError(t, codec.EncodeUint64(buf, &elemCount))
	require.NoError(t, codec.EncodeUint64(buf, &byteLen))
	payload := make([]byte, 4)
	require.NoError(t, codec.EncodeFixedBytes(buf, payload))

	src := append([]byte(nil), buf.Written()...)
	_, err = codec.DecodeByteVec(&src)
	require.ErrorIs(t, err, codec.ErrPreconditionViolated)
}

func TestEncodeArrayRejectsWrongLength(t *testing.T) {
	buf, err := codec.NewBuffer(64)
	require.NoError(t, err)
	defer buf.Dispose()

	err = codec.EncodeArray(buf, make([]byte, 4), 8)
	require.ErrorIs(t, err, codec.ErrPreconditionViolated)
}

func TestDecodeArrayRejectsWrongCount(t *testing.T) {
	buf, err := codec.NewBuffer(64)
	require.NoError(t, err)
	defer buf.Dispose()

	require.NoError(t, codec.EncodeArray(buf, make([]byte, 4), 4))
	src := append([]byte(nil), buf.Written()...)
	_, err = codec.DecodeArray(&src, 8)
	require.ErrorIs(t, err, codec.ErrPreconditionViolated)
}
