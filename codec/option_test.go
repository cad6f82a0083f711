package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memparanoid/redoubt/codec"
)

// byteBlob is the minimal Encode+Decode+BytesRequired element used to
// exercise the generic Option[T] machinery independent of any real field
// type.
type byteBlob struct {
	data []byte
}

func newByteBlob(n int) *byteBlob { return &byteBlob{data: make([]byte, n)} }

func (b *byteBlob) BytesRequired() (int, error) { return len(b.data), nil }

func (b *byteBlob) EncodeInto(buf *codec.Buffer) error {
	return codec.EncodeFixedBytes(buf, b.data)
}

func (b *byteBlob) DecodeFrom(src *[]byte) (int, error) {
	n := len(b.data)
	if err := codec.DecodeFixedBytes(src, b.data); err != nil {
		return 0, err
	}
	return n, nil
}

func TestEncodeDecodeOptionRoundtripsPresentValue(t *testing.T) {
	buf, err := codec.NewBuffer(64)
	require.NoError(t, err)
	defer buf.Dispose()

	blob := newByteBlob(4)
	copy(blob.data, []byte{0xAA, 0xBB, 0xCC, 0xDD})
	require.NoError(t, codec.EncodeOption[*byteBlob](buf, blob, true))

	src := append([]byte(nil), buf.Written()...)
	v, present, err := codec.DecodeOption(&src, func() *byteBlob { return newByteBlob(4) })
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, v.data)
	require.Empty(t, src)
}

func TestEncodeDecodeOptionRoundtripsAbsentValue(t *testing.T) {
	buf, err := codec.NewBuffer(64)
	require.NoError(t, err)
	defer buf.Dispose()

	require.NoError(t, codec.EncodeOption[*byteBlob](buf, nil, false))

	src := append([]byte(nil), buf.Written()...)
	v, present, err := codec.DecodeOption(&src, func() *byteBlob { return newByteBlob(4) })
	require.NoError(t, err)
	require.False(t, present)
	require.Nil(t, v)
	require.Empty(t, src)
}

func TestDecodeOptionRejectsInvalidTag(t *testing.T) {
	buf, err := codec.NewBuffer(64)
	require.NoError(t, err)
	defer buf.Dispose()

	tag := byte(7)
	require.NoError(t, codec.EncodeByte(buf, &tag))

	src := append([]byte(nil), buf.Written()...)
	_, _, err = codec.DecodeOption(&src, func() *byteBlob { return newByteBlob(4) })
	require.ErrorIs(t, err, codec.ErrInvalidOptionTag)
}
