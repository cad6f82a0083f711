package codec

import (
	"encoding/binary"

	"github.com/memparanoid/redoubt/zeroize"
)

// Encode is implemented by any type that can serialize itself into a
// Buffer, consuming (zeroizing) its own value in the process.
type Encode interface {
	EncodeInto(buf *Buffer) error
}

// Decode is implemented by any type that can populate itself from a byte
// slice, reporting how many bytes it consumed.
type Decode interface {
	DecodeFrom(src *[]byte) (consumed int, err error)
}

// BytesRequired reports how many wire bytes a value's encoding will need.
type BytesRequired interface {
	BytesRequired() (int, error)
}

// EncodeUint64 writes v in little-endian form and zeroizes the source
// pointer's pointee on success, matching the move-out-on-encode contract
// every primitive in this wire format follows.
func EncodeUint64(buf *Buffer, v *uint64) error {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], *v)
	if err := buf.WriteBytes(tmp[:]); err != nil {
		zeroize.Bytes(tmp[:])
		buf.FastZeroize()
		*v = 0
		return err
	}
	zeroize.Bytes(tmp[:])
	*v = 0
	return nil
}

// DecodeUint64 reads a little-endian uint64 from the front of *src and
// advances *src past the consumed bytes. On a length mismatch the
// remaining input is zeroized before returning.
func DecodeUint64(src *[]byte) (uint64, error) {
	if len(*src) < 8 {
		zeroize.Bytes(*src)
		return 0, ErrLengthMismatch
	}
	v := binary.LittleEndian.Uint64((*src)[:8])
	consumed := (*src)[:8]
	*src = (*src)[8:]
	zeroize.Bytes(consumed)
	return v, nil
}

// EncodeUint32 / DecodeUint32 mirror the uint64 pair for 4-byte primitives.
func EncodeUint32(buf *Buffer, v *uint32) error {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], *v)
	if err := buf.WriteBytes(tmp[:]); err != nil {
		zeroize.Bytes(tmp[:])
		buf.FastZeroize()
		*v = 0
		return err
	}
	zeroize.Bytes(tmp[:])
	*v = 0
	return nil
}

func DecodeUint32(src *[]byte) (uint32, error) {
	if len(*src) < 4 {
		zeroize.Bytes(*src)
		return 0, ErrLengthMismatch
	}
	v := binary.LittleEndian.Uint32((*src)[:4])
	consumed := (*src)[:4]
	*src = (*src)[4:]
	zeroize.Bytes(consumed)
	return v, nil
}

// EncodeByte / DecodeByte mirror the pair for single bytes (tags, flags).
func EncodeByte(buf *Buffer, v *byte) error {
	tmp := [1]byte{*v}
	if err := buf.WriteBytes(tmp[:]); err != nil {
		buf.FastZeroize()
		*v = 0
		return err
	}
	*v = 0
	return nil
}

func DecodeByte(src *[]byte) (byte, error) {
	if len(*src) < 1 {
		zeroize.Bytes(*src)
		return 0, ErrLengthMismatch
	}
	v := (*src)[0]
	*src = (*src)[1:]
	return v, nil
}

// EncodeFixedBytes writes a fixed-width secret byte array, zeroizing the
// source on success and on capacity failure alike.
func EncodeFixedBytes(buf *Buffer, v []byte) error {
	if err := buf.WriteBytes(v); err != nil {
		buf.FastZeroize()
		zeroize.Bytes(v)
		return err
	}
	zeroize.Bytes(v)
	return nil
}

// DecodeFixedBytes copies exactly len(dst) bytes from the front of *src
// into dst, advancing *src and zeroizing the consumed window.
func DecodeFixedBytes(src *[]byte, dst []byte) error {
	if len(*src) < len(dst) {
		zeroize.Bytes(*src)
		return ErrLengthMismatch
	}
	copy(dst, (*src)[:len(dst)])
	consumed := (*src)[:len(dst)]
	*src = (*src)[len(dst):]
	zeroize.Bytes(consumed)
	return nil
}
