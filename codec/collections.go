package codec

import "github.com/memparanoid/redoubt/zeroize"

// collection header: <elem_count uint64 LE><byte_length uint64 LE>, then the
// payload. byte_length lets a decoder validate framing without knowing T's
// per-element wire size in advance, and lets it skip a collection it
// doesn't understand by byte count alone.

// EncodeByteVec writes a []byte as a length-prefixed collection, using the
// bulk memcpy fast path since byte is already the wire representation.
// The source slice is zeroized on return, success or failure.
func EncodeByteVec(buf *Buffer, v []byte) error {
	elemCount := uint64(len(v))
	byteLen := elemCount
	if err := EncodeUint64(buf, &elemCount); err != nil {
		zeroize.Bytes(v)
		return err
	}
	bl := byteLen
	if err := EncodeUint64(buf, &bl); err != nil {
		zeroize.Bytes(v)
		return err
	}
	return EncodeFixedBytes(buf, v)
}

// DecodeByteVec reads a length-prefixed []byte collection, allocating a
// fresh slice of the declared length. Bytes beyond the declared length are
// left untouched in *src (not consumed, not zeroized), matching the wire
// format's framing contract.
func DecodeByteVec(src *[]byte) ([]byte, error) {
	elemCount, err := DecodeUint64(src)
	if err != nil {
		return nil, err
	}
	byteLen, err := DecodeUint64(src)
	if err != nil {
		return nil, err
	}
	if byteLen != elemCount {
		zeroize.Bytes(*src)
		return nil, ErrPreconditionViolated
	}
	out := make([]byte, elemCount)
	if err := DecodeFixedBytes(src, out); err != nil {
		zeroize.Bytes(out)
		return nil, err
	}
	return out, nil
}

// EncodeSlice writes a slice of non-primitive elements one at a time via
// their own Encode implementation, after writing the collection header.
// Each element's EncodeInto is responsible for zeroizing itself.
func EncodeSlice[T interface {
	Encode
	BytesRequired
}](buf *Buffer, elems []T) error {
	elemCount := uint64(len(elems))
	total := 0
	for _, e := range elems {
		n, err := e.BytesRequired()
		if err != nil {
			return err
		}
		total += n
	}
	byteLen := uint64(total)
	if err := EncodeUint64(buf, &elemCount); err != nil {
		return err
	}
	if err := EncodeUint64(buf, &byteLen); err != nil {
		return err
	}
	for i := range elems {
		if err := elems[i].EncodeInto(buf); err != nil {
			buf.FastZeroize()
			return err
		}
	}
	return nil
}

// DecodeSlice reads a length-prefixed collection of elements implementing
// Decode, via a constructor for the zero-value element.
func DecodeSlice[T Decode](src *[]byte, newElem func() T) ([]T, error) {
	elemCount, err := DecodeUint64(src)
	if err != nil {
		return nil, err
	}
	if _, err := DecodeUint64(src); err != nil { // byte_length, read but not checked against the per-element decode
		return nil, err
	}
	out := make([]T, 0, elemCount)
	for i := uint64(0); i < elemCount; i++ {
		e := newElem()
		if _, err := e.DecodeFrom(src); err != nil {
			zeroize.Bytes(*src)
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// EncodeArray writes a fixed-size array as a collection, returning
// ErrPreconditionViolated if len(v) != n; DecodeArray checks the element
// count against n again at decode time.
func EncodeArray(buf *Buffer, v []byte, n int) error {
	if len(v) != n {
		return ErrPreconditionViolated
	}
	return EncodeByteVec(buf, v)
}

// DecodeArray reads a fixed-size array collection and asserts elem_count
// equals n, returning ErrPreconditionViolated otherwise.
func DecodeArray(src *[]byte, n int) ([]byte, error) {
	out, err := DecodeByteVec(src)
	if err != nil {
		return nil, err
	}
	if len(out) != n {
		zeroize.Bytes(out)
		return nil, ErrPreconditionViolated
	}
	return out, nil
}
