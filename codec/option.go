package codec

// Option header tags.
const (
	optionNone byte = 0
	optionSome byte = 1
)

// EncodeOption writes a tagged optional value: a 1-byte tag (0 = none,
// 1 = some) followed by v's own encoding when present is true. v is
// ignored (and not consumed) when present is false.
func EncodeOption[T interface {
	Encode
	BytesRequired
}](buf *Buffer, v T, present bool) error {
	tag := optionNone
	if present {
		tag = optionSome
	}
	if err := EncodeByte(buf, &tag); err != nil {
		return err
	}
	if !present {
		return nil
	}
	return v.EncodeInto(buf)
}

// DecodeOption reads a tagged optional value, constructing a fresh element
// via newElem only when the tag marks it present. It returns (zero, false,
// nil) for an absent value.
func DecodeOption[T Decode](src *[]byte, newElem func() T) (v T, present bool, err error) {
	tag, err := DecodeByte(src)
	if err != nil {
		return v, false, err
	}
	switch tag {
	case optionNone:
		return v, false, nil
	case optionSome:
		e := newElem()
		if _, err := e.DecodeFrom(src); err != nil {
			return v, false, err
		}
		return e, true, nil
	default:
		return v, false, ErrInvalidOptionTag
	}
}
