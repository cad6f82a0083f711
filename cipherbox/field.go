package cipherbox

import "github.com/memparanoid/redoubt/zeroize"

// OpenField decrypts only field index and hands it to fn, leaving every
// other field's ciphertext untouched and never materializing the rest of
// T. This is the Go substitute for the reference design's const-generic
// per-field accessor: Go cannot parameterize a method by an additional
// type parameter, so this is a package-level generic function taking a
// runtime index instead of a compile-time one, returning ErrFieldIndex
// for an out-of-range index rather than failing to compile.
func OpenField[T Aggregate](b *CipherBox[T], zero func() T, index int, fn func(Field) error) error {
	if b.poisoned {
		return ErrPoisoned
	}
	if index < 0 || index >= b.n {
		return ErrFieldIndex
	}
	if !b.initialized {
		return fn(zero().Fields()[index])
	}

	plaintext, err := b.decryptField(index)
	if err != nil {
		return err
	}
	field := zero().Fields()[index]
	defer field.FastZeroize()
	src := plaintext
	if _, err := field.DecodeFrom(&src); err != nil {
		zeroize.Bytes(plaintext)
		return err
	}
	return fn(field)
}

// OpenFieldMut decrypts field index, lets fn mutate it, and re-encrypts
// only that field under a fresh nonce. Every other field's ciphertext,
// nonce, and tag are left exactly as they were.
func OpenFieldMut[T Aggregate](b *CipherBox[T], zero func() T, index int, fn func(Field) error) error {
	if b.poisoned {
		return ErrPoisoned
	}
	if index < 0 || index >= b.n {
		return ErrFieldIndex
	}

	field := zero().Fields()[index]
	defer field.FastZeroize()
	if b.initialized {
		plaintext, err := b.decryptField(index)
		if err != nil {
			return err
		}
		src := plaintext
		if _, err := field.DecodeFrom(&src); err != nil {
			zeroize.Bytes(plaintext)
			return err
		}
	}

	if err := fn(field); err != nil {
		return err
	}

	b.maybeInitialize(len(zero().Fields()))
	ct, nonceBytes, tag, err := b.encryptField(field)
	if err != nil {
		b.poisoned = true
		return ErrPoisoned
	}
	b.ciphertexts[index] = ct
	b.nonces[index] = nonceBytes
	b.tags[index] = tag
	return nil
}

// LeakField decrypts field index, decodes it into a fresh F, and returns
// it wrapped in a zeroize.Guard the caller must Close. newField must
// construct the same concrete type Seal originally encoded at this
// index. The box's ciphertext is never modified.
func LeakField[T Aggregate, F Field](b *CipherBox[T], index int, newField func() F) (*zeroize.Guard[F], error) {
	if b.poisoned {
		return nil, ErrPoisoned
	}
	if index < 0 || index >= b.n {
		return nil, ErrFieldIndex
	}
	if !b.initialized {
		return nil, ErrFieldIndex
	}

	plaintext, err := b.decryptField(index)
	if err != nil {
		return nil, err
	}
	field := newField()
	src := plaintext
	if _, err := field.DecodeFrom(&src); err != nil {
		zeroize.Bytes(plaintext)
		return nil, err
	}
	zeroize.Bytes(plaintext)
	return zeroize.NewGuard[F](field), nil
}
