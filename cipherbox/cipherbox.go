// Package cipherbox implements field-sharded encrypt-at-rest containers for
// aggregate structs: each field is independently encrypted under its own
// nonce, so mutating one field never requires touching the others'
// ciphertexts.
package cipherbox

import (
	"errors"

	"github.com/memparanoid/redoubt/aead"
	"github.com/memparanoid/redoubt/codec"
	"github.com/memparanoid/redoubt/masterkey"
	"github.com/memparanoid/redoubt/nonce"
	"github.com/memparanoid/redoubt/zeroize"
)

var (
	// ErrFieldIndex is returned by the per-field accessors when index is
	// out of [0, N). Go has no const generics to catch this at compile
	// time the way the reference design's per-field type parameter does,
	// so it is a runtime-checked error instead.
	ErrFieldIndex = errors.New("cipherbox: field index out of range")
	// ErrPoisoned is returned by every operation once a re-encrypt left
	// fewer than N valid slots. A poisoned box can only be inspected for
	// diagnostics; it must be discarded.
	ErrPoisoned = errors.New("cipherbox: box poisoned")
	// ErrAuthenticationFailed surfaces a tag mismatch on open. The box's
	// existing ciphertexts are left untouched when this occurs.
	ErrAuthenticationFailed = errors.New("cipherbox: authentication failed")
)

// AAD is mixed into every AEAD call this package makes, binding ciphertext
// to "this is a cipherbox-v1 field" independent of caller-supplied
// associated data.
var AAD = []byte("redoubt-cipherbox-v1")

// Field is the per-field contract CipherBox needs in order to encode,
// decode, and zeroize a struct field without reflection.
type Field interface {
	codec.Encode
	codec.Decode
	codec.BytesRequired
	zeroize.FastZeroizable
	zeroize.ZeroizationProbe
}

// Aggregate is implemented by hand on the user's struct, returning pointers
// to its own fields in stable order. This is the Go substitute for the
// derive-macro-generated per-field indexing the reference design relies
// on: Go has neither macros nor const generics, so field count (N) is
// discovered at runtime via len(Fields()) instead of fixed at compile
// time.
type Aggregate interface {
	Fields() []Field
}

// CipherBox holds N parallel (nonce, tag, ciphertext) triples, one per
// field of T, encrypted under a process-wide master key that is fetched
// and zeroized on every single operation — it is never retained inside the
// box itself.
type CipherBox[T Aggregate] struct {
	ae          aead.AEAD
	gen         *nonce.SessionGenerator
	store       masterkey.Store
	n           int
	nonces      [][]byte
	tags        [][]byte
	ciphertexts [][]byte
	initialized bool
	poisoned    bool
}

// New constructs an empty CipherBox. It becomes initialized, with its
// field count fixed, on the first Seal.
func New[T Aggregate](ae aead.AEAD, gen *nonce.SessionGenerator, store masterkey.Store) *CipherBox[T] {
	return &CipherBox[T]{ae: ae, gen: gen, store: store}
}

func (b *CipherBox[T]) maybeInitialize(n int) {
	if b.initialized {
		return
	}
	b.n = n
	b.nonces = make([][]byte, n)
	b.tags = make([][]byte, n)
	b.ciphertexts = make([][]byte, n)
	b.initialized = true
}

// Seal encrypts every field of value under a fresh nonce per field,
// replacing the box's entire contents. Used both for first-time
// population and internally by OpenMut's re-encrypt step.
func (b *CipherBox[T]) Seal(value T) error {
	if b.poisoned {
		return ErrPoisoned
	}
	fields := value.Fields()
	n := len(fields)
	b.maybeInitialize(n)
	if n != b.n {
		return ErrFieldIndex
	}

	newNonces := make([][]byte, n)
	newTags := make([][]byte, n)
	newCiphertexts := make([][]byte, n)
	success := 0

	for i, f := range fields {
		ct, nonceBytes, tag, err := b.encryptField(f)
		if err != nil {
			// Preserve whatever this field held before; count it as not
			// successfully refreshed.
			newNonces[i] = b.nonces[i]
			newTags[i] = b.tags[i]
			newCiphertexts[i] = b.ciphertexts[i]
			continue
		}
		newNonces[i] = nonceBytes
		newTags[i] = tag
		newCiphertexts[i] = ct
		success++
	}

	b.nonces, b.tags, b.ciphertexts = newNonces, newTags, newCiphertexts
	if success < n {
		b.poisoned = true
		return ErrPoisoned
	}
	return nil
}

func (b *CipherBox[T]) encryptField(f Field) (ciphertext, nonceBytes, tag []byte, err error) {
	n, err := f.BytesRequired()
	if err != nil {
		return nil, nil, nil, err
	}
	buf, err := codec.NewBuffer(n)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := f.EncodeInto(buf); err != nil {
		return nil, nil, nil, err
	}
	plaintext := buf.ExportAsBytes()

	nonceBytes, err = b.gen.Next()
	if err != nil {
		zeroize.Bytes(plaintext)
		return nil, nil, nil, err
	}

	key, err := b.store.Leak(b.ae.KeySize())
	if err != nil {
		zeroize.Bytes(plaintext)
		return nil, nil, nil, err
	}
	defer zeroize.Bytes(key)

	tag = make([]byte, b.ae.TagSize())
	if err := b.ae.Encrypt(key, nonceBytes, AAD, plaintext, tag); err != nil {
		zeroize.Bytes(plaintext)
		return nil, nil, nil, err
	}
	return plaintext, nonceBytes, tag, nil
}

// decryptField decrypts a copy of field i's ciphertext and returns the
// plaintext. On authentication failure the copy is zeroized by the AEAD
// backend and ErrAuthenticationFailed is returned; the box's stored
// ciphertext for this field is not modified either way.
func (b *CipherBox[T]) decryptField(i int) ([]byte, error) {
	ct := make([]byte, len(b.ciphertexts[i]))
	copy(ct, b.ciphertexts[i])

	key, err := b.store.Leak(b.ae.KeySize())
	if err != nil {
		zeroize.Bytes(ct)
		return nil, err
	}
	defer zeroize.Bytes(key)

	if err := b.ae.Decrypt(key, b.nonces[i], AAD, ct, b.tags[i]); err != nil {
		return nil, ErrAuthenticationFailed
	}
	return ct, nil
}

// Open decrypts every field into a freshly constructed value of type T and
// invokes fn with it. The box's ciphertexts are never modified by Open.
// zero must return a usable zero-value T whose Fields() are in the same
// stable order Seal originally used. The decoded fields are zeroized when
// Open returns, including when fn panics.
func (b *CipherBox[T]) Open(zero func() T, fn func(T) error) error {
	if b.poisoned {
		return ErrPoisoned
	}
	if !b.initialized {
		return fn(zero())
	}

	value := zero()
	fields := value.Fields()
	if len(fields) != b.n {
		return ErrFieldIndex
	}
	defer func() {
		for _, f := range fields {
			f.FastZeroize()
		}
	}()

	for i, f := range fields {
		plaintext, err := b.decryptField(i)
		if err != nil {
			// Preserve pre-state: abort without calling fn, nothing in
			// the box changes.
			return err
		}
		src := plaintext
		if _, err := f.DecodeFrom(&src); err != nil {
			zeroize.Bytes(plaintext)
			return err
		}
	}

	return fn(value)
}

// OpenMut decrypts every field, lets fn mutate the value, and re-encrypts
// every field under fresh nonces. A decrypt failure preserves the box's
// pre-state entirely (nothing is re-encrypted). A re-encrypt failure on
// fewer than N fields poisons the box but still commits whatever succeeded
// plus whatever was preserved from before, per this module's failure
// policy: decrypt-path failures never mutate state; only a re-encrypt that
// would leave the box with fewer than N valid ciphertexts sets Poisoned.
// The decoded fields are zeroized when OpenMut returns, including when fn
// panics.
func (b *CipherBox[T]) OpenMut(zero func() T, fn func(T) error) error {
	if b.poisoned {
		return ErrPoisoned
	}

	value := zero()
	fields := value.Fields()
	defer func() {
		for _, f := range fields {
			f.FastZeroize()
		}
	}()
	if b.initialized {
		if len(fields) != b.n {
			return ErrFieldIndex
		}
		for i, f := range fields {
			plaintext, err := b.decryptField(i)
			if err != nil {
				return err
			}
			src := plaintext
			if _, err := f.DecodeFrom(&src); err != nil {
				zeroize.Bytes(plaintext)
				return err
			}
		}
	}

	if err := fn(value); err != nil {
		return err
	}

	return b.Seal(value)
}

// Poisoned reports whether a prior re-encrypt left fewer than N valid
// slots.
func (b *CipherBox[T]) Poisoned() bool { return b.poisoned }
