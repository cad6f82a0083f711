package aead

import (
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/memparanoid/redoubt/zeroize"
)

// XChaCha20Poly1305 wraps the real golang.org/x/crypto/chacha20poly1305
// construction (HChaCha20 subkey derivation, Poly1305 one-time key from
// the ChaCha20 block-counter-zero keystream, MAC framing over
// aad||pad16(aad)||ct||pad16(ct)||len(aad)||len(ct)), chosen as the
// fallback backend because it is always available regardless of hardware
// acceleration.
type XChaCha20Poly1305 struct{}

// NewXChaCha20Poly1305 constructs the fallback AEAD backend.
func NewXChaCha20Poly1305() *XChaCha20Poly1305 { return &XChaCha20Poly1305{} }

func (XChaCha20Poly1305) KeySize() int   { return chacha20poly1305.KeySize }
func (XChaCha20Poly1305) NonceSize() int { return chacha20poly1305.NonceSizeX }
func (XChaCha20Poly1305) TagSize() int   { return chacha20poly1305.Overhead }
func (XChaCha20Poly1305) BackendName() string { return "xchacha20poly1305" }

func (x XChaCha20Poly1305) Encrypt(key, nonce, aad, plaintext []byte, tag []byte) error {
	if len(key) != x.KeySize() {
		return ErrInvalidKeySize
	}
	if len(nonce) != x.NonceSize() {
		return ErrInvalidNonceSize
	}
	if len(tag) != x.TagSize() {
		return ErrInvalidTagSize
	}
	aeadImpl, err := chacha20poly1305.NewX(key)
	if err != nil {
		return err
	}
	// Seal may need to grow beyond plaintext's capacity, in which case it
	// allocates a new backing array rather than writing through the
	// caller's slice header — so the result is always copied back into
	// plaintext/tag explicitly rather than relying on in-place aliasing.
	sealed := aeadImpl.Seal(nil, nonce, plaintext, aad)
	copy(plaintext, sealed[:len(plaintext)])
	copy(tag, sealed[len(plaintext):])
	zeroize.Bytes(sealed)
	return nil
}

func (x XChaCha20Poly1305) Decrypt(key, nonce, aad, ciphertext []byte, tag []byte) error {
	if len(key) != x.KeySize() {
		return ErrInvalidKeySize
	}
	if len(nonce) != x.NonceSize() {
		return ErrInvalidNonceSize
	}
	if len(tag) != x.TagSize() {
		return ErrInvalidTagSize
	}
	aeadImpl, err := chacha20poly1305.NewX(key)
	if err != nil {
		return err
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	opened, err := aeadImpl.Open(nil, nonce, sealed, aad)
	zeroize.Bytes(sealed)
	if err != nil {
		zeroize.Bytes(ciphertext)
		return ErrAuthenticationFailed
	}
	copy(ciphertext, opened)
	zeroize.Bytes(opened)
	return nil
}
