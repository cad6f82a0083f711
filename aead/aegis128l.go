package aead

import (
	"crypto/subtle"

	"github.com/memparanoid/redoubt/zeroize"
)

// Aegis128L is a from-scratch, pure-Go software implementation of the
// AEGIS-128L AEAD. It is the fast path when AES hardware acceleration is
// available; there is no Go-ecosystem implementation to depend on, so the
// state-update algorithm and AES round primitive are hand-rolled here.
type Aegis128L struct{}

// NewAegis128L constructs the hardware-accelerated-friendly AEAD backend.
func NewAegis128L() *Aegis128L { return &Aegis128L{} }

func (Aegis128L) KeySize() int       { return 16 }
func (Aegis128L) NonceSize() int     { return 16 }
func (Aegis128L) TagSize() int       { return 16 }
func (Aegis128L) BackendName() string { return "aegis128l" }

func (a Aegis128L) Encrypt(key, nonce, aad, plaintext []byte, tag []byte) error {
	if len(key) != a.KeySize() {
		return ErrInvalidKeySize
	}
	if len(nonce) != a.NonceSize() {
		return ErrInvalidNonceSize
	}
	if len(tag) != a.TagSize() {
		return ErrInvalidTagSize
	}

	var st aegis128LState
	var k, n [16]byte
	copy(k[:], key)
	copy(n[:], nonce)
	st.init(&k, &n)
	zeroize.Bytes(k[:])

	absorbPadded(&st, aad)

	full := (len(plaintext) / aegisBlockSize) * aegisBlockSize
	for i := 0; i < full; i += aegisBlockSize {
		var m0, m1 [16]byte
		copy(m0[:], plaintext[i:i+16])
		copy(m1[:], plaintext[i+16:i+32])
		c0, c1 := st.encryptBlock(&m0, &m1)
		copy(plaintext[i:i+16], c0[:])
		copy(plaintext[i+16:i+32], c1[:])
	}

	if rem := len(plaintext) - full; rem > 0 {
		var m0, m1 [16]byte
		tail := plaintext[full:]
		var padded [32]byte
		copy(padded[:], tail)
		copy(m0[:], padded[:16])
		copy(m1[:], padded[16:])
		c0, c1 := st.encryptBlock(&m0, &m1)
		var cOut [32]byte
		copy(cOut[:16], c0[:])
		copy(cOut[16:], c1[:])
		copy(tail, cOut[:rem])
		zeroize.Bytes(padded[:])
		zeroize.Bytes(cOut[:])
	}

	t := st.finalize(uint64(len(aad))*8, uint64(len(plaintext))*8)
	copy(tag, t[:])
	return nil
}

func (a Aegis128L) Decrypt(key, nonce, aad, ciphertext []byte, tag []byte) error {
	if len(key) != a.KeySize() {
		return ErrInvalidKeySize
	}
	if len(nonce) != a.NonceSize() {
		return ErrInvalidNonceSize
	}
	if len(tag) != a.TagSize() {
		return ErrInvalidTagSize
	}

	var st aegis128LState
	var k, n [16]byte
	copy(k[:], key)
	copy(n[:], nonce)
	st.init(&k, &n)
	zeroize.Bytes(k[:])

	absorbPadded(&st, aad)

	full := (len(ciphertext) / aegisBlockSize) * aegisBlockSize
	for i := 0; i < full; i += aegisBlockSize {
		var c0, c1 [16]byte
		copy(c0[:], ciphertext[i:i+16])
		copy(c1[:], ciphertext[i+16:i+32])
		m0, m1 := st.decryptBlock(&c0, &c1)
		copy(ciphertext[i:i+16], m0[:])
		copy(ciphertext[i+16:i+32], m1[:])
	}

	if rem := len(ciphertext) - full; rem > 0 {
		tail := ciphertext[full:]
		z0, z1 := st.zBlocks()
		var cPadded [32]byte
		copy(cPadded[:], tail)
		var mOut [32]byte
		for i := 0; i < 16; i++ {
			mOut[i] = cPadded[i] ^ z0[i]
			mOut[16+i] = cPadded[16+i] ^ z1[i]
		}
		// Zero the keystream-only tail positions before feeding the
		// update, per the AEGIS partial-block finalization rule: bytes
		// beyond the true message length must not leak into the state.
		for i := rem; i < 32; i++ {
			mOut[i] = 0
		}
		var m0, m1 [16]byte
		copy(m0[:], mOut[:16])
		copy(m1[:], mOut[16:])
		st.update(&m0, &m1)
		copy(tail, mOut[:rem])
		zeroize.Bytes(cPadded[:])
		zeroize.Bytes(mOut[:])
	}

	t := st.finalize(uint64(len(aad))*8, uint64(len(ciphertext))*8)
	if subtle.ConstantTimeCompare(t[:], tag) != 1 {
		zeroize.Bytes(ciphertext)
		return ErrAuthenticationFailed
	}
	return nil
}

func absorbPadded(st *aegis128LState, ad []byte) {
	full := (len(ad) / aegisBlockSize) * aegisBlockSize
	for i := 0; i < full; i += aegisBlockSize {
		var m0, m1 [16]byte
		copy(m0[:], ad[i:i+16])
		copy(m1[:], ad[i+16:i+32])
		st.absorb(&m0, &m1)
	}
	if rem := len(ad) - full; rem > 0 {
		var padded [32]byte
		copy(padded[:], ad[full:])
		var m0, m1 [16]byte
		copy(m0[:], padded[:16])
		copy(m1[:], padded[16:])
		st.absorb(&m0, &m1)
		zeroize.Bytes(padded[:])
	}
}
