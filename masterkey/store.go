// Package masterkey holds the process-global root key that every AEAD
// operation in this module derives its per-call key from.
package masterkey

import (
	"github.com/memparanoid/redoubt/entropy"
	"github.com/memparanoid/redoubt/zeroize"
)

// Store lazily generates and guards the 32-byte process-global root key.
type Store interface {
	// Leak returns a freshly allocated copy of the first n bytes of the
	// root key, generating it on first call. The caller owns the
	// returned slice and must zeroize it when done.
	Leak(n int) ([]byte, error)
	// Reset discards the generated key, forcing regeneration on next
	// Leak. Test-only: production callers never need to rotate the
	// process root key.
	Reset()
}

// generate fills a fresh 32-byte key from src and scrambles it with a
// double Fisher-Yates permutation seeded from two independent entropy
// draws, giving roughly 2^128 resistance to key-recovery even if the raw
// entropy draw were partially predictable.
func generate(src entropy.Source) ([32]byte, error) {
	var key [32]byte
	if err := src.Fill(key[:]); err != nil {
		return key, err
	}

	var seedBytes [16]byte
	if err := src.Fill(seedBytes[:]); err != nil {
		zeroize.Bytes(key[:])
		return key, err
	}
	seed1 := leUint64(seedBytes[:8])
	seed2 := leUint64(seedBytes[8:])
	zeroize.Bytes(seedBytes[:])

	if seed1 == 0 {
		seed1 = 1
	}
	if seed2 == 0 {
		seed2 = 1
	}

	doublePermute(key[:], &seed1, &seed2)
	return key, nil
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
