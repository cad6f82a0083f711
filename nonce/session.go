// Package nonce generates per-process, collision-free AEAD nonces.
package nonce

import (
	"encoding/binary"
	"sync/atomic"

	"golang.org/x/crypto/chacha20"

	"github.com/memparanoid/redoubt/entropy"
)

// SessionGenerator mixes a per-process session salt, drawn once from an
// entropy.Source, with a monotonic counter through a ChaCha20 keystream to
// produce nonces with no within-process collisions for the lifetime of the
// generator. This does not protect against collisions across process
// restarts — callers relying on that property must combine it with a
// persisted counter, which is out of this module's scope.
type SessionGenerator struct {
	size    int
	salt    [32]byte
	counter atomic.Uint64
}

// NewSessionGenerator draws a 32-byte session salt from src and returns a
// generator that produces nonceSize-byte nonces.
func NewSessionGenerator(src entropy.Source, nonceSize int) (*SessionGenerator, error) {
	g := &SessionGenerator{size: nonceSize}
	if err := src.Fill(g.salt[:]); err != nil {
		return nil, err
	}
	return g, nil
}

// Next returns the next nonce in the session sequence.
func (g *SessionGenerator) Next() ([]byte, error) {
	n := g.counter.Add(1)

	var counterBytes [12]byte
	binary.LittleEndian.PutUint64(counterBytes[:8], n)

	stream, err := chacha20.NewUnauthenticatedCipher(g.salt[:], counterBytes[:])
	if err != nil {
		return nil, err
	}

	out := make([]byte, g.size)
	src := make([]byte, g.size)
	stream.XORKeyStream(out, src)
	return out, nil
}
