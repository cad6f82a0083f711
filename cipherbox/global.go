package cipherbox

import (
	"sync"

	"github.com/memparanoid/redoubt/aead"
	"github.com/memparanoid/redoubt/masterkey"
	"github.com/memparanoid/redoubt/nonce"
)

// Global wraps a CipherBox with a mutex so that one instance can be shared
// safely across goroutines — the Go substitute for the reference design's
// derive-macro-generated singleton. NewGlobal does not enforce a single
// instance per process; each call returns an independent box. Global
// wraps Seal, Open, OpenMut and Poisoned; the per-field accessors are not
// exposed through it. CipherBox itself is deliberately not safe for
// concurrent use without this wrapper, matching the reference design's
// "not Sync" contract.
type Global[T Aggregate] struct {
	mu  sync.Mutex
	box *CipherBox[T]
}

// NewGlobal constructs a Global cipherbox backed by a freshly constructed
// CipherBox.
func NewGlobal[T Aggregate](ae aead.AEAD, gen *nonce.SessionGenerator, store masterkey.Store) *Global[T] {
	return &Global[T]{box: New[T](ae, gen, store)}
}

// Seal acquires the lock and delegates to the wrapped CipherBox.
func (g *Global[T]) Seal(value T) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.box.Seal(value)
}

// Open acquires the lock and delegates to the wrapped CipherBox.
func (g *Global[T]) Open(zero func() T, fn func(T) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.box.Open(zero, fn)
}

// OpenMut acquires the lock and delegates to the wrapped CipherBox.
func (g *Global[T]) OpenMut(zero func() T, fn func(T) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.box.OpenMut(zero, fn)
}

// Poisoned reports the wrapped CipherBox's poisoned state.
func (g *Global[T]) Poisoned() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.box.Poisoned()
}
