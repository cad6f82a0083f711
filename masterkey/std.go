package masterkey

import (
	"sync"

	"github.com/memparanoid/redoubt/entropy"
	"github.com/memparanoid/redoubt/zeroize"
)

// StdStore guards the root key behind a sync.Mutex. Go mutexes are never
// poisoned by a panicking holder (unlike Rust's std::sync::Mutex), so
// unlike the reference design there is no poisoned-lock recovery path to
// implement: a panic while holding the lock simply unwinds normally and
// the deferred Unlock still runs.
type StdStore struct {
	mu  sync.Mutex
	key *[32]byte
	src entropy.Source
}

// NewStdStore constructs a Store that generates its key from src on first
// use.
func NewStdStore(src entropy.Source) *StdStore {
	return &StdStore{src: src}
}

func (s *StdStore) Leak(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		key, err := generate(s.src)
		if err != nil {
			return nil, err
		}
		s.key = &key
	}

	out := make([]byte, n)
	copy(out, s.key[:n])
	return out, nil
}

func (s *StdStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key != nil {
		zeroize.Bytes(s.key[:])
		s.key = nil
	}
}
