package masterkey

import (
	"runtime"
	"sync/atomic"

	"github.com/memparanoid/redoubt/entropy"
	"github.com/memparanoid/redoubt/zeroize"
)

const (
	stateUninit int32 = iota
	stateInProgress
	stateDone
)

// PortableStore is a one-time-init atomic state machine, for environments
// where a sync.Mutex-based global is undesirable (e.g. no goroutine
// scheduler guarantees assumed beyond a plain spin-wait). Every caller
// racing to initialize observes the same generated key: the loser of the
// CAS spins until the winner transitions to stateDone.
type PortableStore struct {
	state atomic.Int32
	key   [32]byte
	src   entropy.Source
}

// NewPortableStore constructs a Store using the atomic-state-machine
// initialization strategy.
func NewPortableStore(src entropy.Source) *PortableStore {
	return &PortableStore{src: src}
}

func (s *PortableStore) ensureInit() error {
	for {
		switch s.state.Load() {
		case stateDone:
			return nil
		case stateUninit:
			if s.state.CompareAndSwap(stateUninit, stateInProgress) {
				key, err := generate(s.src)
				if err != nil {
					s.state.Store(stateUninit)
					return err
				}
				s.key = key
				s.state.Store(stateDone)
				return nil
			}
		default: // stateInProgress
			runtime.Gosched()
		}
	}
}

func (s *PortableStore) Leak(n int) ([]byte, error) {
	if err := s.ensureInit(); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, s.key[:n])
	return out, nil
}

func (s *PortableStore) Reset() {
	zeroize.Bytes(s.key[:])
	s.state.Store(stateUninit)
}
