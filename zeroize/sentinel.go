package zeroize

import "sync/atomic"

// Sentinel is a shared, clonable flag used to verify at runtime that
// FastZeroize was called on a value before it went out of scope. The zero
// value is not usable; construct with NewSentinel.
//
// Sentinel wraps a pointer to a shared atomic.Bool, so copying a Sentinel
// value (Go has no implicit clone — this is just struct assignment) shares
// the same underlying flag, mirroring the Arc<AtomicBool> sharing the
// original design relies on for the clone-before-drop test pattern.
type Sentinel struct {
	pristine *atomic.Bool
}

// NewSentinel returns a sentinel in the pristine (not yet zeroized) state.
func NewSentinel() Sentinel {
	p := &atomic.Bool{}
	p.Store(true)
	return Sentinel{pristine: p}
}

// Reset returns the sentinel to the pristine state. Useful when a sentinel
// is reused across multiple test assertions.
func (s Sentinel) Reset() {
	s.pristine.Store(true)
}

// IsZeroized reports whether FastZeroize has been called since
// construction or the last Reset.
func (s Sentinel) IsZeroized() bool {
	return !s.pristine.Load()
}

// FastZeroize flips the sentinel to the zeroized state.
func (s Sentinel) FastZeroize() {
	s.pristine.Store(false)
}

// CanBulkZeroize is always false: the sentinel's zero value (a nil pointer)
// is never a valid sentinel, so it is excluded from bulk-zeroize fast paths.
func (Sentinel) CanBulkZeroize() bool { return false }

// Equal compares the current flag state of two sentinels, not pointer
// identity, matching the semantics of the reference PartialEq impl.
func (s Sentinel) Equal(other Sentinel) bool {
	return s.pristine.Load() == other.pristine.Load()
}
