// Package secret provides Secret[T], a heap-boxed wrapper that prevents
// accidental copying or logging of sensitive values.
package secret

import (
	"github.com/memparanoid/redoubt/zeroize"
)

// Movable is the constraint a type must satisfy to live inside a Secret:
// it knows how to zeroize itself and report whether it already has.
type Movable interface {
	zeroize.FastZeroizable
	zeroize.ZeroizationProbe
}

// Secret wraps a heap-allocated value of type T, deliberately offering no
// Deref, no Clone/copy method, and a redacted String/GoString so that
// logging or printing a Secret never leaks its contents. Go's garbage
// collector means there is no literal stack-vs-heap placement knob the way
// Box<T> gives Rust, but wrapping in a pointer-to-struct still keeps the
// value out of any caller's stack frame that only holds the Secret by
// value.
type Secret[T Movable] struct {
	inner *T
	sent  zeroize.Sentinel
}

// From moves sensitiveData into a new Secret, zeroizing the source.
// zero must produce T's zero value (the Go analogue of Rust's
// Default::default() for the mem::take move-out).
func From[T Movable](sensitiveData *T, zero func() T) Secret[T] {
	value := *sensitiveData
	*sensitiveData = zero()
	boxed := new(T)
	*boxed = value
	return Secret[T]{inner: boxed, sent: zeroize.NewSentinel()}
}

// Replace zeroizes the Secret's current value and moves in a new one from
// value, zeroizing the source.
func (s *Secret[T]) Replace(value *T, zero func() T) {
	(*s.inner).FastZeroize()
	*s.inner = *value
	*value = zero()
}

// Ref returns a read-only pointer to the wrapped value. Callers must not
// dereference-and-copy a Copy-like T out of this pointer — doing so
// recreates the exact leak Secret exists to prevent.
func (s *Secret[T]) Ref() *T {
	return s.inner
}

// Mut returns a mutable pointer to the wrapped value.
func (s *Secret[T]) Mut() *T {
	return s.inner
}

// FastZeroize zeroizes the wrapped value and flips the sentinel. A
// value-receiver FastZeroize only clears a copy, so if the wrapped value
// still reports non-zero afterward it is overwritten with T's zero value.
func (s *Secret[T]) FastZeroize() {
	(*s.inner).FastZeroize()
	if !(*s.inner).IsZeroized() {
		var zero T
		*s.inner = zero
	}
	s.sent.FastZeroize()
}

// IsZeroized reports whether the wrapped value is zeroized.
func (s *Secret[T]) IsZeroized() bool {
	return (*s.inner).IsZeroized()
}

// CloneSentinel returns the zeroize sentinel for this secret, for test
// assertions that zeroization happened after the Secret went out of scope.
func (s *Secret[T]) CloneSentinel() zeroize.Sentinel {
	return s.sent
}

func (s *Secret[T]) String() string {
	return "[REDACTED Secret]"
}

func (s *Secret[T]) GoString() string {
	return "[REDACTED Secret]"
}
