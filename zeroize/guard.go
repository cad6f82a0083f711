package zeroize

import (
	"fmt"
	"log"
	"runtime"
)

// Inner is the constraint a value must satisfy to be wrapped by Guard: it
// must know how to zeroize itself and report whether it already has.
type Inner interface {
	FastZeroizable
	ZeroizationProbe
}

// Guard owns a value of type T and zeroizes it exactly once, either when
// Close is called or, as a last-resort safety net, when the guard is
// garbage collected without having been closed. Go has no destructors, so
// callers MUST defer guard.Close() at the point of construction; the
// finalizer exists only to catch bugs, not as the primary mechanism.
type Guard[T Inner] struct {
	inner    T
	sentinel Sentinel
	closed   bool
}

// NewGuard wraps inner, registering a finalizer that reports (without
// crashing the process) if the guard is collected before Close runs.
func NewGuard[T Inner](inner T) *Guard[T] {
	g := &Guard[T]{inner: inner, sentinel: NewSentinel()}
	runtime.SetFinalizer(g, func(g *Guard[T]) {
		if g.closed {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				log.Printf("zeroize: guard finalizer recovered: %v", r)
			}
		}()
		log.Printf("zeroize: Guard[%T] was garbage collected without Close; zeroizing late", g.inner)
		g.zeroizeLocked()
	})
	return g
}

// Get returns a pointer to the wrapped value. The caller must not retain it
// past Close.
func (g *Guard[T]) Get() *T {
	return &g.inner
}

func (g *Guard[T]) zeroizeLocked() {
	g.inner.FastZeroize()
	g.sentinel.FastZeroize()
}

// Close zeroizes the wrapped value. It panics if the value was already
// zeroized out from under the guard by something other than Close, since
// that indicates the caller's zeroization ordering does not match the
// guard's expectations. Close is idempotent across repeated calls.
func (g *Guard[T]) Close() {
	if g.closed {
		return
	}
	g.closed = true
	runtime.SetFinalizer(g, nil)
	g.zeroizeLocked()
	if !g.inner.IsZeroized() {
		panic(fmt.Sprintf("zeroize: Guard[%T].Close: value not zeroized after FastZeroize", g.inner))
	}
}

// IntoInner consumes the guard and returns the wrapped value without
// zeroizing it. The caller takes over responsibility for zeroization.
func (g *Guard[T]) IntoInner() T {
	g.closed = true
	runtime.SetFinalizer(g, nil)
	return g.inner
}

func (g *Guard[T]) String() string {
	return "[REDACTED Guard]"
}
