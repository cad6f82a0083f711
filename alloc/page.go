//go:build linux

// Package alloc implements the page-locked memory primitives secret
// material is allocated into: raw mmap'd pages (Page) and a generic
// mmap-backed growable vector (AllockedVec) built on top of them.
package alloc

import (
	"errors"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

var (
	// ErrCreationFailed is returned when the underlying mmap allocation
	// fails.
	ErrCreationFailed = errors.New("alloc: page creation failed")
	// ErrLockFailed is returned when mlock fails. Callers treat this as
	// non-fatal: a page can still be used unlocked, just swappable.
	ErrLockFailed = errors.New("alloc: page lock failed")
	// ErrProtectionFailed is returned when mprotect(PROT_NONE) fails.
	ErrProtectionFailed = errors.New("alloc: page protection failed")
	// ErrUnprotectionFailed is returned when mprotect(PROT_READ|PROT_WRITE)
	// fails.
	ErrUnprotectionFailed = errors.New("alloc: page unprotection failed")
)

// Page is a single mmap'd anonymous allocation that can be locked against
// swap and toggled between accessible and inaccessible (PROT_NONE).
type Page struct {
	mem       []byte
	locked    bool
	protected bool
}

// NewPage allocates size bytes via mmap and attempts to mlock them. A lock
// failure is ignored and does not fail allocation — matching the teacher's
// "lock failures are non-fatal" policy; the page is then used unlocked —
// but mmap failure does.
func NewPage(size int) (*Page, error) {
	if size <= 0 {
		return &Page{}, nil
	}
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, ErrCreationFailed
	}
	p := &Page{mem: mem}
	if err := p.Lock(); err != nil {
		// Non-fatal: proceed unlocked.
		_ = err
	}
	runtime.KeepAlive(mem)
	return p, nil
}

// Bytes returns the page's addressable slice. Returns nil for a zero-size
// page.
func (p *Page) Bytes() []byte {
	if p == nil {
		return nil
	}
	return p.mem
}

// Len reports the page's size in bytes.
func (p *Page) Len() int {
	if p == nil {
		return 0
	}
	return len(p.mem)
}

// Lock prevents the kernel from swapping the page out. It first tries
// mlock2(MLOCK_ONFAULT), which locks pages as they are faulted in rather
// than all at once, falling back to plain mlock on kernels that lack it.
func (p *Page) Lock() error {
	if p == nil || len(p.mem) == 0 || p.locked {
		return nil
	}
	err := unix.Mlock2(p.mem, unix.MLOCK_ONFAULT)
	if err != nil && (err == unix.ENOSYS || err == unix.EINVAL) {
		err = unix.Mlock(p.mem)
	}
	if err != nil {
		return ErrLockFailed
	}
	p.locked = true
	return nil
}

// Protect marks the page PROT_NONE. Any access after this call (read or
// write) faults; callers must Unprotect first.
func (p *Page) Protect() error {
	if p == nil || len(p.mem) == 0 {
		return nil
	}
	if err := unix.Mprotect(p.mem, unix.PROT_NONE); err != nil {
		return ErrProtectionFailed
	}
	p.protected = true
	return nil
}

// Unprotect restores read/write access to the page.
func (p *Page) Unprotect() error {
	if p == nil || len(p.mem) == 0 {
		return nil
	}
	if err := unix.Mprotect(p.mem, unix.PROT_READ|unix.PROT_WRITE); err != nil {
		return ErrUnprotectionFailed
	}
	p.protected = false
	return nil
}

// Zeroize overwrites the page with zeroes. The page must be unprotected;
// calling this while PROT_NONE is in effect faults the process exactly as
// any other access would.
func (p *Page) Zeroize() {
	if p == nil || len(p.mem) == 0 {
		return
	}
	clear(p.mem)
	runtime.KeepAlive(p.mem)
}

// Dispose best-effort unprotects, zeroizes, unlocks, and unmaps the page.
// Errors from intermediate steps are ignored so that later cleanup steps
// still run — a leaked mapping is worse than a leftover lock.
func (p *Page) Dispose() {
	if p == nil || len(p.mem) == 0 {
		return
	}
	if p.protected {
		_ = p.Unprotect()
	}
	p.Zeroize()
	if p.locked {
		_ = unix.Munlock(p.mem)
	}
	_ = unix.Munmap(p.mem)
	p.mem = nil
	p.locked = false
	p.protected = false
}

// addr exposes the page's base address for diagnostics only.
func (p *Page) addr() unsafe.Pointer {
	if p == nil || len(p.mem) == 0 {
		return nil
	}
	return unsafe.Pointer(&p.mem[0])
}
