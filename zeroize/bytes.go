package zeroize

import (
	"runtime"
	"unsafe"
)

// Bytes overwrites b with zeroes. The compiler cannot prove the write dead
// because the slice escapes through runtime.KeepAlive afterward.
func Bytes(b []byte) {
	if len(b) == 0 {
		return
	}
	clear(b)
	runtime.KeepAlive(b)
}

// Uint64s overwrites a slice of uint64 with zeroes.
func Uint64s(w []uint64) {
	if len(w) == 0 {
		return
	}
	clear(w)
	runtime.KeepAlive(w)
}

// String overwrites the backing bytes of *s in place via unsafe, bypassing
// Go's normal copy-on-conversion semantics, then clears the header. This
// module otherwise never stores secret material in a string (see
// SPEC_FULL.md §4.1) — this helper exists only to scrub a string built
// unavoidably from secret bytes (e.g. by a caller outside this module)
// before this module lets go of it.
func String(s *string) {
	if s == nil || *s == "" {
		return
	}
	b := unsafe.Slice(unsafe.StringData(*s), len(*s))
	clear(b)
	runtime.KeepAlive(b)
	*s = ""
}

// IsZero reports whether every byte in b is zero, short-circuiting on the
// first nonzero byte.
func IsZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
