package secret

import "github.com/memparanoid/redoubt/zeroize"

// MoveBytes transfers min(len(src), len(dst)) bytes from src into dst and
// zeroizes src afterward, the move-without-copy primitive every Secret
// collection helper in this package builds on.
func MoveBytes(src, dst []byte) {
	n := min(len(src), len(dst))
	copy(dst[:n], src[:n])
	zeroize.Bytes(src)
}

// MoveVecBytes moves ownership of a []byte from src to *dst, zeroizing
// dst's previous contents (including whatever was reachable through it)
// before the swap so no stale secret survives the reassignment, then
// clearing src's header. This is the Go equivalent of the reference
// design's "zeroize dst before taking ownership" Vec move: a Go slice
// reassignment alone would silently abandon dst's old backing array
// without scrubbing it first.
func MoveVecBytes(src *[]byte, dst *[]byte) {
	zeroize.Bytes(*dst)
	*dst = *src
	*src = nil
}
