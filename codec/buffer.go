//go:build linux

package codec

import (
	"github.com/memparanoid/redoubt/alloc"
	"github.com/memparanoid/redoubt/zeroize"
)

// Buffer is a pre-sized, cursor-tracked write/read target backed by a
// page-locked AllockedVec[byte]. cursor <= capacity is maintained on every
// method that mutates cursor.
type Buffer struct {
	cursor   int
	capacity int
	vec      *alloc.AllockedVec[byte]
}

// NewBuffer allocates a Buffer with the given byte capacity.
func NewBuffer(capacity int) (*Buffer, error) {
	vec, err := alloc.WithCapacity[byte](capacity)
	if err != nil {
		return nil, err
	}
	return &Buffer{capacity: capacity, vec: vec}, nil
}

func (b *Buffer) debugAssertInvariant() {
	if b.cursor > b.capacity {
		panic("codec: Buffer invariant violated: cursor > capacity")
	}
}

// ReallocWithCapacity resizes the buffer, zeroizing the previous backing
// allocation and resetting the cursor to zero.
func (b *Buffer) ReallocWithCapacity(capacity int) error {
	if err := b.vec.ReallocWithCapacity(capacity); err != nil {
		return err
	}
	b.vec.FillWithDefault()
	b.capacity = capacity
	b.cursor = 0
	return nil
}

// Clear resets the cursor and zeroizes the full capacity window.
func (b *Buffer) Clear() {
	b.cursor = 0
	b.vec.FastZeroize()
}

// AsSlice returns the full capacity window, not just the written prefix.
func (b *Buffer) AsSlice() []byte {
	return b.vec.AsCapacitySlice()
}

// Written returns the bytes written so far (the [0, cursor) prefix).
func (b *Buffer) Written() []byte {
	return b.vec.AsCapacitySlice()[:b.cursor]
}

// Cursor reports how many bytes have been written.
func (b *Buffer) Cursor() int { return b.cursor }

// Capacity reports the buffer's total byte capacity.
func (b *Buffer) Capacity() int { return b.capacity }

// WriteBytes copies src into the buffer at the current cursor and advances
// it. Returns ErrCapacityExceeded without writing anything if src would
// overflow capacity.
func (b *Buffer) WriteBytes(src []byte) error {
	if b.cursor+len(src) > b.capacity {
		return ErrCapacityExceeded
	}
	copy(b.vec.AsCapacitySlice()[b.cursor:], src)
	b.cursor += len(src)
	b.debugAssertInvariant()
	return nil
}

// ExportAsBytes copies the written prefix into a freshly allocated slice
// and zeroizes the internal buffer, per the teacher's "copy then zeroize"
// export contract: the zeroization happens after the copy so exported data
// always survives.
func (b *Buffer) ExportAsBytes() []byte {
	out := make([]byte, b.cursor)
	copy(out, b.Written())
	b.FastZeroize()
	return out
}

// FastZeroize overwrites the full capacity window and resets the cursor.
func (b *Buffer) FastZeroize() {
	b.vec.FastZeroize()
	b.cursor = 0
}

// IsZeroized reports whether the full capacity window is all-zero.
func (b *Buffer) IsZeroized() bool {
	return b.vec.IsZeroized()
}

// Dispose releases the underlying page.
func (b *Buffer) Dispose() {
	b.vec.Dispose()
	b.capacity = 0
	b.cursor = 0
}

var _ zeroize.FastZeroizable = (*Buffer)(nil)
var _ zeroize.ZeroizationProbe = (*Buffer)(nil)
