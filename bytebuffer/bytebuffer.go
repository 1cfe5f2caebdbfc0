// Package bytebuffer implements a reusable, growable byte array with
// cursor and block views over it. A ByteBuffer owns its backing array;
// views hold a pointer to the buffer plus offsets rather than a slice, so a
// view stays valid when growth reallocates the array.
package bytebuffer

import "github.com/blockkv/blockkv/berr"

// ByteBuffer owns a growable byte array. Capacity only ever increases.
type ByteBuffer struct {
	data []byte
}

// New creates a ByteBuffer with the given initial capacity.
func New(capacity int) *ByteBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &ByteBuffer{data: make([]byte, capacity)}
}

// Capacity returns the current size of the backing array.
func (b *ByteBuffer) Capacity() int { return len(b.data) }

// Resize grows the backing array so that Capacity() >= n, doubling the
// current capacity until it is large enough (starting from 1 if empty).
// When ignoreContent is false, existing bytes are preserved at their
// original offsets; when true, the buffer may be reallocated without
// copying old content (the new tail is zeroed either way).
func (b *ByteBuffer) Resize(n int, ignoreContent bool) {
	if n <= len(b.data) {
		return
	}
	newCap := len(b.data)
	if newCap == 0 {
		newCap = 1
	}
	for newCap < n {
		newCap *= 2
	}
	next := make([]byte, newCap)
	if !ignoreContent {
		copy(next, b.data)
	}
	b.data = next
}

// Bytes returns the full backing array. Callers must not retain it across
// a Resize call, since growth may reallocate.
func (b *ByteBuffer) Bytes() []byte { return b.data }

func (b *ByteBuffer) checkRange(start, end int) error {
	if start < 0 || end < start || end > len(b.data) {
		return berr.Wrap(berr.ErrIndexOutOfRange, "bytebuffer: range [%d,%d) out of [0,%d)", start, end, len(b.data))
	}
	return nil
}

// ReadCursor returns a read-only byte-at-a-time view over [start, end).
// end defaults to the buffer's current capacity when it is 0 and start is
// also 0 (i.e. ReadCursor(0, 0) views the whole buffer).
func (b *ByteBuffer) ReadCursor(start, end int) (*ReadCursorView, error) {
	if start == 0 && end == 0 {
		end = len(b.data)
	}
	if err := b.checkRange(start, end); err != nil {
		return nil, err
	}
	return &ReadCursorView{buf: b, start: start, end: end, pos: 0}, nil
}

// WriteCursor returns a mutable byte-at-a-time view over [start, end).
func (b *ByteBuffer) WriteCursor(start, end int) (*WriteCursorView, error) {
	if start == 0 && end == 0 {
		end = len(b.data)
	}
	if err := b.checkRange(start, end); err != nil {
		return nil, err
	}
	return &WriteCursorView{buf: b, start: start, end: end, pos: 0}, nil
}

// BlockReader returns a view that bulk-copies len bytes starting at 0 into
// a foreign destination array.
func (b *ByteBuffer) BlockReader(length int) (*BlockView, error) {
	if err := b.checkRange(0, length); err != nil {
		return nil, err
	}
	return &BlockView{buf: b, length: length}, nil
}

// BlockWriter returns a view that bulk-copies from a foreign source array
// into the first len bytes of the buffer.
func (b *ByteBuffer) BlockWriter(length int) (*BlockView, error) {
	if err := b.checkRange(0, length); err != nil {
		return nil, err
	}
	return &BlockView{buf: b, length: length}, nil
}

// Views hold offsets into the buffer, not a copy of its backing slice, so
// a Resize that reallocates the array never leaves a view dangling: there
// is no separate reset step to invoke, and only ByteBuffer ever reads
// v.buf.data directly.

// ───────────────────────────────────────────────────────────────────────────
// Cursor views
// ───────────────────────────────────────────────────────────────────────────

// ReadCursorView is a byte-at-a-time read view over a ByteBuffer range. It
// implements cursor.Reader.
type ReadCursorView struct {
	buf   *ByteBuffer
	start int
	end   int
	pos   int
}

// ReadByte returns the byte at the cursor's current position and advances
// the cursor by one.
func (v *ReadCursorView) ReadByte() (byte, error) {
	if v.start+v.pos >= v.end {
		return 0, berr.Wrap(berr.ErrIndexOutOfRange, "bytebuffer: read past end of view")
	}
	b := v.buf.data[v.start+v.pos]
	v.pos++
	return b, nil
}

// At returns the byte at offset bytes past the view's start, without
// advancing the cursor.
func (v *ReadCursorView) At(offset uint64) (byte, error) {
	idx := v.start + int(offset)
	if idx < v.start || idx >= v.end {
		return 0, berr.Wrap(berr.ErrIndexOutOfRange, "bytebuffer: index %d out of view", offset)
	}
	return v.buf.data[idx], nil
}

// Pos returns the cursor's current offset from the view's start.
func (v *ReadCursorView) Pos() uint64 { return uint64(v.pos) }

// MoveForward advances the cursor by n bytes without reading them.
func (v *ReadCursorView) MoveForward(n uint64) error {
	next := v.pos + int(n)
	if v.start+next > v.end {
		return berr.Wrap(berr.ErrIndexOutOfRange, "bytebuffer: move_forward(%d) past end of view", n)
	}
	v.pos = next
	return nil
}

// WriteCursorView is a byte-at-a-time write view over a ByteBuffer range.
// It implements cursor.Writer.
type WriteCursorView struct {
	buf   *ByteBuffer
	start int
	end   int
	pos   int
}

// WriteByte writes b at the cursor's current position and advances by one.
func (v *WriteCursorView) WriteByte(b byte) error {
	if v.start+v.pos >= v.end {
		return berr.Wrap(berr.ErrIndexOutOfRange, "bytebuffer: write past end of view")
	}
	v.buf.data[v.start+v.pos] = b
	v.pos++
	return nil
}

// Set writes b at offset bytes past the view's start, without advancing
// the cursor.
func (v *WriteCursorView) Set(offset uint64, b byte) error {
	idx := v.start + int(offset)
	if idx < v.start || idx >= v.end {
		return berr.Wrap(berr.ErrIndexOutOfRange, "bytebuffer: index %d out of view", offset)
	}
	v.buf.data[idx] = b
	return nil
}

// Pos returns the cursor's current offset from the view's start.
func (v *WriteCursorView) Pos() uint64 { return uint64(v.pos) }

// MoveForward advances the cursor by n bytes without writing them.
func (v *WriteCursorView) MoveForward(n uint64) error {
	next := v.pos + int(n)
	if v.start+next > v.end {
		return berr.Wrap(berr.ErrIndexOutOfRange, "bytebuffer: move_forward(%d) past end of view", n)
	}
	v.pos = next
	return nil
}

// BlockView bulk-copies bytes between the buffer and a foreign array.
type BlockView struct {
	buf    *ByteBuffer
	length int
}

// CopyTo copies the view's bytes into dst, which must be at least Len()
// bytes long.
func (v *BlockView) CopyTo(dst []byte) error {
	if len(dst) < v.length {
		return berr.Wrap(berr.ErrIndexOutOfRange, "bytebuffer: destination shorter than block (%d < %d)", len(dst), v.length)
	}
	copy(dst, v.buf.data[:v.length])
	return nil
}

// CopyFrom copies from src into the buffer's first Len() bytes.
func (v *BlockView) CopyFrom(src []byte) error {
	if len(src) < v.length {
		return berr.Wrap(berr.ErrIndexOutOfRange, "bytebuffer: source shorter than block (%d < %d)", len(src), v.length)
	}
	copy(v.buf.data[:v.length], src[:v.length])
	return nil
}

// Len returns the number of bytes this block view copies.
func (v *BlockView) Len() int { return v.length }
