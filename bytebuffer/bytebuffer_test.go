package bytebuffer_test

import (
	"testing"

	"github.com/blockkv/blockkv/bytebuffer"
)

func TestResizeGrowsCapacity(t *testing.T) {
	b := bytebuffer.New(1)
	b.Resize(5, true)
	if b.Capacity() < 5 {
		t.Fatalf("Capacity() = %d, want >= 5", b.Capacity())
	}
}

func TestResizePreservesContentWhenNotIgnored(t *testing.T) {
	b := bytebuffer.New(4)
	wc, err := b.WriteCursor(0, 4)
	if err != nil {
		t.Fatalf("WriteCursor: %v", err)
	}
	for _, c := range []byte{1, 2, 3, 4} {
		if err := wc.WriteByte(c); err != nil {
			t.Fatalf("WriteByte: %v", err)
		}
	}
	b.Resize(20, false)
	rc, err := b.ReadCursor(0, 4)
	if err != nil {
		t.Fatalf("ReadCursor: %v", err)
	}
	for i, want := range []byte{1, 2, 3, 4} {
		got, err := rc.ReadByte()
		if err != nil {
			t.Fatalf("ReadByte(%d): %v", i, err)
		}
		if got != want {
			t.Fatalf("ReadByte(%d) = %d, want %d", i, got, want)
		}
	}
}

// TestViewsEndToEnd reproduces spec.md §8 scenario 2: construct with
// capacity 1, resize to 5 ignoring content, write 'A','B' at positions
// 1,2 via a write view on [1,3), resize to 20 preserving content, then
// read 'A','B' back via a read view on [1,3).
func TestViewsEndToEnd(t *testing.T) {
	b := bytebuffer.New(1)
	b.Resize(5, true)

	wv, err := b.WriteCursor(1, 3)
	if err != nil {
		t.Fatalf("WriteCursor: %v", err)
	}
	if err := wv.WriteByte('A'); err != nil {
		t.Fatalf("WriteByte('A'): %v", err)
	}
	if err := wv.WriteByte('B'); err != nil {
		t.Fatalf("WriteByte('B'): %v", err)
	}

	b.Resize(20, false)

	rv, err := b.ReadCursor(1, 3)
	if err != nil {
		t.Fatalf("ReadCursor: %v", err)
	}
	a, err := rv.ReadByte()
	if err != nil || a != 'A' {
		t.Fatalf("ReadByte() = (%v, %v), want ('A', nil)", a, err)
	}
	bb, err := rv.ReadByte()
	if err != nil || bb != 'B' {
		t.Fatalf("ReadByte() = (%v, %v), want ('B', nil)", bb, err)
	}
}

func TestCursorOutOfRange(t *testing.T) {
	b := bytebuffer.New(2)
	rc, err := b.ReadCursor(0, 2)
	if err != nil {
		t.Fatalf("ReadCursor: %v", err)
	}
	if _, err := rc.ReadByte(); err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if _, err := rc.ReadByte(); err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	if _, err := rc.ReadByte(); err == nil {
		t.Fatalf("expected ErrIndexOutOfRange reading past view end")
	}
}

func TestBlockView(t *testing.T) {
	b := bytebuffer.New(4)
	bw, err := b.BlockWriter(4)
	if err != nil {
		t.Fatalf("BlockWriter: %v", err)
	}
	if err := bw.CopyFrom([]byte{9, 8, 7, 6}); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	br, err := b.BlockReader(4)
	if err != nil {
		t.Fatalf("BlockReader: %v", err)
	}
	dst := make([]byte, 4)
	if err := br.CopyTo(dst); err != nil {
		t.Fatalf("CopyTo: %v", err)
	}
	want := []byte{9, 8, 7, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst[%d] = %d, want %d", i, dst[i], want[i])
		}
	}
}
