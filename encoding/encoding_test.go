package encoding

import (
	"math"
	"testing"

	"github.com/blockkv/blockkv/bytebuffer"
)

func roundTripInt64(t *testing.T, v int64) int64 {
	t.Helper()
	buf := bytebuffer.New(SizeLong)
	wc, err := buf.WriteCursor(0, SizeLong)
	if err != nil {
		t.Fatalf("WriteCursor: %v", err)
	}
	if err := WriteInt64(wc, v); err != nil {
		t.Fatalf("WriteInt64(%d): %v", v, err)
	}
	rc, err := buf.ReadCursor(0, SizeLong)
	if err != nil {
		t.Fatalf("ReadCursor: %v", err)
	}
	got, err := ReadInt64(rc)
	if err != nil {
		t.Fatalf("ReadInt64: %v", err)
	}
	return got
}

func TestInt64RoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 42, -42, math.MaxInt64, math.MinInt64, 123456789, -123456789}
	for _, v := range cases {
		if got := roundTripInt64(t, v); got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestInt32RoundTrip(t *testing.T) {
	cases := []int32{0, 1, -1, math.MaxInt32, math.MinInt32, 17, -17}
	for _, v := range cases {
		buf := bytebuffer.New(SizeInt)
		wc, _ := buf.WriteCursor(0, SizeInt)
		if err := WriteInt32(wc, v); err != nil {
			t.Fatalf("WriteInt32(%d): %v", v, err)
		}
		rc, _ := buf.ReadCursor(0, SizeInt)
		got, err := ReadInt32(rc)
		if err != nil {
			t.Fatalf("ReadInt32: %v", err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestByteValueRoundTrip(t *testing.T) {
	for v := 0; v <= 255; v++ {
		buf := bytebuffer.New(SizeByte)
		wc, _ := buf.WriteCursor(0, SizeByte)
		if err := WriteByteValue(wc, byte(v)); err != nil {
			t.Fatalf("WriteByteValue(%d): %v", v, err)
		}
		rc, _ := buf.ReadCursor(0, SizeByte)
		got, err := ReadByteValue(rc)
		if err != nil {
			t.Fatalf("ReadByteValue: %v", err)
		}
		if got != byte(v) {
			t.Errorf("round trip %d: got %d", v, got)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"Dans le port d'Amsterdam",
		"Y a des marins qui chantent",
		"a",
	}
	for _, s := range cases {
		size := SizeForStringValue(s)
		buf := bytebuffer.New(size)
		wc, err := buf.WriteCursor(0, size)
		if err != nil {
			t.Fatalf("WriteCursor: %v", err)
		}
		if err := WriteString(wc, s); err != nil {
			t.Fatalf("WriteString(%q): %v", s, err)
		}
		if wc.Pos() != uint64(size) {
			t.Fatalf("WriteString(%q) advanced cursor by %d, want %d", s, wc.Pos(), size)
		}
		rc, err := buf.ReadCursor(0, size)
		if err != nil {
			t.Fatalf("ReadCursor: %v", err)
		}
		got, err := ReadString(rc)
		if err != nil {
			t.Fatalf("ReadString: %v", err)
		}
		if got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestDecodeRejectsNonDigit(t *testing.T) {
	buf := bytebuffer.New(SizeInt)
	wc, _ := buf.WriteCursor(0, SizeInt)
	if err := WriteInt32(wc, 42); err != nil {
		t.Fatalf("WriteInt32: %v", err)
	}
	// Corrupt a digit position with a non-digit byte.
	corrupt := buf.Bytes()
	corrupt[SizeInt-2] = 'x'

	rc, _ := buf.ReadCursor(0, SizeInt)
	if _, err := ReadInt32(rc); err == nil {
		t.Fatalf("ReadInt32 on corrupted field: want error")
	}
}

func TestReadMarkerMismatchFailsDecode(t *testing.T) {
	buf := bytebuffer.New(SizeChar)
	wc, _ := buf.WriteCursor(0, SizeChar)
	if err := WriteMarker(wc, MarkerArrayStart); err != nil {
		t.Fatalf("WriteMarker: %v", err)
	}
	rc, _ := buf.ReadCursor(0, SizeChar)
	if err := ReadMarker(rc, MarkerTupleOpen); err == nil {
		t.Fatalf("ReadMarker mismatch: want error")
	}
}
