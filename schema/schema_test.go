package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/blockkv/blockkv/bytebuffer"
)

func TestByteRoundTrip(t *testing.T) {
	var n Byte
	buf := bytebuffer.New(n.DynamicSize(0))
	wc, _ := buf.WriteCursor(0, 0)
	if err := n.Write(wc, 200); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rc, _ := buf.ReadCursor(0, 0)
	got, err := n.Read(rc)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != 200 {
		t.Fatalf("got %d, want 200", got)
	}
}

func TestTuple2RoundTrip(t *testing.T) {
	schemaNode := Tuple2[int64, string]{First: Int64{}, Second: String{}}
	cases := []Pair[int64, string]{
		{First: -12, Second: "Dans le port d'Amsterdam"},
		{First: -9223372036854775808, Second: "Y a des marins qui chantent"},
	}
	for _, v := range cases {
		size := schemaNode.DynamicSize(v)
		buf := bytebuffer.New(size)
		wc, err := buf.WriteCursor(0, size)
		if err != nil {
			t.Fatalf("WriteCursor: %v", err)
		}
		if err := schemaNode.Write(wc, v); err != nil {
			t.Fatalf("Write(%v): %v", v, err)
		}
		rc, err := buf.ReadCursor(0, size)
		if err != nil {
			t.Fatalf("ReadCursor: %v", err)
		}
		got, err := schemaNode.Read(rc)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestTuple3RoundTrip(t *testing.T) {
	schemaNode := Tuple3[byte, int32, string]{First: Byte{}, Second: Int32{}, Third: String{}}
	v := Triple[byte, int32, string]{First: 7, Second: -100, Third: "hello"}
	size := schemaNode.DynamicSize(v)
	buf := bytebuffer.New(size)
	wc, _ := buf.WriteCursor(0, size)
	if err := schemaNode.Write(wc, v); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rc, _ := buf.ReadCursor(0, size)
	got, err := schemaNode.Read(rc)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if schemaNode.IsFixedSize() {
		t.Fatalf("Tuple3 with a String child should not be fixed size")
	}
}

func TestInlineArrayRoundTrip(t *testing.T) {
	arr := InlineArray[int32]{Inner: Int32{}}
	cases := [][]int32{nil, {1}, {1, 2, 3}, {-5, 0, 5}}
	for _, v := range cases {
		size := arr.DynamicSize(v)
		buf := bytebuffer.New(size)
		wc, _ := buf.WriteCursor(0, size)
		if err := arr.Write(wc, v); err != nil {
			t.Fatalf("Write(%v): %v", v, err)
		}
		rc, _ := buf.ReadCursor(0, size)
		got, err := arr.Read(rc)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("round trip %v mismatch (-want +got):\n%s", v, diff)
		}
	}
}

func TestTuple1RoundTrip(t *testing.T) {
	node := Tuple1[int32]{First: Int32{}}
	v := Solo[int32]{First: -7}
	size := node.DynamicSize(v)
	buf := bytebuffer.New(size)
	wc, _ := buf.WriteCursor(0, size)
	if err := node.Write(wc, v); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rc, _ := buf.ReadCursor(0, size)
	got, err := node.Read(rc)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if !node.IsFixedSize() {
		t.Fatalf("Tuple1 of Int32 should be fixed size")
	}
}

func TestTuple7RoundTrip(t *testing.T) {
	node := Tuple7[byte, byte, byte, byte, byte, byte, byte]{
		First: Byte{}, Second: Byte{}, Third: Byte{}, Fourth: Byte{},
		Fifth: Byte{}, Sixth: Byte{}, Seventh: Byte{},
	}
	v := Septet[byte, byte, byte, byte, byte, byte, byte]{1, 2, 3, 4, 5, 6, 7}
	size := node.DynamicSize(v)
	buf := bytebuffer.New(size)
	wc, _ := buf.WriteCursor(0, size)
	if err := node.Write(wc, v); err != nil {
		t.Fatalf("Write: %v", err)
	}
	rc, _ := buf.ReadCursor(0, size)
	got, err := node.Read(rc)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFixedSizeInlineArrayRejectsWrongLength(t *testing.T) {
	arr := FixedSizeInlineArray[byte]{Inner: Byte{}, N: 3}
	size := arr.DynamicSize([]byte{1, 2, 3})
	buf := bytebuffer.New(size)
	wc, _ := buf.WriteCursor(0, size)
	if err := arr.Write(wc, []byte{1, 2}); err == nil {
		t.Fatalf("Write with wrong length: want error")
	}
	if err := arr.Write(wc, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Write with correct length: %v", err)
	}
	if !arr.IsFixedSize() {
		t.Fatalf("FixedSizeInlineArray of Byte should be fixed size")
	}
}
