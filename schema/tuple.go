package schema

import (
	"github.com/blockkv/blockkv/cursor"
	"github.com/blockkv/blockkv/encoding"
)

// Pair is the value type produced by Tuple2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Tuple2 is a fixed-size-iff-both-children-are Node over a 2-tuple,
// written as '(' first ',' second ')'.
type Tuple2[A, B any] struct {
	First  Node[A]
	Second Node[B]
}

func (t Tuple2[A, B]) IsFixedSize() bool {
	return t.First.IsFixedSize() && t.Second.IsFixedSize()
}

func (t Tuple2[A, B]) DynamicSize(v Pair[A, B]) int {
	return encoding.SizeChar + t.First.DynamicSize(v.First) + encoding.SizePropSep +
		t.Second.DynamicSize(v.Second) + encoding.SizeChar
}

func (t Tuple2[A, B]) Read(r cursor.Reader) (Pair[A, B], error) {
	var zero Pair[A, B]
	if err := encoding.ReadMarker(r, encoding.MarkerTupleOpen); err != nil {
		return zero, err
	}
	a, err := t.First.Read(r)
	if err != nil {
		return zero, err
	}
	if err := encoding.ReadMarker(r, encoding.MarkerPropSep); err != nil {
		return zero, err
	}
	b, err := t.Second.Read(r)
	if err != nil {
		return zero, err
	}
	if err := encoding.ReadMarker(r, encoding.MarkerTupleClose); err != nil {
		return zero, err
	}
	return Pair[A, B]{First: a, Second: b}, nil
}

func (t Tuple2[A, B]) Write(w cursor.Writer, v Pair[A, B]) error {
	if err := encoding.WriteMarker(w, encoding.MarkerTupleOpen); err != nil {
		return err
	}
	if err := t.First.Write(w, v.First); err != nil {
		return err
	}
	if err := encoding.WriteMarker(w, encoding.MarkerPropSep); err != nil {
		return err
	}
	if err := t.Second.Write(w, v.Second); err != nil {
		return err
	}
	return encoding.WriteMarker(w, encoding.MarkerTupleClose)
}

// Triple is the value type produced by Tuple3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple3 is the 3-arity counterpart of Tuple2, written
// '(' first ',' second ',' third ')'.
type Tuple3[A, B, C any] struct {
	First  Node[A]
	Second Node[B]
	Third  Node[C]
}

func (t Tuple3[A, B, C]) IsFixedSize() bool {
	return t.First.IsFixedSize() && t.Second.IsFixedSize() && t.Third.IsFixedSize()
}

func (t Tuple3[A, B, C]) DynamicSize(v Triple[A, B, C]) int {
	return encoding.SizeChar + t.First.DynamicSize(v.First) + encoding.SizePropSep +
		t.Second.DynamicSize(v.Second) + encoding.SizePropSep +
		t.Third.DynamicSize(v.Third) + encoding.SizeChar
}

func (t Tuple3[A, B, C]) Read(r cursor.Reader) (Triple[A, B, C], error) {
	var zero Triple[A, B, C]
	if err := encoding.ReadMarker(r, encoding.MarkerTupleOpen); err != nil {
		return zero, err
	}
	a, err := t.First.Read(r)
	if err != nil {
		return zero, err
	}
	if err := encoding.ReadMarker(r, encoding.MarkerPropSep); err != nil {
		return zero, err
	}
	b, err := t.Second.Read(r)
	if err != nil {
		return zero, err
	}
	if err := encoding.ReadMarker(r, encoding.MarkerPropSep); err != nil {
		return zero, err
	}
	c, err := t.Third.Read(r)
	if err != nil {
		return zero, err
	}
	if err := encoding.ReadMarker(r, encoding.MarkerTupleClose); err != nil {
		return zero, err
	}
	return Triple[A, B, C]{First: a, Second: b, Third: c}, nil
}

func (t Tuple3[A, B, C]) Write(w cursor.Writer, v Triple[A, B, C]) error {
	if err := encoding.WriteMarker(w, encoding.MarkerTupleOpen); err != nil {
		return err
	}
	if err := t.First.Write(w, v.First); err != nil {
		return err
	}
	if err := encoding.WriteMarker(w, encoding.MarkerPropSep); err != nil {
		return err
	}
	if err := t.Second.Write(w, v.Second); err != nil {
		return err
	}
	if err := encoding.WriteMarker(w, encoding.MarkerPropSep); err != nil {
		return err
	}
	if err := t.Third.Write(w, v.Third); err != nil {
		return err
	}
	return encoding.WriteMarker(w, encoding.MarkerTupleClose)
}
