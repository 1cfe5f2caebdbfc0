package schema

import (
	"github.com/blockkv/blockkv/cursor"
	"github.com/blockkv/blockkv/encoding"
)

// Solo is the value type produced by Tuple1.
type Solo[A any] struct {
	First A
}

// Tuple1 is the degenerate 1-arity tuple, written '(' first ')'. It
// exists so schema composition covers the full declared arity range even
// though a bare Node[A] serves the same purpose without the parentheses.
type Tuple1[A any] struct {
	First Node[A]
}

func (t Tuple1[A]) IsFixedSize() bool { return t.First.IsFixedSize() }

func (t Tuple1[A]) DynamicSize(v Solo[A]) int {
	return encoding.SizeChar + t.First.DynamicSize(v.First) + encoding.SizeChar
}

func (t Tuple1[A]) Read(r cursor.Reader) (Solo[A], error) {
	var zero Solo[A]
	if err := encoding.ReadMarker(r, encoding.MarkerTupleOpen); err != nil {
		return zero, err
	}
	a, err := t.First.Read(r)
	if err != nil {
		return zero, err
	}
	if err := encoding.ReadMarker(r, encoding.MarkerTupleClose); err != nil {
		return zero, err
	}
	return Solo[A]{First: a}, nil
}

func (t Tuple1[A]) Write(w cursor.Writer, v Solo[A]) error {
	if err := encoding.WriteMarker(w, encoding.MarkerTupleOpen); err != nil {
		return err
	}
	if err := t.First.Write(w, v.First); err != nil {
		return err
	}
	return encoding.WriteMarker(w, encoding.MarkerTupleClose)
}

// writeTupleFields and readTupleFields factor out the shared
// open/separator/close bookkeeping for Tuple4..Tuple7, so each arity
// only has to supply its per-field read/write closures.
func writeTupleFields(w cursor.Writer, fields []func(cursor.Writer) error) error {
	if err := encoding.WriteMarker(w, encoding.MarkerTupleOpen); err != nil {
		return err
	}
	for i, f := range fields {
		if i > 0 {
			if err := encoding.WriteMarker(w, encoding.MarkerPropSep); err != nil {
				return err
			}
		}
		if err := f(w); err != nil {
			return err
		}
	}
	return encoding.WriteMarker(w, encoding.MarkerTupleClose)
}

func readTupleFields(r cursor.Reader, fields []func(cursor.Reader) error) error {
	if err := encoding.ReadMarker(r, encoding.MarkerTupleOpen); err != nil {
		return err
	}
	for i, f := range fields {
		if i > 0 {
			if err := encoding.ReadMarker(r, encoding.MarkerPropSep); err != nil {
				return err
			}
		}
		if err := f(r); err != nil {
			return err
		}
	}
	return encoding.ReadMarker(r, encoding.MarkerTupleClose)
}

// Quad is the value type produced by Tuple4.
type Quad[A, B, C, D any] struct {
	First  A
	Second B
	Third  C
	Fourth D
}

// Tuple4 is the 4-arity counterpart of Tuple2/Tuple3.
type Tuple4[A, B, C, D any] struct {
	First  Node[A]
	Second Node[B]
	Third  Node[C]
	Fourth Node[D]
}

func (t Tuple4[A, B, C, D]) IsFixedSize() bool {
	return t.First.IsFixedSize() && t.Second.IsFixedSize() && t.Third.IsFixedSize() && t.Fourth.IsFixedSize()
}

func (t Tuple4[A, B, C, D]) DynamicSize(v Quad[A, B, C, D]) int {
	return encoding.SizeChar + t.First.DynamicSize(v.First) + encoding.SizePropSep +
		t.Second.DynamicSize(v.Second) + encoding.SizePropSep +
		t.Third.DynamicSize(v.Third) + encoding.SizePropSep +
		t.Fourth.DynamicSize(v.Fourth) + encoding.SizeChar
}

func (t Tuple4[A, B, C, D]) Read(r cursor.Reader) (Quad[A, B, C, D], error) {
	var v Quad[A, B, C, D]
	err := readTupleFields(r, []func(cursor.Reader) error{
		func(r cursor.Reader) error { a, err := t.First.Read(r); v.First = a; return err },
		func(r cursor.Reader) error { b, err := t.Second.Read(r); v.Second = b; return err },
		func(r cursor.Reader) error { c, err := t.Third.Read(r); v.Third = c; return err },
		func(r cursor.Reader) error { d, err := t.Fourth.Read(r); v.Fourth = d; return err },
	})
	if err != nil {
		var zero Quad[A, B, C, D]
		return zero, err
	}
	return v, nil
}

func (t Tuple4[A, B, C, D]) Write(w cursor.Writer, v Quad[A, B, C, D]) error {
	return writeTupleFields(w, []func(cursor.Writer) error{
		func(w cursor.Writer) error { return t.First.Write(w, v.First) },
		func(w cursor.Writer) error { return t.Second.Write(w, v.Second) },
		func(w cursor.Writer) error { return t.Third.Write(w, v.Third) },
		func(w cursor.Writer) error { return t.Fourth.Write(w, v.Fourth) },
	})
}

// Quint is the value type produced by Tuple5.
type Quint[A, B, C, D, E any] struct {
	First  A
	Second B
	Third  C
	Fourth D
	Fifth  E
}

// Tuple5 is the 5-arity counterpart of Tuple2/Tuple3.
type Tuple5[A, B, C, D, E any] struct {
	First  Node[A]
	Second Node[B]
	Third  Node[C]
	Fourth Node[D]
	Fifth  Node[E]
}

func (t Tuple5[A, B, C, D, E]) IsFixedSize() bool {
	return t.First.IsFixedSize() && t.Second.IsFixedSize() && t.Third.IsFixedSize() &&
		t.Fourth.IsFixedSize() && t.Fifth.IsFixedSize()
}

func (t Tuple5[A, B, C, D, E]) DynamicSize(v Quint[A, B, C, D, E]) int {
	return encoding.SizeChar + t.First.DynamicSize(v.First) + encoding.SizePropSep +
		t.Second.DynamicSize(v.Second) + encoding.SizePropSep +
		t.Third.DynamicSize(v.Third) + encoding.SizePropSep +
		t.Fourth.DynamicSize(v.Fourth) + encoding.SizePropSep +
		t.Fifth.DynamicSize(v.Fifth) + encoding.SizeChar
}

func (t Tuple5[A, B, C, D, E]) Read(r cursor.Reader) (Quint[A, B, C, D, E], error) {
	var v Quint[A, B, C, D, E]
	err := readTupleFields(r, []func(cursor.Reader) error{
		func(r cursor.Reader) error { a, err := t.First.Read(r); v.First = a; return err },
		func(r cursor.Reader) error { b, err := t.Second.Read(r); v.Second = b; return err },
		func(r cursor.Reader) error { c, err := t.Third.Read(r); v.Third = c; return err },
		func(r cursor.Reader) error { d, err := t.Fourth.Read(r); v.Fourth = d; return err },
		func(r cursor.Reader) error { e, err := t.Fifth.Read(r); v.Fifth = e; return err },
	})
	if err != nil {
		var zero Quint[A, B, C, D, E]
		return zero, err
	}
	return v, nil
}

func (t Tuple5[A, B, C, D, E]) Write(w cursor.Writer, v Quint[A, B, C, D, E]) error {
	return writeTupleFields(w, []func(cursor.Writer) error{
		func(w cursor.Writer) error { return t.First.Write(w, v.First) },
		func(w cursor.Writer) error { return t.Second.Write(w, v.Second) },
		func(w cursor.Writer) error { return t.Third.Write(w, v.Third) },
		func(w cursor.Writer) error { return t.Fourth.Write(w, v.Fourth) },
		func(w cursor.Writer) error { return t.Fifth.Write(w, v.Fifth) },
	})
}

// Sextet is the value type produced by Tuple6.
type Sextet[A, B, C, D, E, F any] struct {
	First  A
	Second B
	Third  C
	Fourth D
	Fifth  E
	Sixth  F
}

// Tuple6 is the 6-arity counterpart of Tuple2/Tuple3.
type Tuple6[A, B, C, D, E, F any] struct {
	First  Node[A]
	Second Node[B]
	Third  Node[C]
	Fourth Node[D]
	Fifth  Node[E]
	Sixth  Node[F]
}

func (t Tuple6[A, B, C, D, E, F]) IsFixedSize() bool {
	return t.First.IsFixedSize() && t.Second.IsFixedSize() && t.Third.IsFixedSize() &&
		t.Fourth.IsFixedSize() && t.Fifth.IsFixedSize() && t.Sixth.IsFixedSize()
}

func (t Tuple6[A, B, C, D, E, F]) DynamicSize(v Sextet[A, B, C, D, E, F]) int {
	return encoding.SizeChar + t.First.DynamicSize(v.First) + encoding.SizePropSep +
		t.Second.DynamicSize(v.Second) + encoding.SizePropSep +
		t.Third.DynamicSize(v.Third) + encoding.SizePropSep +
		t.Fourth.DynamicSize(v.Fourth) + encoding.SizePropSep +
		t.Fifth.DynamicSize(v.Fifth) + encoding.SizePropSep +
		t.Sixth.DynamicSize(v.Sixth) + encoding.SizeChar
}

func (t Tuple6[A, B, C, D, E, F]) Read(r cursor.Reader) (Sextet[A, B, C, D, E, F], error) {
	var v Sextet[A, B, C, D, E, F]
	err := readTupleFields(r, []func(cursor.Reader) error{
		func(r cursor.Reader) error { a, err := t.First.Read(r); v.First = a; return err },
		func(r cursor.Reader) error { b, err := t.Second.Read(r); v.Second = b; return err },
		func(r cursor.Reader) error { c, err := t.Third.Read(r); v.Third = c; return err },
		func(r cursor.Reader) error { d, err := t.Fourth.Read(r); v.Fourth = d; return err },
		func(r cursor.Reader) error { e, err := t.Fifth.Read(r); v.Fifth = e; return err },
		func(r cursor.Reader) error { f, err := t.Sixth.Read(r); v.Sixth = f; return err },
	})
	if err != nil {
		var zero Sextet[A, B, C, D, E, F]
		return zero, err
	}
	return v, nil
}

func (t Tuple6[A, B, C, D, E, F]) Write(w cursor.Writer, v Sextet[A, B, C, D, E, F]) error {
	return writeTupleFields(w, []func(cursor.Writer) error{
		func(w cursor.Writer) error { return t.First.Write(w, v.First) },
		func(w cursor.Writer) error { return t.Second.Write(w, v.Second) },
		func(w cursor.Writer) error { return t.Third.Write(w, v.Third) },
		func(w cursor.Writer) error { return t.Fourth.Write(w, v.Fourth) },
		func(w cursor.Writer) error { return t.Fifth.Write(w, v.Fifth) },
		func(w cursor.Writer) error { return t.Sixth.Write(w, v.Sixth) },
	})
}

// Septet is the value type produced by Tuple7.
type Septet[A, B, C, D, E, F, G any] struct {
	First   A
	Second  B
	Third   C
	Fourth  D
	Fifth   E
	Sixth   F
	Seventh G
}

// Tuple7 is the 7-arity counterpart of Tuple2/Tuple3, the largest arity
// the spec's tuple family declares.
type Tuple7[A, B, C, D, E, F, G any] struct {
	First   Node[A]
	Second  Node[B]
	Third   Node[C]
	Fourth  Node[D]
	Fifth   Node[E]
	Sixth   Node[F]
	Seventh Node[G]
}

func (t Tuple7[A, B, C, D, E, F, G]) IsFixedSize() bool {
	return t.First.IsFixedSize() && t.Second.IsFixedSize() && t.Third.IsFixedSize() &&
		t.Fourth.IsFixedSize() && t.Fifth.IsFixedSize() && t.Sixth.IsFixedSize() && t.Seventh.IsFixedSize()
}

func (t Tuple7[A, B, C, D, E, F, G]) DynamicSize(v Septet[A, B, C, D, E, F, G]) int {
	return encoding.SizeChar + t.First.DynamicSize(v.First) + encoding.SizePropSep +
		t.Second.DynamicSize(v.Second) + encoding.SizePropSep +
		t.Third.DynamicSize(v.Third) + encoding.SizePropSep +
		t.Fourth.DynamicSize(v.Fourth) + encoding.SizePropSep +
		t.Fifth.DynamicSize(v.Fifth) + encoding.SizePropSep +
		t.Sixth.DynamicSize(v.Sixth) + encoding.SizePropSep +
		t.Seventh.DynamicSize(v.Seventh) + encoding.SizeChar
}

func (t Tuple7[A, B, C, D, E, F, G]) Read(r cursor.Reader) (Septet[A, B, C, D, E, F, G], error) {
	var v Septet[A, B, C, D, E, F, G]
	err := readTupleFields(r, []func(cursor.Reader) error{
		func(r cursor.Reader) error { a, err := t.First.Read(r); v.First = a; return err },
		func(r cursor.Reader) error { b, err := t.Second.Read(r); v.Second = b; return err },
		func(r cursor.Reader) error { c, err := t.Third.Read(r); v.Third = c; return err },
		func(r cursor.Reader) error { d, err := t.Fourth.Read(r); v.Fourth = d; return err },
		func(r cursor.Reader) error { e, err := t.Fifth.Read(r); v.Fifth = e; return err },
		func(r cursor.Reader) error { f, err := t.Sixth.Read(r); v.Sixth = f; return err },
		func(r cursor.Reader) error { g, err := t.Seventh.Read(r); v.Seventh = g; return err },
	})
	if err != nil {
		var zero Septet[A, B, C, D, E, F, G]
		return zero, err
	}
	return v, nil
}

func (t Tuple7[A, B, C, D, E, F, G]) Write(w cursor.Writer, v Septet[A, B, C, D, E, F, G]) error {
	return writeTupleFields(w, []func(cursor.Writer) error{
		func(w cursor.Writer) error { return t.First.Write(w, v.First) },
		func(w cursor.Writer) error { return t.Second.Write(w, v.Second) },
		func(w cursor.Writer) error { return t.Third.Write(w, v.Third) },
		func(w cursor.Writer) error { return t.Fourth.Write(w, v.Fourth) },
		func(w cursor.Writer) error { return t.Fifth.Write(w, v.Fifth) },
		func(w cursor.Writer) error { return t.Sixth.Write(w, v.Sixth) },
		func(w cursor.Writer) error { return t.Seventh.Write(w, v.Seventh) },
	})
}
