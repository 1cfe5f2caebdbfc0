package schema

import (
	"github.com/blockkv/blockkv/berr"
	"github.com/blockkv/blockkv/cursor"
	"github.com/blockkv/blockkv/encoding"
)

// InlineArray is a variable-size Node over a slice of inner values,
// written as an Int32 length, '[', elements separated by ',', ']'.
type InlineArray[T any] struct {
	Inner Node[T]
}

func (InlineArray[T]) IsFixedSize() bool { return false }

func (a InlineArray[T]) DynamicSize(v []T) int {
	size := encoding.SizeInt + encoding.SizeArrayEdge
	for i, item := range v {
		if i > 0 {
			size += encoding.SizePropSep
		}
		size += a.Inner.DynamicSize(item)
	}
	return size + encoding.SizeArrayEdge
}

func (a InlineArray[T]) Read(r cursor.Reader) ([]T, error) {
	n, err := encoding.ReadInt32(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, berr.Wrap(berr.ErrDecode, "schema: negative array length %d", n)
	}
	if err := encoding.ReadMarker(r, encoding.MarkerArrayStart); err != nil {
		return nil, err
	}
	var out []T
	if n > 0 {
		out = make([]T, n)
	}
	for i := range out {
		if i > 0 {
			if err := encoding.ReadMarker(r, encoding.MarkerPropSep); err != nil {
				return nil, err
			}
		}
		v, err := a.Inner.Read(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	if err := encoding.ReadMarker(r, encoding.MarkerArrayEnd); err != nil {
		return nil, err
	}
	return out, nil
}

func (a InlineArray[T]) Write(w cursor.Writer, v []T) error {
	if len(v) > (1<<31)-1 {
		return berr.Wrap(berr.ErrInvalidArgument, "schema: array too long to encode (%d elements)", len(v))
	}
	if err := encoding.WriteInt32(w, int32(len(v))); err != nil {
		return err
	}
	if err := encoding.WriteMarker(w, encoding.MarkerArrayStart); err != nil {
		return err
	}
	for i, item := range v {
		if i > 0 {
			if err := encoding.WriteMarker(w, encoding.MarkerPropSep); err != nil {
				return err
			}
		}
		if err := a.Inner.Write(w, item); err != nil {
			return err
		}
	}
	return encoding.WriteMarker(w, encoding.MarkerArrayEnd)
}

// FixedSizeInlineArray is identical to InlineArray but is_fixed_size when
// its inner node is, and Write rejects any slice whose length isn't N.
type FixedSizeInlineArray[T any] struct {
	Inner Node[T]
	N     int
}

func (a FixedSizeInlineArray[T]) IsFixedSize() bool {
	return a.Inner.IsFixedSize()
}

// DynamicSize is the size of an N-element array; a slice of any other
// length (which Write rejects) is sized as N zero values.
func (a FixedSizeInlineArray[T]) DynamicSize(v []T) int {
	if len(v) != a.N {
		v = make([]T, a.N)
	}
	return InlineArray[T]{Inner: a.Inner}.DynamicSize(v)
}

func (a FixedSizeInlineArray[T]) Read(r cursor.Reader) ([]T, error) {
	return InlineArray[T]{Inner: a.Inner}.Read(r)
}

func (a FixedSizeInlineArray[T]) Write(w cursor.Writer, v []T) error {
	if len(v) != a.N {
		return berr.Wrap(berr.ErrInvalidArgument, "schema: fixed array expects %d elements, got %d", a.N, len(v))
	}
	return InlineArray[T]{Inner: a.Inner}.Write(w, v)
}
