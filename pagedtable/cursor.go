package pagedtable

import "github.com/blockkv/blockkv/berr"

// ReadCursor is a byte-at-a-time view over [start, end) of a Table's
// logical element range. It implements cursor.Reader.
type ReadCursor struct {
	table *Table
	start uint64
	end   uint64
	pos   uint64
}

// ReadCursor returns a read view over [start, end) of the table's
// current elements. end == 0 and start == 0 views the whole table.
func (t *Table) ReadCursor(start, end uint64) (*ReadCursor, error) {
	if start == 0 && end == 0 {
		end = t.elementCount
	}
	if end > t.elementCount || end < start {
		return nil, berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: range [%d,%d) out of [0,%d)", start, end, t.elementCount)
	}
	return &ReadCursor{table: t, start: start, end: end}, nil
}

func (c *ReadCursor) ReadByte() (byte, error) {
	if c.start+c.pos >= c.end {
		return 0, berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: read past end of cursor")
	}
	b, err := c.table.Read(c.start + c.pos)
	if err != nil {
		return 0, err
	}
	c.pos++
	return b, nil
}

func (c *ReadCursor) At(offset uint64) (byte, error) {
	idx := c.start + offset
	if idx < c.start || idx >= c.end {
		return 0, berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: index %d out of cursor", offset)
	}
	return c.table.Read(idx)
}

func (c *ReadCursor) Pos() uint64 { return c.pos }

func (c *ReadCursor) MoveForward(n uint64) error {
	next := c.pos + n
	if c.start+next > c.end {
		return berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: move_forward(%d) past end of cursor", n)
	}
	c.pos = next
	return nil
}

// WriteCursor is a byte-at-a-time view over [start, end) of a Table's
// elements, extending the table via Write when end == ElementCount() and
// the cursor writes past the current length. It implements cursor.Writer.
type WriteCursor struct {
	table *Table
	start uint64
	end   uint64
	pos   uint64
}

// WriteCursor returns a write view over [start, end) of the table. If
// end exceeds the table's current element count, writes within the view
// may append (i == ElementCount()) exactly as Table.Write allows.
func (t *Table) WriteCursor(start, end uint64) (*WriteCursor, error) {
	if end < start {
		return nil, berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: range [%d,%d) invalid", start, end)
	}
	return &WriteCursor{table: t, start: start, end: end}, nil
}

func (c *WriteCursor) WriteByte(b byte) error {
	if c.start+c.pos >= c.end {
		return berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: write past end of cursor")
	}
	if err := c.table.Write(c.start+c.pos, b); err != nil {
		return err
	}
	c.pos++
	return nil
}

func (c *WriteCursor) Set(offset uint64, b byte) error {
	idx := c.start + offset
	if idx < c.start || idx >= c.end {
		return berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: index %d out of cursor", offset)
	}
	return c.table.Write(idx, b)
}

func (c *WriteCursor) Pos() uint64 { return c.pos }

func (c *WriteCursor) MoveForward(n uint64) error {
	next := c.pos + n
	if c.start+next > c.end {
		return berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: move_forward(%d) past end of cursor", n)
	}
	c.pos = next
	return nil
}
