package typedtable

import (
	"github.com/blockkv/blockkv/cursor"
	"github.com/blockkv/blockkv/encoding"
)

// indexEntrySize is the fixed width of one IndexEntry: an Int64 start
// offset followed by an Int32 length, with no separators or markers
// around them (this is an internal bookkeeping record, not a schema
// value the caller ever sees through Read/Write).
const indexEntrySize = encoding.SizeLong + encoding.SizeInt

// indexEntry locates one variable-layout record's payload in the data
// stream: byte offset start, length bytes long.
type indexEntry struct {
	start  int64
	length int32
}

func writeIndexEntry(w cursor.Writer, e indexEntry) error {
	if err := encoding.WriteInt64(w, e.start); err != nil {
		return err
	}
	return encoding.WriteInt32(w, e.length)
}

func readIndexEntry(r cursor.Reader) (indexEntry, error) {
	start, err := encoding.ReadInt64(r)
	if err != nil {
		return indexEntry{}, err
	}
	length, err := encoding.ReadInt32(r)
	if err != nil {
		return indexEntry{}, err
	}
	return indexEntry{start: start, length: length}, nil
}
