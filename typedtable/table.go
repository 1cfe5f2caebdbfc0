// Package typedtable maps a logical record index to byte region(s) in
// one or two paged byte tables, decoding and encoding through a schema
// node: fixed-size records are addressed by multiplication, variable-size
// ones through an index stream of (start, length) entries.
package typedtable

import (
	"github.com/blockkv/blockkv/berr"
	"github.com/blockkv/blockkv/pagedtable"
	"github.com/blockkv/blockkv/schema"
)

// Stats mirrors pagedtable.Stats; for a variable-layout Table it is the
// sum of the index and data streams' counters.
type Stats = pagedtable.Stats

// Table is a typed, random-access array of T backed by one paged byte
// table (fixed-size records) or two (variable-size records: an index
// stream of (start, length) entries plus an append-only data stream).
type Table[T any] struct {
	node schema.Node[T]

	fixed      bool
	recordSize int // fixed layout only: S = node.DynamicSize(zero value)

	data  *pagedtable.Table // fixed layout: the sole stream; variable layout: the data stream
	index *pagedtable.Table // variable layout only
}

// New builds a Table over the given schema node. If dataContainer is nil
// or node is fixed size, indexContainer is used as the single data
// stream (fixed layout); otherwise indexContainer holds IndexEntry
// records and dataContainer holds the variable-length payloads.
func New[T any](node schema.Node[T], indexContainer, dataContainer *pagedtable.Table) *Table[T] {
	if dataContainer == nil || node.IsFixedSize() {
		var zero T
		return &Table[T]{
			node:       node,
			fixed:      true,
			recordSize: node.DynamicSize(zero),
			data:       indexContainer,
		}
	}
	return &Table[T]{
		node:  node,
		fixed: false,
		index: indexContainer,
		data:  dataContainer,
	}
}

// Len returns the number of records currently stored.
func (t *Table[T]) Len() uint64 {
	if t.fixed {
		return t.data.ElementCount() / uint64(t.recordSize)
	}
	return t.index.ElementCount() / uint64(indexEntrySize)
}

// Read decodes record i. i must be < Len().
func (t *Table[T]) Read(i uint64) (T, error) {
	var zero T
	if i >= t.Len() {
		return zero, berr.Wrap(berr.ErrIndexOutOfRange, "typedtable: read(%d) out of [0,%d)", i, t.Len())
	}

	if t.fixed {
		s := uint64(t.recordSize)
		rc, err := t.data.ReadCursor(i*s, i*s+s)
		if err != nil {
			return zero, err
		}
		return t.node.Read(rc)
	}

	entry, err := t.readEntry(i)
	if err != nil {
		return zero, err
	}
	start := uint64(entry.start)
	rc, err := t.data.ReadCursor(start, start+uint64(entry.length))
	if err != nil {
		return zero, err
	}
	return t.node.Read(rc)
}

// Write stores v as record i. i may equal Len() to append a new record.
func (t *Table[T]) Write(i uint64, v T) error {
	n := t.Len()
	if i > n {
		return berr.Wrap(berr.ErrIndexOutOfRange, "typedtable: write(%d) out of [0,%d]", i, n)
	}

	if t.fixed {
		s := uint64(t.recordSize)
		wc, err := t.data.WriteCursor(i*s, i*s+s)
		if err != nil {
			return err
		}
		return t.node.Write(wc, v)
	}

	// Variable records are always appended to the tail of the data
	// stream; overwriting record i only rewrites its IndexEntry, leaving
	// the old payload bytes as unreclaimed garbage (no secondary-stream
	// GC in this layer).
	length := t.node.DynamicSize(v)
	start := t.data.ElementCount()
	wc, err := t.data.WriteCursor(start, start+uint64(length))
	if err != nil {
		return err
	}
	if err := t.node.Write(wc, v); err != nil {
		return err
	}
	return t.writeEntry(i, indexEntry{start: int64(start), length: int32(length)})
}

func (t *Table[T]) readEntry(i uint64) (indexEntry, error) {
	base := i * uint64(indexEntrySize)
	rc, err := t.index.ReadCursor(base, base+uint64(indexEntrySize))
	if err != nil {
		return indexEntry{}, err
	}
	return readIndexEntry(rc)
}

func (t *Table[T]) writeEntry(i uint64, e indexEntry) error {
	base := i * uint64(indexEntrySize)
	wc, err := t.index.WriteCursor(base, base+uint64(indexEntrySize))
	if err != nil {
		return err
	}
	return writeIndexEntry(wc, e)
}

// Stats forwards the underlying paged table(s)' counters, summed for a
// variable-layout Table.
func (t *Table[T]) Stats() Stats {
	if t.fixed {
		return t.data.Stats()
	}
	is, ds := t.index.Stats(), t.data.Stats()
	return Stats{
		Hits:             is.Hits + ds.Hits,
		Misses:           is.Misses + ds.Misses,
		Evictions:        is.Evictions + ds.Evictions,
		PrefetchHits:     is.PrefetchHits + ds.PrefetchHits,
		PrefetchIssued:   is.PrefetchIssued + ds.PrefetchIssued,
		BackgroundWrites: is.BackgroundWrites + ds.BackgroundWrites,
	}
}

// Close closes the underlying paged table(s), index before data for a
// variable layout. Both closes are always attempted; the first error is
// returned.
func (t *Table[T]) Close() error {
	if t.fixed {
		return t.data.Close()
	}
	indexErr := t.index.Close()
	dataErr := t.data.Close()
	if indexErr != nil {
		return indexErr
	}
	return dataErr
}
