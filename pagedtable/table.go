// Package pagedtable implements a synchronous, per-byte random-access
// table over a block container: an LRU page cache with one-ahead read
// prefetch, an at-most-one-in-flight background write, and a hot-path
// fast cell for the most recently touched page.
package pagedtable

import (
	"encoding/binary"

	"github.com/blockkv/blockkv/berr"
	"github.com/blockkv/blockkv/blockstorage"
	"github.com/blockkv/blockkv/lru"
)

// Stats are read-only counters tracking cache effectiveness, recovered
// from none of spec.md's own text but useful for an inspect tool.
type Stats struct {
	Hits             uint64
	Misses           uint64
	Evictions        uint64
	PrefetchHits     uint64
	PrefetchIssued   uint64
	BackgroundWrites uint64
}

// loadKind records which branch of the page-load policy the most recent
// cache-miss load took, so the caller (Read/Write, via getPage) knows
// whether to trigger prefetch and how to account stats. It's reset by
// every loadPage call and has no meaning outside of the getPage call that
// just invoked the cache.
type loadKind int

const (
	loadSync loadKind = iota
	loadExtend
	loadPrefetchHit
)

// Table is a synchronous byte-addressed array layered over a block
// container. It is not safe for concurrent use: the cooperative
// single-in-flight-read/write model assumes a single caller goroutine.
type Table struct {
	storage   *blockstorage.Storage
	container *blockstorage.Container
	blockSize uint64

	cache        *lru.Cache[uint64, *Page]
	elementCount uint64
	blockCount   uint64
	lastAccessed *Page

	bgRead  bgSlot
	bgWrite bgSlot
	free    [][]byte

	stats    Stats
	lastKind loadKind
	drainErr error
	closed   bool
}

// New builds a Table over container, whose header's first 8 bytes hold
// the persisted element_count (zero for a freshly created container).
// cacheCapacity is the LRU page cache's capacity (must be > 2, per
// lru.New). storage is retained only so Close can release the container
// through it.
func New(storage *blockstorage.Storage, container *blockstorage.Container, cacheCapacity int) (*Table, error) {
	if container.BlockSize() < 8 {
		return nil, berr.Wrap(berr.ErrInvalidArgument, "pagedtable: block size %d too small to hold element_count", container.BlockSize())
	}

	t := &Table{
		storage:    storage,
		container:  container,
		blockSize:  uint64(container.BlockSize()),
		blockCount: container.BlockCount(),
	}
	t.cache = lru.New[uint64, *Page](cacheCapacity, t.loadPage, t.unloadPage)
	t.elementCount = binary.LittleEndian.Uint64(container.Header()[:8])
	return t, nil
}

// ElementCount returns the table's current logical length.
func (t *Table) ElementCount() uint64 { return t.elementCount }

// Stats returns a snapshot of the table's cache counters.
func (t *Table) Stats() Stats { return t.stats }

// Read returns the byte at logical index i. i must be < ElementCount().
func (t *Table) Read(i uint64) (byte, error) {
	if i >= t.elementCount {
		return 0, berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: read(%d) out of [0,%d)", i, t.elementCount)
	}
	bid, off := i/t.blockSize, i%t.blockSize
	page, err := t.getPage(bid)
	if err != nil {
		return 0, err
	}
	return page.bytes[off], nil
}

// Write sets the byte at logical index i to v. i may equal ElementCount()
// to append, which grows the table by one.
func (t *Table) Write(i uint64, v byte) error {
	if i > t.elementCount {
		return berr.Wrap(berr.ErrIndexOutOfRange, "pagedtable: write(%d) out of [0,%d]", i, t.elementCount)
	}
	bid, off := i/t.blockSize, i%t.blockSize
	page, err := t.getPage(bid)
	if err != nil {
		return err
	}
	if i == t.elementCount {
		t.elementCount++
	}
	page.modified = true
	page.bytes[off] = v
	return nil
}

// getPage resolves block bid to a resident Page, consulting the fast
// cell first, then the LRU cache (which calls loadPage on a miss), then
// triggers prefetch when the load was a genuine synchronous read.
func (t *Table) getPage(bid uint64) (*Page, error) {
	if t.lastAccessed != nil && t.lastAccessed.id == bid {
		t.stats.Hits++
		return t.lastAccessed, nil
	}

	hadKey := t.cache.HasKey(bid)
	page, err := t.cache.Get(bid)
	if err != nil {
		return nil, err
	}

	if hadKey {
		t.stats.Hits++
	} else {
		t.stats.Misses++
		switch t.lastKind {
		case loadPrefetchHit:
			t.stats.PrefetchHits++
		case loadSync:
			t.maybePrefetch(bid)
		}
	}

	t.lastAccessed = page
	return page, nil
}

// maybePrefetch issues a background read for bid+1 if it isn't already
// resident or in flight in either background slot.
func (t *Table) maybePrefetch(bid uint64) {
	next := bid + 1
	if next >= t.blockCount {
		return
	}
	if t.cache.HasKey(next) {
		return
	}
	if t.bgRead.active && t.bgRead.id == next {
		return
	}
	if t.bgWrite.active && t.bgWrite.id == next {
		return
	}

	buf := t.allocBuf()
	t.bgRead.start(next, buf, func() error {
		return t.container.ReadBlock(next, buf).Wait()
	})
	t.stats.PrefetchIssued++
}

// loadPage is the LRU cache's Loader, implementing the page-load policy:
// extend on a trailing block, await an already-issued prefetch, or drain
// whatever's in the way and issue a fresh synchronous read.
func (t *Table) loadPage(bid uint64) (*Page, error) {
	if bid == t.blockCount {
		t.lastKind = loadExtend
		t.blockCount++
		if err := t.bgWrite.drain(); err != nil {
			return nil, err
		}

		writeBuf := t.allocBuf()
		clear(writeBuf)
		pageBuf := t.allocBuf()
		clear(pageBuf)

		id := bid
		t.bgWrite.start(id, writeBuf, func() error {
			return t.container.WriteBlock(id, writeBuf).Wait()
		})
		t.stats.BackgroundWrites++
		return &Page{id: bid, modified: true, bytes: pageBuf}, nil
	}

	if t.bgRead.active && t.bgRead.id == bid {
		t.lastKind = loadPrefetchHit
		buf := t.bgRead.buf
		if err := t.bgRead.drain(); err != nil {
			return nil, err
		}
		return &Page{id: bid, modified: false, bytes: buf}, nil
	}

	t.lastKind = loadSync
	if t.bgWrite.active && t.bgWrite.id == bid {
		if err := t.bgWrite.drain(); err != nil {
			return nil, err
		}
	}
	if t.bgRead.active {
		buf := t.bgRead.buf
		if err := t.bgRead.drain(); err != nil {
			return nil, err
		}
		t.recycle(buf)
	}

	buf := t.allocBuf()
	if err := t.container.ReadBlock(bid, buf).Wait(); err != nil {
		return nil, err
	}
	return &Page{id: bid, modified: false, bytes: buf}, nil
}

// unloadPage is the LRU cache's Unloader: dirty pages drain any pending
// background write and start a new one; clean pages just recycle their
// buffer. Either way the fast cell is invalidated if it pointed here,
// since the page's buffer may now be owned by an in-flight write.
func (t *Table) unloadPage(bid uint64, page *Page) {
	t.stats.Evictions++
	if t.lastAccessed == page {
		t.lastAccessed = nil
	}

	if !page.modified {
		t.recycle(page.bytes)
		return
	}

	if err := t.bgWrite.drain(); err != nil && t.drainErr == nil {
		t.drainErr = err
	}
	id, buf := bid, page.bytes
	t.bgWrite.start(id, buf, func() error {
		return t.container.WriteBlock(id, buf).Wait()
	})
	t.stats.BackgroundWrites++
}

func (t *Table) allocBuf() []byte {
	if n := len(t.free); n > 0 {
		buf := t.free[n-1]
		t.free = t.free[:n-1]
		return buf
	}
	return make([]byte, t.blockSize)
}

func (t *Table) recycle(buf []byte) {
	t.free = append(t.free, buf)
}

// Close flushes every dirty page, drains the background write, persists
// element_count into the header, and closes the container. It always
// attempts every step, even after an earlier one fails, returning the
// first error encountered.
func (t *Table) Close() error {
	if t.closed {
		return berr.Wrap(berr.ErrInvalidArgument, "pagedtable: already closed")
	}
	t.closed = true

	var first error
	note := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	t.cache.Clear()
	note(t.drainErr)
	note(t.bgWrite.drain())

	header := t.container.Header()
	binary.LittleEndian.PutUint64(header[:8], t.elementCount)

	note(t.storage.Close(t.container))
	return first
}
