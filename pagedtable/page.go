package pagedtable

// Page is a single cached block: its id, whether it has unflushed writes,
// and its live bytes, exactly block_size long.
type Page struct {
	id       uint64
	modified bool
	bytes    []byte
}

// ID returns the block id this page caches.
func (p *Page) ID() uint64 { return p.id }

// Modified reports whether the page has been written since it was loaded
// or created.
func (p *Page) Modified() bool { return p.modified }
