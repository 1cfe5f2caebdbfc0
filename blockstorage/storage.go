// Package blockstorage implements the block-storage layer of blockkv: a
// workspace of named containers, each a file of equal-sized blocks with a
// reserved, application-writable header block, opened and closed through a
// single-producer open-set keyed by identifier.
package blockstorage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/blockkv/blockkv/berr"
	"github.com/blockkv/blockkv/identifier"
)

// Options configures a Storage instance.
type Options struct {
	// Separator remaps '/' in identifiers to a platform path separator.
	// Defaults to identifier.DefaultSeparator ('/') when zero.
	Separator byte
	// NoLock disables the advisory, per-process-exclusive lock normally
	// taken on each container file for the lifetime of the handle (unix
	// only; a no-op on other platforms). Locking is enabled by default.
	NoLock bool
	// Debug logs a correlation id for every background read/write task.
	Debug bool
}

// Storage is a rooted workspace of named block containers. Each Storage
// instance owns its own open-set; it is not shared across instances and
// is not safe for concurrent use from multiple goroutines without
// external synchronization beyond what's documented per method.
type Storage struct {
	root string
	opts Options

	mu   sync.Mutex
	open map[string]*Container
}

// Open creates a Storage rooted at dir. The directory is created on
// demand; it need not already exist.
func Open(dir string, opts Options) (*Storage, error) {
	if opts.Separator == 0 {
		opts.Separator = identifier.DefaultSeparator
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, berr.WrapErr(berr.ErrInvalidArgument, err, "blockstorage: mkdir workspace %q", dir)
	}
	return &Storage{
		root: dir,
		opts: opts,
		open: make(map[string]*Container),
	}, nil
}

func (s *Storage) path(normalized string) string {
	return filepath.Join(s.root, normalized)
}

// Exists reports whether a container with the given (unnormalized)
// identifier exists on disk.
func (s *Storage) Exists(id string) bool {
	n, err := identifier.Normalize(id, s.opts.Separator)
	if err != nil {
		return false
	}
	_, err = os.Stat(s.path(n))
	return err == nil
}

// Create makes a new container named id with the given block size and
// opens it. It fails with berr.ErrAlreadyExists if the container exists,
// or berr.ErrInvalidArgument if blockSize <= 0.
func (s *Storage) Create(id string, blockSize int32) (*Container, error) {
	if blockSize <= 0 {
		return nil, berr.Wrap(berr.ErrInvalidArgument, "blockstorage: block size %d must be > 0", blockSize)
	}
	n, err := identifier.Normalize(id, s.opts.Separator)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.open[n]; ok {
		return nil, berr.Wrap(berr.ErrAlreadyExists, "blockstorage: container %q already open", id)
	}

	p := s.path(n)
	if _, err := os.Stat(p); err == nil {
		return nil, berr.Wrap(berr.ErrAlreadyExists, "blockstorage: container %q already exists", id)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, berr.WrapErr(berr.ErrInvalidArgument, err, "blockstorage: mkdir for container %q", id)
	}

	if err := writeEmptyContainerFile(p, blockSize); err != nil {
		return nil, berr.WrapErr(berr.ErrInvalidArgument, err, "blockstorage: create container %q", id)
	}

	c, err := s.openFile(n, p)
	if err != nil {
		return nil, err
	}
	s.open[n] = c
	return c, nil
}

// Open opens an existing container named id. It is idempotent: repeated
// calls for the same id within one Storage instance return the same
// handle. Fails with berr.ErrNotFound if the container doesn't exist.
func (s *Storage) Open(id string) (*Container, error) {
	n, err := identifier.Normalize(id, s.opts.Separator)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.open[n]; ok {
		return c, nil
	}

	p := s.path(n)
	if _, err := os.Stat(p); err != nil {
		return nil, berr.WrapErr(berr.ErrNotFound, err, "blockstorage: container %q not found", id)
	}

	c, err := s.openFile(n, p)
	if err != nil {
		return nil, err
	}
	s.open[n] = c
	return c, nil
}

func (s *Storage) openFile(normalized, path string) (*Container, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("blockstorage: open container file %q: %w", path, err)
	}

	c := &Container{id: normalized, path: path, file: f, debug: s.opts.Debug}

	if !s.opts.NoLock {
		lh, err := acquireLock(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		c.lockHandle = lh
	}

	bs, err := c.readBlockSizePrefix()
	if err != nil {
		releaseLock(c.lockHandle)
		f.Close()
		return nil, err
	}
	c.blockSize = bs

	if err := c.loadHeader(); err != nil {
		releaseLock(c.lockHandle)
		f.Close()
		return nil, err
	}

	bc, err := c.computeBlockCount()
	if err != nil {
		releaseLock(c.lockHandle)
		f.Close()
		return nil, err
	}
	c.blockCount = bc

	return c, nil
}

// Close flushes the header block and releases h. Subsequent operations
// on h fail with berr.ErrClosed.
func (s *Storage) Close(h *Container) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return berr.Wrap(berr.ErrInvalidArgument, "blockstorage: container %q already closed", h.id)
	}
	h.closed = true
	h.mu.Unlock()

	s.mu.Lock()
	delete(s.open, h.id)
	s.mu.Unlock()

	err := h.flushHeader()
	releaseLock(h.lockHandle)
	if cerr := h.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// Delete closes h (if not already closed) and removes its backing file.
func (s *Storage) Delete(h *Container) error {
	if !h.closed {
		_ = s.Close(h)
	}
	if err := os.Remove(h.path); err != nil {
		return berr.WrapErr(berr.ErrNotFound, err, "blockstorage: delete container %q", h.id)
	}
	return nil
}

// writeEmptyContainerFile creates a brand-new container file containing
// just the 4-byte block-size prefix and a zeroed header block, using an
// atomic whole-file replace so a crash mid-create never leaves a torn
// file where one might already exist.
func writeEmptyContainerFile(path string, blockSize int32) error {
	buf := make([]byte, fileHeaderSize+int(blockSize))
	putLE32(buf, blockSize)
	return atomicWriteFile(path, buf)
}

func putLE32(buf []byte, v int32) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
}
