package blockstorage

import (
	"encoding/binary"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/blockkv/blockkv/berr"
)

// fileHeaderSize is the 4-byte little-endian block_size field at the very
// start of a container file.
const fileHeaderSize = 4

// Container is an open handle to a single block-file inside a Storage's
// workspace: a 4-byte block-size prefix, one application-writable header
// block, and a sequence of equal-sized data blocks addressed by position.
type Container struct {
	id        string
	path      string
	blockSize int32

	mu         sync.Mutex
	file       *os.File
	header     []byte
	blockCount uint64
	closed     bool
	debug      bool

	lockHandle lockHandle
}

// BlockSize returns the container's fixed block size in bytes.
func (c *Container) BlockSize() int32 {
	return c.blockSize
}

// BlockCount returns the number of addressable data blocks (not counting
// the header block).
func (c *Container) BlockCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blockCount
}

// Header returns the in-memory header block buffer. Callers read and
// write it in place; it is flushed to disk on Close.
func (c *Container) Header() []byte {
	return c.header
}

// dataOffset returns the byte offset of data block pos within the file.
func (c *Container) dataOffset(pos uint64) int64 {
	return int64(fileHeaderSize) + int64(c.blockSize) /*header block*/ + int64(pos)*int64(c.blockSize)
}

// ReadBlock reads data block pos into buf (which must be exactly
// BlockSize() long) asynchronously, returning an AsyncResult the caller
// must Wait on. pos must be in [0, BlockCount()).
func (c *Container) ReadBlock(pos uint64, buf []byte) *AsyncResult {
	c.mu.Lock()
	closed := c.closed
	count := c.blockCount
	bs := c.blockSize
	c.mu.Unlock()

	taskID := uuid.New()
	if closed {
		return immediateResult(berr.Wrap(berr.ErrClosed, "blockstorage: read_block on closed container %q", c.id))
	}
	if pos >= count {
		return immediateResult(berr.Wrap(berr.ErrIndexOutOfRange, "blockstorage: read_block(%d) out of [0,%d)", pos, count))
	}
	if int32(len(buf)) != bs {
		return immediateResult(berr.Wrap(berr.ErrInvalidArgument, "blockstorage: read_block buffer length %d != block size %d", len(buf), bs))
	}

	return runAsync(taskID, "read_block", pos, c.debug, func() error {
		off := c.dataOffset(pos)
		_, err := c.file.ReadAt(buf, off)
		return err
	})
}

// WriteBlock writes buf to data block pos asynchronously. pos ==
// BlockCount() extends the container by one block.
func (c *Container) WriteBlock(pos uint64, buf []byte) *AsyncResult {
	c.mu.Lock()
	closed := c.closed
	count := c.blockCount
	bs := c.blockSize
	c.mu.Unlock()

	taskID := uuid.New()
	if closed {
		return immediateResult(berr.Wrap(berr.ErrClosed, "blockstorage: write_block on closed container %q", c.id))
	}
	if pos > count {
		return immediateResult(berr.Wrap(berr.ErrIndexOutOfRange, "blockstorage: write_block(%d) out of [0,%d]", pos, count))
	}
	if int32(len(buf)) != bs {
		return immediateResult(berr.Wrap(berr.ErrInvalidArgument, "blockstorage: write_block buffer length %d != block size %d", len(buf), bs))
	}

	extend := pos == count
	return runAsync(taskID, "write_block", pos, c.debug, func() error {
		off := c.dataOffset(pos)
		if _, err := c.file.WriteAt(buf, off); err != nil {
			return err
		}
		if extend {
			c.mu.Lock()
			c.blockCount++
			c.mu.Unlock()
		}
		return nil
	})
}

// flushHeader writes the in-memory header block back to its fixed
// position in the file and syncs it.
func (c *Container) flushHeader() error {
	if _, err := c.file.WriteAt(c.header, fileHeaderSize); err != nil {
		return err
	}
	return c.file.Sync()
}

func (c *Container) loadHeader() error {
	c.header = make([]byte, c.blockSize)
	if _, err := c.file.ReadAt(c.header, fileHeaderSize); err != nil {
		// A header block cut short on disk is treated as all zeroes.
		clear(c.header)
	}
	return nil
}

func (c *Container) readBlockSizePrefix() (int32, error) {
	buf := make([]byte, fileHeaderSize)
	n, err := c.file.ReadAt(buf, 0)
	if n < fileHeaderSize {
		return 0, berr.WrapErr(berr.ErrCorrupted, err, "blockstorage: container %q header shorter than %d bytes", c.id, fileHeaderSize)
	}
	return int32(binary.LittleEndian.Uint32(buf)), nil
}

func (c *Container) writeBlockSizePrefix() error {
	buf := make([]byte, fileHeaderSize)
	binary.LittleEndian.PutUint32(buf, uint32(c.blockSize))
	_, err := c.file.WriteAt(buf, 0)
	return err
}

// computeBlockCount derives the number of complete data blocks from the
// current file size.
func (c *Container) computeBlockCount() (uint64, error) {
	fi, err := c.file.Stat()
	if err != nil {
		return 0, err
	}
	dataBytes := fi.Size() - int64(fileHeaderSize) - int64(c.blockSize)
	if dataBytes < 0 {
		dataBytes = 0
	}
	return uint64(dataBytes) / uint64(c.blockSize), nil
}
