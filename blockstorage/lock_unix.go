//go:build unix

package blockstorage

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/blockkv/blockkv/berr"
)

// lockHandle holds the state needed to release an advisory lock.
type lockHandle struct {
	fd int
	on bool
}

// acquireLock takes a non-blocking exclusive advisory lock on f. It
// returns berr.ErrAlreadyExists if another process already holds it.
func acquireLock(f *os.File) (lockHandle, error) {
	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return lockHandle{}, berr.WrapErr(berr.ErrAlreadyExists, err, "blockstorage: container locked by another process")
	}
	return lockHandle{fd: fd, on: true}, nil
}

func releaseLock(h lockHandle) {
	if !h.on {
		return
	}
	_ = unix.Flock(h.fd, unix.LOCK_UN)
}
