//go:build !unix

package blockstorage

import "os"

// lockHandle is a no-op stub on platforms without flock-style advisory
// locking; leaving Options.NoLock false takes no lock there.
type lockHandle struct{}

func acquireLock(f *os.File) (lockHandle, error) {
	return lockHandle{}, nil
}

func releaseLock(h lockHandle) {}
