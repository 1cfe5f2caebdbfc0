package blockstorage

import (
	"log"

	"github.com/google/uuid"
)

// AsyncResult is a future for a single block read or write, modeling the
// "async result" of spec.md §4.2. BlockStorage itself never serializes
// concurrent submissions on the same handle; callers that need at most
// one read and one write in flight (the paged byte table) enforce that
// themselves by waiting before issuing the next one.
type AsyncResult struct {
	done chan error
}

// Wait blocks until the operation completes and returns its error, if any.
func (a *AsyncResult) Wait() error {
	return <-a.done
}

func immediateResult(err error) *AsyncResult {
	a := &AsyncResult{done: make(chan error, 1)}
	a.done <- err
	return a
}

func runAsync(taskID uuid.UUID, kind string, pos uint64, debug bool, fn func() error) *AsyncResult {
	a := &AsyncResult{done: make(chan error, 1)}
	go func() {
		err := fn()
		if debug {
			log.Printf("blockstorage: task=%s kind=%s pos=%d err=%v", taskID, kind, pos, err)
		}
		a.done <- err
	}()
	return a
}
