package pagedtable

import "golang.org/x/sync/errgroup"

// bgSlot tracks at most one in-flight background task (a read or a write)
// targeting a single block id. start must never be called while the slot
// is already active; callers always drain first.
type bgSlot struct {
	active bool
	id     uint64
	buf    []byte
	eg     *errgroup.Group
}

func (s *bgSlot) start(id uint64, buf []byte, fn func() error) {
	eg := &errgroup.Group{}
	eg.Go(fn)
	s.active = true
	s.id = id
	s.buf = buf
	s.eg = eg
}

// drain waits for the in-flight task, if any, and clears the slot.
func (s *bgSlot) drain() error {
	if !s.active {
		return nil
	}
	err := s.eg.Wait()
	s.active = false
	s.eg = nil
	return err
}
