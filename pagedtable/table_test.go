package pagedtable

import (
	"math/rand"
	"testing"

	"github.com/blockkv/blockkv/blockstorage"
)

func openTestContainer(t *testing.T, dir, id string, blockSize int32) (*blockstorage.Storage, *blockstorage.Container) {
	t.Helper()
	s, err := blockstorage.Open(dir, blockstorage.Options{NoLock: true})
	if err != nil {
		t.Fatalf("blockstorage.Open: %v", err)
	}
	c, err := s.Create(id, blockSize)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return s, c
}

func TestReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, c := openTestContainer(t, dir, "a", 16)
	tbl, err := New(s, c, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := uint64(0); i < 100; i++ {
		if err := tbl.Write(i, byte(i)); err != nil {
			t.Fatalf("Write(%d): %v", i, err)
		}
	}
	for i := uint64(0); i < 100; i++ {
		got, err := tbl.Read(i)
		if err != nil {
			t.Fatalf("Read(%d): %v", i, err)
		}
		if got != byte(i) {
			t.Fatalf("Read(%d) = %d, want %d", i, got, byte(i))
		}
	}
	if err := tbl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	const n = 1000
	const blockSize = 9

	for _, capacity := range []int{3, 5, 10, 100, 1000} {
		capacity := capacity
		t.Run("", func(t *testing.T) {
			dir := t.TempDir()
			s, c := openTestContainer(t, dir, "a", blockSize)
			tbl, err := New(s, c, capacity)
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			for i := uint64(0); i < n; i++ {
				if err := tbl.Write(i, byte(i)); err != nil {
					t.Fatalf("Write(%d): %v", i, err)
				}
			}

			for i := uint64(0); i < n; i++ {
				got, err := tbl.Read(i)
				if err != nil || got != byte(i) {
					t.Fatalf("in-order Read(%d) = (%d,%v), want %d", i, got, err, byte(i))
				}
			}
			for i := int64(n - 1); i >= 0; i-- {
				got, err := tbl.Read(uint64(i))
				if err != nil || got != byte(i) {
					t.Fatalf("reverse Read(%d) = (%d,%v), want %d", i, got, err, byte(i))
				}
			}
			rng := rand.New(rand.NewSource(123))
			for k := 0; k < 1000; k++ {
				i := uint64(rng.Intn(n))
				got, err := tbl.Read(i)
				if err != nil || got != byte(i) {
					t.Fatalf("random Read(%d) = (%d,%v), want %d", i, got, err, byte(i))
				}
			}

			for i := uint64(n); i < 2*n; i++ {
				if err := tbl.Write(i, byte(i)); err != nil {
					t.Fatalf("extend Write(%d): %v", i, err)
				}
			}
			for i := uint64(0); i < 2*n; i++ {
				v, err := tbl.Read(i)
				if err != nil {
					t.Fatalf("Read(%d) before increment: %v", i, err)
				}
				if err := tbl.Write(i, v+1); err != nil {
					t.Fatalf("increment Write(%d): %v", i, err)
				}
			}

			if err := tbl.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			c2, err := s.Open("a")
			if err != nil {
				t.Fatalf("reopen container: %v", err)
			}
			tbl2, err := New(s, c2, capacity)
			if err != nil {
				t.Fatalf("reopen New: %v", err)
			}
			defer tbl2.Close()

			if tbl2.ElementCount() != 2*n {
				t.Fatalf("reopened ElementCount = %d, want %d", tbl2.ElementCount(), 2*n)
			}
			for i := uint64(0); i < 2*n; i++ {
				got, err := tbl2.Read(i)
				if err != nil {
					t.Fatalf("reopened Read(%d): %v", i, err)
				}
				if want := byte(i) + 1; got != want {
					t.Fatalf("reopened Read(%d) = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestStatsHitsMissesAndPrefetch(t *testing.T) {
	dir := t.TempDir()
	s, c := openTestContainer(t, dir, "a", 4)
	tbl, err := New(s, c, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tbl.Close()

	const blocks = 20
	for i := uint64(0); i < blocks*4; i++ {
		if err := tbl.Write(i, byte(i)); err != nil {
			t.Fatalf("Write(%d): %v", i, err)
		}
	}

	before := tbl.Stats()
	accesses := uint64(0)
	for i := uint64(0); i < blocks*4; i++ {
		if _, err := tbl.Read(i); err != nil {
			t.Fatalf("Read(%d): %v", i, err)
		}
		accesses++
	}
	after := tbl.Stats()

	gotAccesses := (after.Hits - before.Hits) + (after.Misses - before.Misses)
	if gotAccesses != accesses {
		t.Fatalf("Hits+Misses delta = %d, want %d", gotAccesses, accesses)
	}
	if after.PrefetchIssued == 0 {
		t.Fatalf("expected at least one prefetch to have been issued")
	}
}

func TestReadWritePastBoundsRejected(t *testing.T) {
	dir := t.TempDir()
	s, c := openTestContainer(t, dir, "a", 8)
	tbl, err := New(s, c, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tbl.Close()

	if _, err := tbl.Read(0); err == nil {
		t.Fatalf("Read(0) on empty table: want error")
	}
	if err := tbl.Write(1, 0); err == nil {
		t.Fatalf("Write(1) on empty table: want error")
	}
	if err := tbl.Write(0, 42); err != nil {
		t.Fatalf("Write(0): %v", err)
	}
	if err := tbl.Write(2, 0); err == nil {
		t.Fatalf("Write(2) past element_count+1: want error")
	}
}
