package products

import (
	"sync"
	"testing"
	"time"
)

func TestCollectionPatchStatus(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Product{{ID: "p1", Status: StatusAvailable}})

	ts := time.Now()
	if !c.PatchStatus("p1", true, &ts) {
		t.Fatalf("patch of known product should succeed")
	}
	p, _ := c.Get("p1")
	if !p.Sold() || p.SoldAt == nil {
		t.Fatalf("unexpected: %+v", p)
	}

	if c.PatchStatus("missing", true, nil) {
		t.Fatalf("patch of unknown product should report false")
	}
}

func TestCollectionSnapshotIsIsolated(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Product{{ID: "p1", Name: "A", Status: StatusAvailable}})

	snap := c.Snapshot()
	snap[0].Status = StatusSold

	p, _ := c.Get("p1")
	if p.Sold() {
		t.Fatalf("mutating a snapshot must not touch the collection")
	}
}

func TestCollectionConcurrentPatches(t *testing.T) {
	c := NewCollection()
	c.ReplaceAll([]Product{{ID: "p1", Status: StatusAvailable}})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		sold := i%2 == 0
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.PatchStatus("p1", sold, nil)
		}()
	}
	wg.Wait()

	if c.Len() != 1 {
		t.Fatalf("expected one product, got %d", c.Len())
	}
}
