package products

import (
	"context"
	"testing"
	"time"
)

type fakeSource struct{}

func (fakeSource) UpdateStatus(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error {
	return nil
}

func (fakeSource) List(ctx context.Context, sellerID string) ([]Product, error) {
	return []Product{{ID: "p1", SellerID: sellerID}}, nil
}

func TestWorkspacesReuseBySession(t *testing.T) {
	w := NewWorkspaces(fakeSource{}, nil, time.Second)

	a := w.For("sess-1", "seller-1")
	b := w.For("sess-1", "seller-1")
	if a != b {
		t.Fatalf("same session must map to the same workspace")
	}

	c := w.For("sess-2", "seller-1")
	if a == c {
		t.Fatalf("different sessions must not share a workspace")
	}
}

func TestWorkspacesSellerChangeClosesOldRefresher(t *testing.T) {
	w := NewWorkspaces(fakeSource{}, nil, 20*time.Millisecond)

	old := w.For("sess-1", "seller-1")
	old.Refresher.Schedule()

	// Same session id, different seller: the displaced workspace's armed
	// refresh must not fire for the replaced seller.
	next := w.For("sess-1", "seller-2")
	if next == old {
		t.Fatalf("expected a fresh workspace for the new seller")
	}

	time.Sleep(60 * time.Millisecond)
	if old.Collection.Len() != 0 {
		t.Fatalf("displaced workspace's refresh fired after replacement")
	}
}

func TestWorkspacesDrop(t *testing.T) {
	w := NewWorkspaces(fakeSource{}, nil, 20*time.Millisecond)

	ws := w.For("sess-1", "seller-1")
	ws.Refresher.Schedule()
	w.Drop("sess-1")

	// A dropped workspace's refresher is closed; its timer must not fire.
	time.Sleep(60 * time.Millisecond)
	if ws.Collection.Len() != 0 {
		t.Fatalf("refresh fired after Drop")
	}

	if again := w.For("sess-1", "seller-1"); again == ws {
		t.Fatalf("Drop must evict the workspace")
	}
}
