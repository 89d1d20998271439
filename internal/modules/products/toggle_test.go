package products

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Mwvndva/byblos/internal/shared/apperr"
)

type updateCall struct {
	sellerID string
	id       string
	sold     bool
	soldAt   *time.Time
}

type fakeUpdater struct {
	mu          sync.Mutex
	calls       []updateCall
	err         error
	hadDeadline bool
}

func (f *fakeUpdater) UpdateStatus(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, f.hadDeadline = ctx.Deadline()
	f.calls = append(f.calls, updateCall{sellerID: sellerID, id: id, sold: sold, soldAt: soldAt})
	return f.err
}

func (f *fakeUpdater) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeNotifier struct {
	applied     []ToggleResult
	failed      []string
	undoApplied []ToggleResult
	undoFailed  []string
}

func (n *fakeNotifier) ToggleApplied(res ToggleResult) { n.applied = append(n.applied, res) }
func (n *fakeNotifier) ToggleFailed(res ToggleResult, msg string) { n.failed = append(n.failed, msg) }
func (n *fakeNotifier) UndoApplied(res ToggleResult) { n.undoApplied = append(n.undoApplied, res) }
func (n *fakeNotifier) UndoFailed(res ToggleResult, msg string) { n.undoFailed = append(n.undoFailed, msg) }

type toggleHarness struct {
	coll    *Collection
	updater *fakeUpdater
	toggle  *Toggle
	events  []string
	mu      sync.Mutex
}

func newHarness(items []Product, updateErr error) *toggleHarness {
	h := &toggleHarness{
		coll:    NewCollection(),
		updater: &fakeUpdater{err: updateErr},
	}
	h.coll.ReplaceAll(items)

	recordingUpdater := updaterFunc(func(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error {
		h.record("update")
		return h.updater.UpdateStatus(ctx, sellerID, id, sold, soldAt)
	})
	h.toggle = NewToggle(ToggleConfig{
		SellerID: "seller-1",
		Updater:  recordingUpdater,
		Patch: func(id string, sold bool, soldAt *time.Time) bool {
			h.record("patch")
			return h.coll.PatchStatus(id, sold, soldAt)
		},
		ScheduleRefresh: func() { h.record("refresh") },
	})
	return h
}

func (h *toggleHarness) record(ev string) {
	h.mu.Lock()
	h.events = append(h.events, ev)
	h.mu.Unlock()
}

type updaterFunc func(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error

func (f updaterFunc) UpdateStatus(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error {
	return f(ctx, sellerID, id, sold, soldAt)
}

func available(id, name string) Product {
	return Product{ID: id, Name: name, Status: StatusAvailable}
}

func TestToggleSuccessMarksSold(t *testing.T) {
	h := newHarness([]Product{available("p1", "Leather Satchel")}, nil)
	n := &fakeNotifier{}

	if err := h.toggle.Request(h.mustGet(t, "p1")); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := h.toggle.Phase(); got != PhaseConfirming {
		t.Fatalf("expected confirming, got %s", got)
	}
	pending, ok := h.toggle.Pending()
	if !ok || pending.ProductID != "p1" || !pending.WillBeSold {
		t.Fatalf("unexpected pending: %+v ok=%v", pending, ok)
	}
	if pending.Previous.Sold || pending.Previous.SoldAt != nil {
		t.Fatalf("previous snapshot should be available/nil: %+v", pending.Previous)
	}

	h.toggle.Confirm(context.Background(), n)

	p := h.mustGet(t, "p1")
	if !p.Sold() || p.SoldAt == nil {
		t.Fatalf("expected sold with timestamp, got %+v", p)
	}
	if len(n.applied) != 1 || len(n.failed) != 0 {
		t.Fatalf("expected one success notification, got %+v", n)
	}
	if n.applied[0].Previous.Sold {
		t.Fatalf("undo snapshot should carry the previous (available) state")
	}
	if got := h.toggle.Phase(); got != PhaseIdle {
		t.Fatalf("expected idle after settle, got %s", got)
	}
	if _, ok := h.toggle.Pending(); ok {
		t.Fatalf("no transient state may survive settle")
	}
}

func TestToggleFailureRollsBack(t *testing.T) {
	t0 := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sold := Product{ID: "p2", Name: "Beaded Necklace", Status: StatusSold, SoldAt: &t0}
	h := newHarness([]Product{sold}, apperr.NotFoundErr("This product no longer exists."))
	n := &fakeNotifier{}

	if err := h.toggle.Request(h.mustGet(t, "p2")); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	h.toggle.Confirm(context.Background(), n)

	p := h.mustGet(t, "p2")
	if !p.Sold() || p.SoldAt == nil || !p.SoldAt.Equal(t0) {
		t.Fatalf("expected rollback to sold@%v, got %+v", t0, p)
	}
	if len(n.failed) != 1 || len(n.applied) != 0 {
		t.Fatalf("expected one failure notification, got %+v", n)
	}
	if n.failed[0] != "This product no longer exists." {
		t.Fatalf("expected server message passed through, got %q", n.failed[0])
	}
	if got := h.toggle.Phase(); got != PhaseIdle {
		t.Fatalf("expected idle after settle, got %s", got)
	}
}

func TestOptimisticApplyPrecedesDispatch(t *testing.T) {
	h := newHarness([]Product{available("p1", "Satchel")}, nil)

	if err := h.toggle.Request(h.mustGet(t, "p1")); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	h.toggle.Confirm(context.Background(), &fakeNotifier{})

	if len(h.events) < 3 || h.events[0] != "patch" || h.events[1] != "refresh" || h.events[2] != "update" {
		t.Fatalf("expected patch, refresh, update in order, got %v", h.events)
	}
	if !h.updater.hadDeadline {
		t.Fatalf("persistence call must run under a deadline")
	}
}

func TestSecondRequestRejected(t *testing.T) {
	h := newHarness([]Product{available("p1", "A"), available("p3", "C")}, nil)

	if err := h.toggle.Request(h.mustGet(t, "p1")); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	err := h.toggle.Request(h.mustGet(t, "p3"))
	if !errors.Is(err, ErrToggleBusy) {
		t.Fatalf("expected ErrToggleBusy, got %v", err)
	}

	pending, ok := h.toggle.Pending()
	if !ok || pending.ProductID != "p1" {
		t.Fatalf("active toggle must be unaffected, got %+v ok=%v", pending, ok)
	}
}

func TestCancelHasNoSideEffects(t *testing.T) {
	h := newHarness([]Product{available("p1", "A")}, nil)

	if err := h.toggle.Request(h.mustGet(t, "p1")); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	h.toggle.Cancel()
	h.toggle.Cancel() // idempotent

	if got := h.toggle.Phase(); got != PhaseIdle {
		t.Fatalf("expected idle, got %s", got)
	}
	if len(h.events) != 0 {
		t.Fatalf("cancel must not touch collection or remote, got %v", h.events)
	}
	if h.updater.callCount() != 0 {
		t.Fatalf("cancel must not issue a remote call")
	}

	// A new request may follow a cancel.
	if err := h.toggle.Request(h.mustGet(t, "p1")); err != nil {
		t.Fatalf("request after cancel failed: %v", err)
	}
}

func TestConfirmWithoutRequestIsNoOp(t *testing.T) {
	h := newHarness([]Product{available("p1", "A")}, nil)
	n := &fakeNotifier{}

	h.toggle.Confirm(context.Background(), n)

	if len(h.events) != 0 || len(n.applied)+len(n.failed) != 0 {
		t.Fatalf("confirm without a pending request must do nothing")
	}
}

func TestRequestWithoutProductID(t *testing.T) {
	h := newHarness(nil, nil)
	err := h.toggle.Request(Product{})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.Invalid {
		t.Fatalf("expected invalid kind, got %v", err)
	}
}

func TestUndoRestoresPreviousState(t *testing.T) {
	h := newHarness([]Product{available("p1", "Satchel")}, nil)
	n := &fakeNotifier{}

	if err := h.toggle.Request(h.mustGet(t, "p1")); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	h.toggle.Confirm(context.Background(), n)
	if len(n.applied) != 1 {
		t.Fatalf("expected success before undo")
	}

	prev := n.applied[0].Previous
	h.toggle.Undo(context.Background(), "p1", "Satchel", prev, n)

	p := h.mustGet(t, "p1")
	if p.Sold() || p.SoldAt != nil {
		t.Fatalf("expected available with nil sold_at after undo, got %+v", p)
	}
	if len(n.undoApplied) != 1 || len(n.undoFailed) != 0 {
		t.Fatalf("expected undo success notification, got %+v", n)
	}

	last := h.updater.calls[len(h.updater.calls)-1]
	if last.sold || last.soldAt != nil {
		t.Fatalf("undo must persist the previous snapshot, got %+v", last)
	}
}

func TestPersistenceCarriesOwningSeller(t *testing.T) {
	h := newHarness([]Product{available("p1", "Satchel")}, nil)
	n := &fakeNotifier{}

	if err := h.toggle.Request(h.mustGet(t, "p1")); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	h.toggle.Confirm(context.Background(), n)

	// An undo for an arbitrary id still goes out under the session's
	// seller; a foreign product can only come back not-found.
	h.toggle.Undo(context.Background(), "someone-elses-product", "X", Snapshot{Sold: true}, n)

	calls := h.updater.calls
	if len(calls) != 2 {
		t.Fatalf("expected two persistence calls, got %d", len(calls))
	}
	for _, call := range calls {
		if call.sellerID != "seller-1" {
			t.Fatalf("persistence call for %q missing seller scope: %+v", call.id, call)
		}
	}
}

func TestUndoFailureIsReportedNotReverted(t *testing.T) {
	h := newHarness([]Product{{ID: "p1", Name: "A", Status: StatusSold}}, apperr.NotFoundErr("This product no longer exists."))
	n := &fakeNotifier{}

	h.toggle.Undo(context.Background(), "p1", "A", Snapshot{Sold: false}, n)

	if len(n.undoFailed) != 1 {
		t.Fatalf("expected undo failure notification, got %+v", n)
	}
	// The optimistic re-apply stands; there is no undo of an undo.
	p := h.mustGet(t, "p1")
	if p.Sold() {
		t.Fatalf("local undo apply should not be reverted on remote failure")
	}
}

func (h *toggleHarness) mustGet(t *testing.T, id string) Product {
	t.Helper()
	p, ok := h.coll.Get(id)
	if !ok {
		t.Fatalf("product %s not in collection", id)
	}
	return p
}
