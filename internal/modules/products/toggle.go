package products

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Mwvndva/byblos/internal/shared/apperr"
)

// Toggle drives a sold/available flip for a single product: confirm intent,
// patch the visible collection immediately, persist, and reconcile the
// outcome. One toggle may be pending per seller session; the phase guard
// rejects a second request while the first is unsettled.
//
// Idle -> Confirming -> Applying -> Idle, with a cancel edge back from
// Confirming. Applying always terminates: the persistence call runs under a
// bounded timeout and is never retried automatically.

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConfirming Phase = "confirming"
	PhaseApplying   Phase = "applying"
	PhaseSettled    Phase = "settled"
)

// Snapshot captures a product's status fields before any mutation. It is
// what rollback restores and what an Undo re-applies.
type Snapshot struct {
	Sold   bool
	SoldAt *time.Time
}

// StatusUpdater is the remote persistence collaborator. Every call carries
// the owning seller's ID so persistence can scope the write; a product id
// belonging to another seller must read as not-found.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, sellerID, id string, sold bool, soldAt *time.Time) error
}

// PatchFunc applies {status, sold_at} to one product in the caller's local
// collection. The toggle never owns the collection, only mutates through it.
type PatchFunc func(id string, sold bool, soldAt *time.Time) bool

// Notifier is the user-facing notification collaborator (toast/flash).
type Notifier interface {
	ToggleApplied(res ToggleResult)
	ToggleFailed(res ToggleResult, publicMsg string)
	UndoApplied(res ToggleResult)
	UndoFailed(res ToggleResult, publicMsg string)
}

type ToggleResult struct {
	ProductID   string
	ProductName string
	Sold        bool
	SoldAt      *time.Time
	Previous    Snapshot
}

// Pending describes the toggle awaiting confirmation or persistence.
type Pending struct {
	ProductID   string
	ProductName string
	WillBeSold  bool
	Previous    Snapshot
}

var ErrToggleBusy = apperr.ConflictErr("Another status update is still in progress.")

type ToggleConfig struct {
	SellerID        string
	Updater         StatusUpdater
	Patch           PatchFunc
	ScheduleRefresh func()
	Logger          *slog.Logger
	Now             func() time.Time
	PersistTimeout  time.Duration
}

type Toggle struct {
	sellerID string
	updater  StatusUpdater
	patch    PatchFunc
	schedule func()
	logger   *slog.Logger
	now      func() time.Time
	timeout  time.Duration

	mu    sync.Mutex
	phase Phase
	cur   Pending
}

func NewToggle(cfg ToggleConfig) *Toggle {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 5 * time.Second
	}
	if cfg.ScheduleRefresh == nil {
		cfg.ScheduleRefresh = func() {}
	}
	return &Toggle{
		sellerID: cfg.SellerID,
		updater:  cfg.Updater,
		patch:    cfg.Patch,
		schedule: cfg.ScheduleRefresh,
		logger:   cfg.Logger,
		now:      cfg.Now,
		timeout:  cfg.PersistTimeout,
		phase:    PhaseIdle,
	}
}

func (t *Toggle) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Pending returns the toggle awaiting confirmation, if any.
func (t *Toggle) Pending() (Pending, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != PhaseConfirming {
		return Pending{}, false
	}
	return t.cur, true
}

// Request captures the previous state and moves Idle -> Confirming. No
// remote call is made. A request while another toggle is unsettled returns
// ErrToggleBusy and leaves the active one untouched.
func (t *Toggle) Request(p Product) error {
	if p.ID == "" {
		return apperr.InvalidErr("No product selected.", nil)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase == PhaseConfirming || t.phase == PhaseApplying {
		return ErrToggleBusy
	}
	t.cur = Pending{
		ProductID:   p.ID,
		ProductName: p.Name,
		WillBeSold:  !p.Sold(),
		Previous:    Snapshot{Sold: p.Sold(), SoldAt: p.SoldAt},
	}
	t.phase = PhaseConfirming
	return nil
}

// Cancel abandons a toggle in Confirming with no side effects. Idempotent;
// a no-op in any other phase.
func (t *Toggle) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != PhaseConfirming {
		return
	}
	t.phase = PhaseIdle
	t.cur = Pending{}
}

// Confirm runs the toggle to completion: optimistic patch, deferred refresh,
// persistence under timeout, then notification or rollback. The optimistic
// patch is observable before the persistence call is issued. Confirm outside
// Confirming is a guarded no-op, so a double-submit cannot re-apply.
func (t *Toggle) Confirm(ctx context.Context, n Notifier) {
	t.mu.Lock()
	if t.phase != PhaseConfirming {
		t.mu.Unlock()
		return
	}
	t.phase = PhaseApplying
	cur := t.cur
	t.mu.Unlock()

	if cur.ProductID == "" {
		// Cannot happen through Request; abort without a remote call.
		if t.logger != nil {
			t.logger.Error("status toggle confirmed without a pending request")
		}
		t.settle()
		return
	}

	var soldAt *time.Time
	if cur.WillBeSold {
		ts := t.now()
		soldAt = &ts
	}

	t.patch(cur.ProductID, cur.WillBeSold, soldAt)
	t.schedule()

	cctx, cancel := context.WithTimeout(ctx, t.timeout)
	err := t.updater.UpdateStatus(cctx, t.sellerID, cur.ProductID, cur.WillBeSold, soldAt)
	cancel()

	res := ToggleResult{
		ProductID:   cur.ProductID,
		ProductName: cur.ProductName,
		Sold:        cur.WillBeSold,
		SoldAt:      soldAt,
		Previous:    cur.Previous,
	}

	if err != nil {
		t.patch(cur.ProductID, cur.Previous.Sold, cur.Previous.SoldAt)
		if t.logger != nil {
			t.logger.Warn("status toggle persistence failed, rolled back",
				"product_id", cur.ProductID, "err", err)
		}
		n.ToggleFailed(res, apperr.PublicMessage(err))
	} else {
		n.ToggleApplied(res)
	}
	t.settle()
}

// Undo re-applies a settled toggle's previous snapshot, locally and
// remotely. Last-write-wins; an undo failure is reported but the undo is
// not itself reverted. Undo does not participate in the phase guard because
// no transient toggle state survives settle; the snapshot arrives with the
// request.
func (t *Toggle) Undo(ctx context.Context, productID, productName string, prev Snapshot, n Notifier) {
	res := ToggleResult{
		ProductID:   productID,
		ProductName: productName,
		Sold:        prev.Sold,
		SoldAt:      prev.SoldAt,
	}
	if productID == "" {
		n.UndoFailed(res, "Nothing to undo.")
		return
	}

	t.patch(productID, prev.Sold, prev.SoldAt)
	t.schedule()

	cctx, cancel := context.WithTimeout(ctx, t.timeout)
	err := t.updater.UpdateStatus(cctx, t.sellerID, productID, prev.Sold, prev.SoldAt)
	cancel()

	if err != nil {
		if t.logger != nil {
			t.logger.Warn("status toggle undo failed", "product_id", productID, "err", err)
		}
		n.UndoFailed(res, apperr.PublicMessage(err))
		return
	}
	n.UndoApplied(res)
}

// settle clears all transient toggle state; no productID or snapshot
// survives past this point. Settled collapses straight into Idle since
// nothing blocks between them.
func (t *Toggle) settle() {
	t.mu.Lock()
	t.cur = Pending{}
	t.phase = PhaseIdle
	t.mu.Unlock()
}
