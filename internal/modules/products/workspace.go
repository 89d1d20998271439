package products

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// CatalogSource is what a session workspace needs from the products service:
// a list to reconcile against and the status persistence endpoint.
type CatalogSource interface {
	StatusUpdater
	List(ctx context.Context, sellerID string) ([]Product, error)
}

// Workspace bundles the per-session pieces of the dashboard list view: the
// local collection, its deferred refresher, and the single status toggle the
// session may have in flight.
type Workspace struct {
	SellerID   string
	Collection *Collection
	Refresher  *Refresher
	Toggle     *Toggle
}

type Workspaces struct {
	source       CatalogSource
	logger       *slog.Logger
	refreshDelay time.Duration

	mu sync.RWMutex
	m  map[string]*Workspace
}

func NewWorkspaces(source CatalogSource, logger *slog.Logger, refreshDelay time.Duration) *Workspaces {
	return &Workspaces{
		source:       source,
		logger:       logger,
		refreshDelay: refreshDelay,
		m:            make(map[string]*Workspace),
	}
}

// For returns the workspace for a session, creating it on first use.
func (w *Workspaces) For(sessionID, sellerID string) *Workspace {
	w.mu.RLock()
	ws, ok := w.m[sessionID]
	w.mu.RUnlock()
	if ok && ws.SellerID == sellerID {
		return ws
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if cur, ok := w.m[sessionID]; ok {
		if cur.SellerID == sellerID {
			return cur
		}
		// Same session now belongs to a different seller; close the
		// displaced workspace so its armed refresh cannot fire.
		cur.Refresher.Close()
	}

	coll := NewCollection()
	ref := NewRefresher(w.refreshDelay,
		func(ctx context.Context) ([]Product, error) { return w.source.List(ctx, sellerID) },
		coll.ReplaceAll,
		w.logger,
	)
	ws = &Workspace{
		SellerID:   sellerID,
		Collection: coll,
		Refresher:  ref,
		Toggle: NewToggle(ToggleConfig{
			SellerID:        sellerID,
			Updater:         w.source,
			Patch:           coll.PatchStatus,
			ScheduleRefresh: ref.Schedule,
			Logger:          w.logger,
		}),
	}
	w.m[sessionID] = ws
	return ws
}

// Drop tears a workspace down (logout, session expiry). Cancels any pending
// refresh so it cannot fire after the hosting session is gone.
func (w *Workspaces) Drop(sessionID string) {
	w.mu.Lock()
	ws, ok := w.m[sessionID]
	delete(w.m, sessionID)
	w.mu.Unlock()
	if ok {
		ws.Refresher.Close()
	}
}
