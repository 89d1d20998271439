package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/http/flash"
	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/internal/http/render"
	"github.com/Mwvndva/byblos/internal/modules/products"
	"github.com/Mwvndva/byblos/internal/shared/apperr"
	"github.com/Mwvndva/byblos/pkg/view"
)

// StatusHandler drives the optimistic sold/available toggle: request ->
// confirmation page -> confirm/cancel, plus the Undo action the success
// toast offers. The state machine itself lives in products.Toggle; this
// handler is its routing and notification glue.
type StatusHandler struct {
	svc        *products.Service
	workspaces *products.Workspaces
	Flash      *flash.Codec
}

func NewStatusHandler(svc *products.Service, workspaces *products.Workspaces, f *flash.Codec) *StatusHandler {
	return &StatusHandler{svc: svc, workspaces: workspaces, Flash: f}
}

func (h *StatusHandler) workspace(c *gin.Context) *products.Workspace {
	seller, _ := middleware.CurrentSeller(c)
	return h.workspaces.For(middleware.SessionID(c), seller.ID)
}

// Request starts a toggle for one product and redirects to the confirmation
// prompt. Nothing is persisted yet.
func (h *StatusHandler) Request(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c)
	ws := h.workspace(c)

	p, ok := ws.Collection.Get(c.Param("id"))
	if !ok {
		// Stale dashboard tab; fall back to the database.
		var err error
		p, err = h.svc.Get(c.Request.Context(), seller.ID, c.Param("id"))
		if err != nil {
			render.RedirectWithFlash(c, h.Flash, "/dashboard", view.FlashError, apperr.PublicMessage(err))
			return
		}
	}

	if err := ws.Toggle.Request(p); err != nil {
		render.RedirectWithFlash(c, h.Flash, "/dashboard", view.FlashError, apperr.PublicMessage(err))
		return
	}
	c.Redirect(http.StatusFound, "/dashboard/status/confirm")
}

// ConfirmPage renders the pending prompt, or bounces home when nothing is
// pending (e.g. after a back-button revisit).
func (h *StatusHandler) ConfirmPage(c *gin.Context) {
	pending, ok := h.workspace(c).Toggle.Pending()
	if !ok {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}

	prompt := "make it available again"
	if pending.WillBeSold {
		prompt = "mark it as sold"
	}
	render.Page(c, http.StatusOK, "status_confirm.html", "Confirm status change", view.StatusConfirm{
		ProductID:   pending.ProductID,
		ProductName: pending.ProductName,
		WillBeSold:  pending.WillBeSold,
		Prompt:      prompt,
	})
}

// Confirm runs the toggle to completion. The outcome notification (success
// with Undo, or failure) is written by the flash notifier during the run.
func (h *StatusHandler) Confirm(c *gin.Context) {
	h.workspace(c).Toggle.Confirm(c.Request.Context(), flashNotifier{c: c, codec: h.Flash})
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *StatusHandler) Cancel(c *gin.Context) {
	h.workspace(c).Toggle.Cancel()
	c.Redirect(http.StatusFound, "/dashboard")
}

// Undo re-applies the snapshot carried in the (HMAC-signed) flash action
// URL. Last-write-wins; there is no undo of an undo.
func (h *StatusHandler) Undo(c *gin.Context) {
	prev := products.Snapshot{Sold: c.Query("sold") == "1"}
	if v := c.Query("sold_at"); v != "" {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			prev.SoldAt = &ts
		}
	}

	h.workspace(c).Toggle.Undo(c.Request.Context(), c.Param("id"), c.Query("name"), prev,
		flashNotifier{c: c, codec: h.Flash})
	c.Redirect(http.StatusFound, "/dashboard")
}

// flashNotifier adapts toggle outcomes onto the one-shot flash toast.
type flashNotifier struct {
	c     *gin.Context
	codec *flash.Codec
}

func (n flashNotifier) ToggleApplied(res products.ToggleResult) {
	middleware.SetFlashCookie(n.c, n.codec, view.Flash{
		Kind:    view.FlashSuccess,
		Title:   "Status updated",
		Message: statusMessage(res.ProductName, res.Sold),
		Action: &view.FlashAction{
			Label:  "Undo",
			URL:    undoURL(res),
			Method: "POST",
		},
	})
}

func (n flashNotifier) ToggleFailed(res products.ToggleResult, publicMsg string) {
	middleware.SetFlashCookie(n.c, n.codec, view.Flash{
		Kind:    view.FlashError,
		Title:   "Update failed",
		Message: fmt.Sprintf("%q was not changed: %s", res.ProductName, publicMsg),
	})
}

func (n flashNotifier) UndoApplied(res products.ToggleResult) {
	middleware.SetFlashCookie(n.c, n.codec, view.Flash{
		Kind:    view.FlashSuccess,
		Title:   "Change undone",
		Message: statusMessage(res.ProductName, res.Sold),
	})
}

func (n flashNotifier) UndoFailed(res products.ToggleResult, publicMsg string) {
	middleware.SetFlashCookie(n.c, n.codec, view.Flash{
		Kind:    view.FlashError,
		Title:   "Undo failed",
		Message: publicMsg,
	})
}

func statusMessage(name string, sold bool) string {
	if sold {
		return fmt.Sprintf("%q is now marked as sold.", name)
	}
	return fmt.Sprintf("%q is available again.", name)
}

func undoURL(res products.ToggleResult) string {
	q := url.Values{}
	q.Set("name", res.ProductName)
	if res.Previous.Sold {
		q.Set("sold", "1")
	} else {
		q.Set("sold", "0")
	}
	if res.Previous.SoldAt != nil {
		q.Set("sold_at", res.Previous.SoldAt.UTC().Format(time.RFC3339Nano))
	}
	return "/dashboard/products/" + res.ProductID + "/status/undo?" + q.Encode()
}
