package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/internal/http/render"
	"github.com/Mwvndva/byblos/internal/modules/products"
)

// DashboardHandler renders the seller's product list. The list view reads
// from the session collection, which the status toggle patches
// optimistically; a full reload happens on first visit or on demand.
type DashboardHandler struct {
	svc        *products.Service
	workspaces *products.Workspaces
}

func NewDashboardHandler(svc *products.Service, workspaces *products.Workspaces) *DashboardHandler {
	return &DashboardHandler{svc: svc, workspaces: workspaces}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c) // RequireAuth guarantees this
	ws := h.workspaces.For(middleware.SessionID(c), seller.ID)

	if ws.Collection.Len() == 0 || c.Query("refresh") != "" {
		items, err := h.svc.List(c.Request.Context(), seller.ID)
		if err != nil {
			middleware.Fail(c, err)
			return
		}
		ws.Collection.ReplaceAll(items)
	}

	items := ws.Collection.Snapshot()
	sold := 0
	for _, p := range items {
		if p.Sold() {
			sold++
		}
	}

	render.Page(c, http.StatusOK, "dashboard.html", "Your shop", gin.H{
		"Products":       mapProductRows(items),
		"TotalCount":     len(items),
		"SoldCount":      sold,
		"AvailableCount": len(items) - sold,
	})
}
