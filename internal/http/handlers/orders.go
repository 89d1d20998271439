package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/internal/http/render"
	"github.com/Mwvndva/byblos/internal/modules/orders"
	"github.com/Mwvndva/byblos/internal/shared/apperr"
	"github.com/Mwvndva/byblos/pkg/view"
)

type OrdersHandler struct {
	repo *orders.Repo
}

func NewOrdersHandler(repo *orders.Repo) *OrdersHandler {
	return &OrdersHandler{repo: repo}
}

func (h *OrdersHandler) List(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c)

	page := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	res, err := h.repo.ListBySeller(c.Request.Context(), orders.ListBySellerParams{
		SellerID: seller.ID,
		Page:     page,
		PageSize: 20,
		Status:   c.Query("status"),
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	rows := make([]view.OrderRow, 0, len(res.Items))
	for _, o := range res.Items {
		rows = append(rows, view.OrderRow{
			ID:        o.ID,
			Buyer:     o.BuyerName,
			Status:    o.Status,
			ItemCount: len(o.ItemList()),
			Total:     view.MoneyFromCents(o.TotalCents, o.Currency),
			CreatedAt: o.CreatedAt.Format("02 Jan 2006"),
		})
	}

	render.Page(c, http.StatusOK, "orders.html", "Orders", gin.H{
		"Orders":   rows,
		"Total":    res.Total,
		"Page":     page,
		"PrevPage": page - 1,
		"NextPage": page + 1,
		"HasNext":  int64(page*20) < res.Total,
		"Status":   c.Query("status"),
	})
}

func (h *OrdersHandler) Show(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c)

	o, err := h.repo.Get(c.Request.Context(), seller.ID, c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
		return
	}

	items := o.ItemList()
	rows := make([]view.OrderItemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, view.OrderItemRow{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			LineTotal:   view.MoneyFromCents(it.UnitPriceCents*int64(it.Quantity), o.Currency),
		})
	}

	render.Page(c, http.StatusOK, "order_detail.html", "Order details", gin.H{
		"ID":         o.ID,
		"Buyer":      o.BuyerName,
		"BuyerEmail": o.BuyerEmail,
		"Status":     o.Status,
		"Total":      view.MoneyFromCents(o.TotalCents, o.Currency),
		"CreatedAt":  o.CreatedAt.Format("02 Jan 2006 15:04"),
		"Items":      rows,
	})
}
