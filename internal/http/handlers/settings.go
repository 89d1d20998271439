package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/http/flash"
	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/internal/http/render"
	"github.com/Mwvndva/byblos/internal/modules/sellers"
	"github.com/Mwvndva/byblos/internal/shared/apperr"
	"github.com/Mwvndva/byblos/pkg/view"
)

type SettingsHandler struct {
	svc   *sellers.Service
	Flash *flash.Codec
}

func NewSettingsHandler(svc *sellers.Service, f *flash.Codec) *SettingsHandler {
	return &SettingsHandler{svc: svc, Flash: f}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	ctxSeller, _ := middleware.CurrentSeller(c)

	seller, err := h.svc.Get(c.Request.Context(), ctxSeller.ID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	phone := ""
	if seller.Phone != nil {
		phone = *seller.Phone
	}
	render.Page(c, http.StatusOK, "settings.html", "Settings", gin.H{
		"DisplayName": seller.DisplayName,
		"Email":       seller.Email,
		"Phone":       phone,
	})
}

func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c)

	var phone *string
	if v := c.PostForm("phone"); v != "" {
		phone = &v
	}

	err := h.svc.UpdateProfile(c.Request.Context(), seller.ID,
		c.PostForm("email"), c.PostForm("display_name"), phone)
	if err != nil {
		render.RedirectWithFlash(c, h.Flash, "/dashboard/settings", view.FlashError, apperr.PublicMessage(err))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/dashboard/settings", view.FlashSuccess, "Profile updated.")
}

func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c)

	next := c.PostForm("new_password")
	if next != c.PostForm("new_password_confirm") {
		render.RedirectWithFlash(c, h.Flash, "/dashboard/settings", view.FlashError, "New passwords do not match.")
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), seller.ID, c.PostForm("current_password"), next)
	if err != nil {
		render.RedirectWithFlash(c, h.Flash, "/dashboard/settings", view.FlashError, apperr.PublicMessage(err))
		return
	}

	render.RedirectWithFlash(c, h.Flash, "/dashboard/settings", view.FlashSuccess, "Password changed.")
}
