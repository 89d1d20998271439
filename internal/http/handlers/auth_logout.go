package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/http/flash"
	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/internal/http/render"
	"github.com/Mwvndva/byblos/internal/modules/products"
	"github.com/Mwvndva/byblos/pkg/view"
)

type LogoutHandler struct {
	sessionCfg middleware.SessionCfg
	workspaces *products.Workspaces
	Flash      *flash.Codec
}

func NewLogoutHandler(sessionCfg middleware.SessionCfg, workspaces *products.Workspaces, f *flash.Codec) *LogoutHandler {
	return &LogoutHandler{sessionCfg: sessionCfg, workspaces: workspaces, Flash: f}
}

func (h *LogoutHandler) Post(c *gin.Context) {
	if sid := middleware.SessionID(c); sid != "" {
		// Tear the dashboard workspace down with the session so its
		// deferred refresh cannot fire afterwards.
		h.workspaces.Drop(sid)
		_ = middleware.DeleteSession(h.sessionCfg, sid)
	}
	c.SetCookie(h.sessionCfg.CookieName, "", -1, "/", "", h.sessionCfg.Secure, true)

	render.RedirectWithFlash(c, h.Flash, "/login", view.FlashInfo, "Signed out.")
}
