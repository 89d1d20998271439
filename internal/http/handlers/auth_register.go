package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/http/flash"
	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/internal/http/render"
	"github.com/Mwvndva/byblos/internal/http/validation"
	"github.com/Mwvndva/byblos/internal/modules/sellers"
	"github.com/Mwvndva/byblos/internal/shared/apperr"
	"github.com/Mwvndva/byblos/pkg/view"
)

type registerInput struct {
	DisplayName string `form:"display_name" binding:"required,max=120"`
	Email       string `form:"email" binding:"required,email"`
	Password    string `form:"password" binding:"required,min=8"`
}

type RegisterHandler struct {
	svc        *sellers.Service
	sessionCfg middleware.SessionCfg
	Flash      *flash.Codec
}

func NewRegisterHandler(svc *sellers.Service, sessionCfg middleware.SessionCfg, f *flash.Codec) *RegisterHandler {
	return &RegisterHandler{svc: svc, sessionCfg: sessionCfg, Flash: f}
}

func (h *RegisterHandler) Get(c *gin.Context) {
	render.Page(c, http.StatusOK, "register.html", "Create your shop", gin.H{
		"Form":   gin.H{"DisplayName": "", "Email": ""},
		"Errors": validation.FieldErrors{},
	})
}

func (h *RegisterHandler) Post(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "register.html", "Create your shop", gin.H{
			"Form":   gin.H{"DisplayName": in.DisplayName, "Email": in.Email},
			"Errors": validation.FromBindError(err, &in),
		})
		return
	}

	seller, err := h.svc.Register(c.Request.Context(), in.Email, in.Password, in.DisplayName)
	if err != nil {
		status := apperr.HTTPStatus(err)
		data := gin.H{
			"Form":      gin.H{"DisplayName": in.DisplayName, "Email": in.Email},
			"Errors":    validation.FieldErrors{},
			"PageError": apperr.PublicMessage(err),
		}
		if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
			data["Errors"] = validation.FieldErrors(ae.Fields)
		}
		render.Page(c, status, "register.html", "Create your shop", data)
		return
	}

	sess, err := middleware.CreateSession(h.sessionCfg, seller.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	setSessionCookie(c, h.sessionCfg, sess.ID)

	render.RedirectWithFlash(c, h.Flash, "/dashboard", view.FlashSuccess, "Welcome to Byblos! Your shop is ready.")
}

func setSessionCookie(c *gin.Context, cfg middleware.SessionCfg, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, sessionID, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
}
