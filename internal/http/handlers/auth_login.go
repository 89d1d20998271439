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

type loginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type LoginHandler struct {
	svc        *sellers.Service
	sessionCfg middleware.SessionCfg
	Flash      *flash.Codec
}

func NewLoginHandler(svc *sellers.Service, sessionCfg middleware.SessionCfg, f *flash.Codec) *LoginHandler {
	return &LoginHandler{svc: svc, sessionCfg: sessionCfg, Flash: f}
}

func (h *LoginHandler) Get(c *gin.Context) {
	render.Page(c, http.StatusOK, "login.html", "Sign in", gin.H{
		"ReturnTo": normalizeReturnTo(c.Query("return_to")),
		"Form":     gin.H{"Email": ""},
		"Errors":   validation.FieldErrors{},
	})
}

func (h *LoginHandler) Post(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "login.html", "Sign in", gin.H{
			"ReturnTo": returnTo,
			"Form":     gin.H{"Email": in.Email},
			"Errors":   validation.FromBindError(err, &in),
		})
		return
	}

	seller, err := h.svc.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		// Credentials failure is page-level, not per-field.
		render.Page(c, apperr.HTTPStatus(err), "login.html", "Sign in", gin.H{
			"ReturnTo":  returnTo,
			"Form":      gin.H{"Email": in.Email},
			"Errors":    validation.FieldErrors{},
			"PageError": apperr.PublicMessage(err),
		})
		return
	}

	sess, err := middleware.CreateSession(h.sessionCfg, seller.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	setSessionCookie(c, h.sessionCfg, sess.ID)

	dest := "/dashboard"
	if returnTo != "" {
		dest = returnTo
	}
	render.RedirectWithFlash(c, h.Flash, dest, view.FlashSuccess, "Signed in.")
}
