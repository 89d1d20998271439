package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/http/flash"
	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/pkg/view"
)

func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	RedirectWith(c, codec, location, view.Flash{Kind: kind, Message: msg})
}

// RedirectWith is the full-control variant: callers that need a title or an
// action on the toast (the Undo offer) build the Flash themselves.
func RedirectWith(c *gin.Context, codec *flash.Codec, location string, f view.Flash) {
	middleware.SetFlashCookie(c, codec, f)
	c.Redirect(http.StatusFound, location)
}
