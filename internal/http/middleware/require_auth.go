package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// RequireAuth redirects anonymous requests to the login page, preserving the
// original destination in return_to.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSeller(c); !ok {
			dest := "/login"
			if p := c.Request.URL.Path; p != "" && p != "/login" {
				dest += "?return_to=" + url.QueryEscape(p)
			}
			c.Redirect(http.StatusFound, dest)
			c.Abort()
			return
		}
		c.Next()
	}
}
