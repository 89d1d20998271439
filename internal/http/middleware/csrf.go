package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/shared/apperr"
)

const (
	CSRFCookieName = "byblos_csrf"
	CSRFFormField  = "csrf_token"
	CSRFHeader     = "X-CSRF-Token"
	CtxKeyCSRF     = "csrf_token"
)

// CSRF implements the double-submit cookie pattern: the token lives in a
// cookie and must be echoed back in every mutating form post.
func CSRF(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFCookieName)
		if err != nil || token == "" {
			token = newCSRFToken()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookieName, token, 12*60*60, "/", "", secure, true)
		}
		c.Set(CtxKeyCSRF, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sent := c.PostForm(CSRFFormField)
		if sent == "" {
			sent = c.GetHeader(CSRFHeader)
		}
		if subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			Fail(c, apperr.ForbiddenErr("The form has expired. Please try again."))
			return
		}
		c.Next()
	}
}

func GetCSRFToken(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyCSRF); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func newCSRFToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "csrf_fallback"
	}
	return hex.EncodeToString(b)
}
