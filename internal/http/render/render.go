package render

import (
	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/pkg/view"
)

// PageData is the envelope every template receives.
type PageData struct {
	Title       string
	Flash       *view.Flash
	CSRFToken   string
	SellerName  string
	SellerEmail string
	Data        any
}

// Page renders an HTML template wrapped in the standard page envelope.
func Page(c *gin.Context, status int, template, title string, data any) {
	seller, _ := middleware.CurrentSeller(c)
	c.HTML(status, template, PageData{
		Title:       title,
		Flash:       middleware.GetFlash(c),
		CSRFToken:   middleware.GetCSRFToken(c),
		SellerName:  seller.DisplayName,
		SellerEmail: seller.Email,
		Data:        data,
	})
}
