package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mwvndva/byblos/internal/http/flash"
	"github.com/Mwvndva/byblos/internal/http/middleware"
	"github.com/Mwvndva/byblos/internal/http/render"
	"github.com/Mwvndva/byblos/internal/modules/products"
	"github.com/Mwvndva/byblos/internal/shared/apperr"
	"github.com/Mwvndva/byblos/internal/storage"
	"github.com/Mwvndva/byblos/pkg/view"
)

type ProductsHandler struct {
	svc        *products.Service
	store      storage.Storage
	workspaces *products.Workspaces
	Flash      *flash.Codec
}

func NewProductsHandler(svc *products.Service, store storage.Storage, workspaces *products.Workspaces, f *flash.Codec) *ProductsHandler {
	return &ProductsHandler{svc: svc, store: store, workspaces: workspaces, Flash: f}
}

// New renders the empty product form.
func (h *ProductsHandler) New(c *gin.Context) {
	render.Page(c, http.StatusOK, "product_form.html", "New product", gin.H{
		"Form":   view.ProductForm{Currency: "KES"},
		"Errors": map[string]string{},
		"IsNew":  true,
	})
}

func (h *ProductsHandler) Create(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c)

	form, fieldErrs := h.bindProductForm(c)
	if len(fieldErrs) > 0 {
		render.Page(c, http.StatusBadRequest, "product_form.html", "New product", gin.H{
			"Form":   form,
			"Errors": fieldErrs,
			"IsNew":  true,
		})
		return
	}

	cents, _ := parsePriceCents(form.Price)
	p, err := h.svc.Create(c.Request.Context(), seller.ID, products.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		PriceCents:  cents,
		Currency:    form.Currency,
	})
	if err != nil {
		h.renderFormError(c, "New product", form, true, err)
		return
	}

	if err := h.attachImage(c, seller.ID, p.ID); err != nil {
		// Product exists; the image is the only casualty.
		render.RedirectWithFlash(c, h.Flash, "/dashboard/products/"+p.ID+"/edit",
			view.FlashWarning, "Product created, but the image upload failed.")
		return
	}

	h.reloadCollection(c, seller.ID)
	render.RedirectWithFlash(c, h.Flash, "/dashboard", view.FlashSuccess, `"`+p.Name+`" has been listed.`)
}

func (h *ProductsHandler) Edit(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c)

	p, err := h.svc.Get(c.Request.Context(), seller.ID, c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	render.Page(c, http.StatusOK, "product_form.html", "Edit product", gin.H{
		"Form": view.ProductForm{
			Name:        p.Name,
			Description: p.Description,
			Price:       formatPriceMajor(p.PriceCents),
			Currency:    p.Currency,
			ImageURL:    p.ImageURL,
		},
		"Errors":    map[string]string{},
		"IsNew":     false,
		"ProductID": p.ID,
	})
}

func (h *ProductsHandler) Update(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c)
	id := c.Param("id")

	form, fieldErrs := h.bindProductForm(c)
	if len(fieldErrs) > 0 {
		render.Page(c, http.StatusBadRequest, "product_form.html", "Edit product", gin.H{
			"Form":      form,
			"Errors":    fieldErrs,
			"IsNew":     false,
			"ProductID": id,
		})
		return
	}

	cents, _ := parsePriceCents(form.Price)
	err := h.svc.Update(c.Request.Context(), seller.ID, id, products.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		PriceCents:  cents,
		Currency:    form.Currency,
	})
	if err != nil {
		h.renderFormError(c, "Edit product", form, false, err)
		return
	}

	if err := h.attachImage(c, seller.ID, id); err != nil {
		render.RedirectWithFlash(c, h.Flash, "/dashboard/products/"+id+"/edit",
			view.FlashWarning, "Changes saved, but the image upload failed.")
		return
	}

	h.reloadCollection(c, seller.ID)
	render.RedirectWithFlash(c, h.Flash, "/dashboard", view.FlashSuccess, "Changes saved.")
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	seller, _ := middleware.CurrentSeller(c)

	p, err := h.svc.Get(c.Request.Context(), seller.ID, c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), seller.ID, p.ID); err != nil {
		middleware.Fail(c, err)
		return
	}
	if p.ImageKey != "" {
		// Best effort; an orphaned file is not worth failing the delete.
		_ = h.store.Delete(c.Request.Context(), p.ImageKey)
	}

	h.reloadCollection(c, seller.ID)
	render.RedirectWithFlash(c, h.Flash, "/dashboard", view.FlashSuccess, "Product deleted.")
}

func (h *ProductsHandler) bindProductForm(c *gin.Context) (view.ProductForm, map[string]string) {
	form := view.ProductForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       c.PostForm("price"),
		Currency:    c.PostForm("currency"),
	}

	errs := map[string]string{}
	if form.Name == "" {
		errs["name"] = "Name is required."
	}
	if _, ok := parsePriceCents(form.Price); !ok {
		errs["price"] = "Enter a valid price."
	}
	return form, errs
}

func (h *ProductsHandler) renderFormError(c *gin.Context, title string, form view.ProductForm, isNew bool, err error) {
	data := gin.H{
		"Form":      form,
		"Errors":    map[string]string{},
		"IsNew":     isNew,
		"PageError": apperr.PublicMessage(err),
	}
	if !isNew {
		data["ProductID"] = c.Param("id")
	}
	if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
		data["Errors"] = ae.Fields
	}
	render.Page(c, apperr.HTTPStatus(err), "product_form.html", title, data)
}

// attachImage stores an uploaded image, if the form carried one.
func (h *ProductsHandler) attachImage(c *gin.Context, sellerID, productID string) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil // no file posted
	}
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	res, err := h.store.Put(c.Request.Context(), src, storage.PutInput{
		SellerID:    sellerID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		return err
	}
	return h.svc.SetImage(c.Request.Context(), sellerID, productID, res.Key, res.URL)
}

func (h *ProductsHandler) reloadCollection(c *gin.Context, sellerID string) {
	ws := h.workspaces.For(middleware.SessionID(c), sellerID)
	items, err := h.svc.List(c.Request.Context(), sellerID)
	if err != nil {
		return // next dashboard visit reloads
	}
	ws.Collection.ReplaceAll(items)
}
