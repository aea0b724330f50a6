package handlers

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SellerHandler struct {
	Catalog  *services.CatalogService
	Order    *services.OrderService
	MediaDir string
}

var allowedImageExt = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// Dashboard shows the seller's listings and the orders containing them.
func (h *SellerHandler) Dashboard(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Order.ListForSeller(u.ID)
	if err != nil {
		return fail(c, "seller.orders.fail", err)
	}
	products, err := h.Catalog.ListBySeller(u.ID)
	if err != nil {
		return fail(c, "seller.products.fail", err)
	}
	return render(c, "seller_dashboard", fiber.Map{"Orders": orders, "Products": products})
}

// AddProduct creates a listing from a multipart form with optional images.
func (h *SellerHandler) AddProduct(c *fiber.Ctx) error {
	u := currentUser(c)

	name, okName := validate.Name(c.FormValue("name"))
	price, okPrice := validate.Price(c.FormValue("price"))
	description := strings.TrimSpace(c.FormValue("description"))
	features := strings.TrimSpace(c.FormValue("features"))
	if !okName || !okPrice || description == "" || features == "" {
		applog.Security(c, "validation.fail", map[string]any{"field": "product_form"})
		return c.Status(400).SendString("all fields are required; price must be positive")
	}

	var paths []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		paths = h.saveImages(c, form.File["images"])
	}

	id, err := h.Catalog.AddProduct(u.ID, services.NewListing{
		Name:        name,
		Price:       price,
		Description: description,
		Features:    features,
		ImagePaths:  paths,
	})
	if err != nil {
		return fail(c, "seller.product.add.fail", err)
	}
	applog.Audit(c, "seller.product.add", map[string]any{"product_id": id})
	return c.Redirect("/seller")
}

// saveImages stores allowed uploads under MEDIA_DIR/products with
// unguessable names and returns their public /media paths. Bad files are
// skipped, not fatal.
func (h *SellerHandler) saveImages(c *fiber.Ctx, files []*multipart.FileHeader) []string {
	var out []string
	for _, f := range files {
		base := filepath.Base(f.Filename)
		ext := strings.ToLower(filepath.Ext(base))
		if !allowedImageExt[ext] {
			applog.Security(c, "upload.reject", map[string]any{"filename": base})
			continue
		}
		name := uuid.NewString() + ext
		dst := filepath.Join(h.MediaDir, "products", name)
		if err := c.SaveFile(f, dst); err != nil {
			applog.Error(c, "upload.save.fail", err, map[string]any{"filename": base})
			continue
		}
		out = append(out, "/media/products/"+name)
	}
	return out
}

// UpdateStatus progresses an order through the fulfillment lifecycle.
// Moving to delivery mints the buyer's verification code.
func (h *SellerHandler) UpdateStatus(c *fiber.Ctx) error {
	u := currentUser(c)
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing order id")
	}
	status, ok := validate.Status(c.FormValue("status"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "status"})
		return c.Status(400).SendString("invalid status")
	}

	code, err := h.Order.UpdateStatus(u.ID, oid, status)
	if err != nil {
		return fail(c, "seller.order.status.fail", err)
	}
	applog.Audit(c, "seller.order.status", map[string]any{
		"order_id": oid, "status": status, "code_minted": code != "",
	})
	return c.Redirect("/seller")
}
