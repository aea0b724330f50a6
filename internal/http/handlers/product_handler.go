package handlers

import (
	"strings"

	applog "bazaar/internal/log"
	"bazaar/internal/repos"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Cart    *services.CartService
	Reviews *services.ReviewService
}

// Home renders the storefront: all products, optionally narrowed by a search
// query and reordered by a sort key.
func (h *ProductHandler) Home(c *fiber.Ctx) error {
	rawQ := strings.TrimSpace(c.Query("search"))
	q := ""
	if rawQ != "" {
		var ok bool
		if q, ok = validate.Q(rawQ); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "search", "value": rawQ})
			return c.Status(fiber.StatusBadRequest).Render("index", fiber.Map{
				"Products": []any{}, "Err": "Enter a valid keyword (letters/numbers only)",
			})
		}
	}
	sort := c.Query("sort")
	switch sort {
	case repos.SortPriceAsc, repos.SortPriceDesc:
	default:
		sort = repos.SortNewest
	}

	products, err := h.Catalog.List(q, sort)
	if err != nil {
		return fail(c, "catalog.list.fail", err)
	}

	cartCount := 0
	if u := currentUser(c); u != nil {
		cartCount, _ = h.Cart.Count(u.ID)
	}
	return render(c, "index", fiber.Map{
		"Products": products, "Search": q, "Sort": sort, "CartCount": cartCount,
	})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	d, err := h.Catalog.Get(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}

	cartCount := 0
	if u := currentUser(c); u != nil {
		cartCount, _ = h.Cart.Count(u.ID)
	}
	return render(c, "product", fiber.Map{
		"P": d.Product, "Features": d.Features, "Images": d.Images,
		"Reviews": d.Reviews, "CartCount": cartCount,
	})
}

// AddReview handles POST /product/:id/review for logged-in customers.
func (h *ProductHandler) AddReview(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	rating, ok := validate.Rating(c.FormValue("rating"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "rating"})
		return c.Status(400).SendString("rating must be 1-5")
	}
	comment := strings.TrimSpace(c.FormValue("comment"))

	if err := h.Reviews.Add(u.ID, id, rating, comment); err != nil {
		return fail(c, "review.add.fail", err)
	}
	applog.Audit(c, "review.add", map[string]any{"product_id": id, "rating": rating})
	return c.Redirect("/product/" + id)
}
