package handlers

import (
	"strconv"

	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	cv, err := h.Cart.View(u.ID)
	if err != nil {
		return fail(c, "cart.view.fail", err)
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	u := currentUser(c)
	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(400).SendString("missing product_id")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(u.ID, productID, qty); err != nil {
		return fail(c, "cart.add.fail", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": productID, "qty": qty})
	return c.Redirect("/cart")
}

// SetQty updates a line quantity; 0 removes the line.
func (h *CartHandler) SetQty(c *fiber.Ctx) error {
	u := currentUser(c)
	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(400).SendString("missing product_id")
	}
	qty, err := strconv.Atoi(c.FormValue("qty"))
	if err != nil || qty < 0 || qty > 50 {
		return c.Status(400).SendString("invalid qty")
	}
	if err := h.Cart.SetQty(u.ID, productID, qty); err != nil {
		return fail(c, "cart.qty.fail", err)
	}
	return c.Redirect("/cart")
}

// Select flips a line's checkout-selection flag.
func (h *CartHandler) Select(c *fiber.Ctx) error {
	u := currentUser(c)
	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(400).SendString("missing product_id")
	}
	selected := c.FormValue("selected") == "1" || c.FormValue("selected") == "on"
	if err := h.Cart.SetSelected(u.ID, productID, selected); err != nil {
		return fail(c, "cart.select.fail", err)
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	u := currentUser(c)
	productID, ok := validate.ID(c.FormValue("product_id"))
	if !ok {
		return c.Status(400).SendString("missing product_id")
	}
	if err := h.Cart.Remove(u.ID, productID); err != nil {
		return fail(c, "cart.remove.fail", err)
	}
	return c.Redirect("/cart")
}
