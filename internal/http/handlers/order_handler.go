package handlers

import (
	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
	Cart  *services.CartService
}

// Checkout converts the selected cart rows into an order.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	u := currentUser(c)
	o, err := h.Order.Checkout(u.ID)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"error": err.Error()})
		return fail(c, "order.place.fail", err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": o.ID, "order_number": o.OrderNumber, "total": o.TotalPrice,
	})
	return c.Redirect("/order/" + o.ID)
}

func (h *OrderHandler) History(c *fiber.Ctx) error {
	u := currentUser(c)
	orders, err := h.Order.ListForBuyer(u.ID)
	if err != nil {
		return fail(c, "orders.history.fail", err)
	}
	return render(c, "orders", fiber.Map{"Orders": orders})
}

func (h *OrderHandler) View(c *fiber.Ctx) error {
	u := currentUser(c)
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	o, items, err := h.Order.Get(u.ID, u.Role, oid)
	if err != nil {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	return render(c, "order", fiber.Map{"Order": o, "Items": items})
}

// Verify finalizes delivery with the buyer's 6-digit code.
func (h *OrderHandler) Verify(c *fiber.Ctx) error {
	u := currentUser(c)
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Order not found"})
	}
	code := c.FormValue("code")

	if err := h.Order.VerifyDelivery(u.ID, oid, code); err != nil {
		applog.Security(c, "order.verify.fail", map[string]any{"order_id": oid})
		return fail(c, "order.verify.fail", err)
	}
	applog.Audit(c, "order.verify.success", map[string]any{"order_id": oid})
	return c.Redirect("/order/" + oid)
}
