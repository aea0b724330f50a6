package handlers

import (
	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Notes *services.NotificationService
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	notes, err := h.Notes.List(u.ID)
	if err != nil {
		return fail(c, "notifications.list.fail", err)
	}
	unread, _ := h.Notes.CountUnread(u.ID)
	return render(c, "notifications", fiber.Map{"Notifications": notes, "Unread": unread})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	u := currentUser(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Notes.MarkRead(u.ID, id); err != nil {
		applog.Security(c, "notifications.read.denied", map[string]any{"notification_id": id})
		return fail(c, "notifications.read.fail", err)
	}
	return c.Redirect("/notifications")
}
