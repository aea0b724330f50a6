package handlers

import (
	"errors"

	"bazaar/internal/domain"
	applog "bazaar/internal/log"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		data["CSRFToken"] = cookTok
	}
	return c.Render(tmpl, data)
}

// fail recovers service errors at the request boundary and shows a page
// with a human-readable message; nothing here is fatal.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrBadCreds):
		return c.Redirect("/login")
	case errors.Is(err, domain.ErrForbidden):
		applog.Security(c, action, map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Not found"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).Render("notfound", fiber.Map{"Message": err.Error()})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptySelection),
		errors.Is(err, domain.ErrVerificationFailed):
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": err.Error()})
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
		"Message": "Something went wrong. Please try again.",
	})
}
