package handlers

import (
	"time"

	"bazaar/internal/domain"
	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, okEmail := validate.Email(c.FormValue("email"))
	if !okEmail || c.FormValue("password") == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}

	u, err := h.Auth.Login(sid, email, c.FormValue("password"))
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	if u.Role == domain.RoleSeller {
		return c.Redirect("/seller")
	}
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)

	email, okEmail := validate.Email(c.FormValue("email"))
	name, okName := validate.Name(c.FormValue("name"))
	address, okAddr := validate.Address(c.FormValue("address"))
	pass := c.FormValue("password")
	if !okEmail || !okName || !okAddr || !validate.Password(pass) {
		applog.Security(c, "auth.register.fail", map[string]any{"reason": "bad_format"})
		return c.Status(400).Render("register", fiber.Map{
			"Err": "Check your details: valid email, name, address, and a password with upper, lower and digit (8+ chars).",
		})
	}
	if pass != c.FormValue("password_confirm") {
		return c.Status(400).Render("register", fiber.Map{"Err": "Passwords do not match"})
	}

	u, err := h.Auth.Register(sid, services.Registration{
		Email:    email,
		Password: pass,
		Name:     name,
		Address:  address,
		Role:     c.FormValue("role"),
	})
	if err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"email": email})
		return c.Status(409).Render("register", fiber.Map{"Err": "An account with this email already exists"})
	}

	applog.Audit(c, "auth.register.success", map[string]any{"email": email, "role": u.Role})
	if u.Role == domain.RoleSeller {
		return c.Redirect("/seller")
	}
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}

func (h *AuthHandler) ForgotForm(c *fiber.Ctx) error {
	return render(c, "forgot_password", fiber.Map{})
}

func (h *AuthHandler) Forgot(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(400).Render("forgot_password", fiber.Map{"Err": "Enter a valid email"})
	}
	if err := h.Auth.ForgotPassword(email); err != nil {
		return fail(c, "auth.forgot.fail", err)
	}
	applog.Audit(c, "auth.forgot", map[string]any{"email": email})
	// Same response whether or not the account exists.
	return render(c, "forgot_password", fiber.Map{"Sent": true})
}

func (h *AuthHandler) ResetForm(c *fiber.Ctx) error {
	return render(c, "reset_password", fiber.Map{"Token": c.Query("token")})
}

func (h *AuthHandler) Reset(c *fiber.Ctx) error {
	token := c.FormValue("token")
	pass := c.FormValue("password")
	if token == "" || !validate.Password(pass) {
		return c.Status(400).Render("reset_password", fiber.Map{
			"Token": token, "Err": "Choose a password with upper, lower and digit (8+ chars)",
		})
	}
	if pass != c.FormValue("password_confirm") {
		return c.Status(400).Render("reset_password", fiber.Map{"Token": token, "Err": "Passwords do not match"})
	}
	if err := h.Auth.ResetPassword(token, pass); err != nil {
		applog.Security(c, "auth.reset.fail", nil)
		return c.Status(409).Render("reset_password", fiber.Map{"Err": "This reset link is invalid or has expired"})
	}
	applog.Audit(c, "auth.reset.success", nil)
	return c.Redirect("/login")
}
