package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopmart/internal/log"
	"shopmart/internal/services"
	"shopmart/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)

	username, ok := validate.Username(c.FormValue("username"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "username"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid username"})
	}
	password := c.FormValue("password")

	u, err := h.Auth.Login(sid, username, password)
	if err != nil {
		applog.Security(c, "login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}
	applog.Audit(c, "login.ok", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"userId": u.ID, "username": u.Username, "role": u.Role})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	username, ok := validate.Username(c.FormValue("username"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid username"})
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid email"})
	}
	password := c.FormValue("password")
	if !validate.Password(password) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "password must be 8-64 chars with upper, lower and digit",
		})
	}

	u, err := h.Auth.Register(username, email, password)
	if err != nil {
		// duplicate username/email lands here too; keep the message generic
		applog.Security(c, "register.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "could not register"})
	}
	applog.Audit(c, "register.ok", map[string]any{"user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"userId": u.ID, "username": u.Username})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			return fail(c, err)
		}
	}
	applog.Audit(c, "logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}
