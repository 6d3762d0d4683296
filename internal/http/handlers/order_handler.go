package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopmart/internal/domain"
	applog "shopmart/internal/log"
	"shopmart/internal/repos"
	"shopmart/internal/services"
	"shopmart/internal/validate"
)

type OrderHandler struct {
	Orders *repos.OrderRepo
	Auth   *services.AuthService
}

// History lists the current user's orders, most recent first.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please log in"})
	}
	orders, err := h.Orders.FindByUser(u.ID)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// View returns one order. Only its owner or an admin may see it.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid order id"})
	}
	order, err := h.Orders.Get(id)
	if err != nil {
		return fail(c, err)
	}

	u, _ := c.Locals("user").(*domain.User)
	if u == nil || (u.ID != order.UserID && u.Role != "ADMIN") {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": id})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.JSON(order)
}
