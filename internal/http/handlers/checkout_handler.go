package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopmart/internal/domain"
	applog "shopmart/internal/log"
	"shopmart/internal/repos"
	"shopmart/internal/services"
)

type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
	Orders   *repos.OrderRepo
}

// Summary shows the cart one last time before confirmation.
func (h *CheckoutHandler) Summary(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)
	return c.JSON(cv)
}

// Confirm places the order for the logged-in shopper.
func (h *CheckoutHandler) Confirm(c *fiber.Ctx) error {
	sid := ensureSID(c)
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "please log in to check out"})
	}

	order, err := h.Checkout.Confirm(sid, u)
	if err != nil {
		applog.Security(c, "checkout.fail", map[string]any{"sid": sid, "error": err.Error()})
		return fail(c, err)
	}

	applog.Audit(c, "checkout.confirm", map[string]any{
		"order_id": order.ID,
		"user_id":  u.ID,
		"total":    order.Total,
		"items":    len(order.Items),
	})
	return c.Status(fiber.StatusCreated).JSON(order)
}

// Confirmation returns the most recent order confirmed in this session.
func (h *CheckoutHandler) Confirmation(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := h.Checkout.LastOrderID(sid)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no recent order"})
	}
	order, err := h.Orders.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}
