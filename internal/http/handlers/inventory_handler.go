package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopmart/internal/services"
	"shopmart/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	a, err := h.Inv.CheckAvailability(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(a)
}
