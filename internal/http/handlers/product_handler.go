package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopmart/internal/repos"
	"shopmart/internal/validate"
)

type ProductHandler struct {
	Catalog *repos.CatalogRepo
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}
