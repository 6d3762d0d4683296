package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shopmart/internal/domain"
	applog "shopmart/internal/log"
	"shopmart/internal/repos"
	"shopmart/internal/validate"
)

type AdminHandler struct {
	Catalog *repos.CatalogRepo
	Orders  *repos.OrderRepo
}

// AllHistory lists every order across users, most recent first.
func (h *AdminHandler) AllHistory(c *fiber.Ctx) error {
	orders, err := h.Orders.FindAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// Restock sets the absolute stock quantity for a product.
func (h *AdminHandler) Restock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	qty, err := strconv.Atoi(c.FormValue("qty"))
	if err != nil || qty < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid qty"})
	}
	if err := h.Catalog.Restock(id, qty); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.restock", map[string]any{"product_id": id, "qty": qty})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	p, ok := productForm(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product fields"})
	}
	id, err := h.Catalog.Create(p)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product_id": id})
	p.ID = id
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	p, ok := productForm(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product fields"})
	}
	p.ID = id
	if err := h.Catalog.Update(p); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": id})
	return c.JSON(p)
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	if err := h.Catalog.Delete(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}

func productForm(c *fiber.Ctx) (domain.Product, bool) {
	name := c.FormValue("name")
	if name == "" || len(name) > 100 {
		return domain.Product{}, false
	}
	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil || price < 0 {
		return domain.Product{}, false
	}
	qty, err := strconv.Atoi(c.FormValue("qty"))
	if err != nil || qty < 0 {
		return domain.Product{}, false
	}
	return domain.Product{Name: name, Price: price, Quantity: qty, Image: c.FormValue("image")}, true
}
