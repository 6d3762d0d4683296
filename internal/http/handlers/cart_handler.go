package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "shopmart/internal/log"
	"shopmart/internal/services"
	"shopmart/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)
	return c.JSON(cv)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid productId"})
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.Add(sid, productID, qty); err != nil {
		return fail(c, err)
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": productID, "qty": qty})
	return c.JSON(h.Cart.View(sid))
}

// Update applies quantities posted as qty[<key>]=<n>, where key is a line
// index or a product id. Clamped lines come back under "corrections".
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)

	req := map[string]int{}
	c.Request().PostArgs().VisitAll(func(k, v []byte) {
		key := string(k)
		if !strings.HasPrefix(key, "qty[") || !strings.HasSuffix(key, "]") {
			return
		}
		key = key[len("qty[") : len(key)-1]
		n, err := strconv.Atoi(string(v))
		if err != nil || n < 0 {
			return
		}
		req[key] = n
	})

	corrections, err := h.Cart.SetQuantities(sid, req)
	if err != nil {
		return fail(c, err)
	}
	cv := h.Cart.View(sid)
	return c.JSON(fiber.Map{"lines": cv.Lines, "total": cv.Total, "corrections": corrections})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	idx, err := strconv.Atoi(c.Params("idx"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cart index"})
	}
	if err := h.Cart.Remove(sid, idx); err != nil {
		// Out-of-bounds is benign; report and show the cart as-is.
		cv := h.Cart.View(sid)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no such cart line",
			"lines": cv.Lines,
			"total": cv.Total,
		})
	}
	return c.JSON(h.Cart.View(sid))
}
