package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shopmart/internal/domain"
	applog "shopmart/internal/log"
)

// ensureSID returns the session cookie, minting one if the shopper has none.
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
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

// fail maps a typed outcome to a response. Business outcomes carry enough
// detail for the shopper to adjust; infrastructure faults get a generic
// retry-later message with no internals.
func fail(c *fiber.Ctx, err error) error {
	var stock *domain.InsufficientStockError
	if errors.As(err, &stock) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "insufficient stock",
			"productId": stock.ProductID,
			"available": stock.Available,
		})
	}
	var limit *domain.LimitExceededError
	if errors.As(err, &limit) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     "quantity exceeds available stock",
			"productId": limit.ProductID,
			"available": limit.Available,
		})
	}
	if errors.Is(err, domain.ErrEmptyCart) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cart is empty"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	applog.Error(c, "request.fail", err, nil)
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "Something went wrong. Please try again later.",
	})
}
