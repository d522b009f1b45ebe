package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CacheControl sets public cache headers for responses
func CacheControl(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Process request first
		err := c.Next()

		// Set cache headers only for successful GET requests
		if c.Method() == "GET" && c.Response().StatusCode() == 200 {
			seconds := int(maxAge.Seconds())
			c.Set("Cache-Control", "public, max-age="+strconv.Itoa(seconds))
		}

		return err
	}
}

// PlanCatalogCache returns cache middleware for the plan catalog (1 hour cache)
func PlanCatalogCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() == "GET" && c.Response().StatusCode() == 200 {
			c.Set("Cache-Control", "public, max-age=3600")
		}

		return err
	}
}

// NoCacheHeaders sets no-cache headers
func NoCacheHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Set("Pragma", "no-cache")
		c.Set("Expires", "0")
		return c.Next()
	}
}
