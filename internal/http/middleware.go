package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Groodev/komik-api/internal/cache"
	"github.com/Groodev/komik-api/internal/ratelimit"
)

// RateLimit rejects clients that exceed their per-IP request budget.
func RateLimit(limiter *ratelimit.Limiter, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !limiter.Allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message":     "too many requests",
				"retry_after": int(window.Seconds()),
			})
		}
		return c.Next()
	}
}

// CacheResponses serves repeated GET requests from the store. The key
// is the full request URL including the query string, so distinct
// pages and filters cache independently.
func CacheResponses(store cache.Store, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := c.OriginalURL()
		if body, ok := store.Get(key); ok {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			c.Set("X-Cache", "HIT")
			return c.Send(body)
		}

		if err := c.Next(); err != nil {
			return err
		}
		// Only successful responses are worth replaying.
		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			store.Set(key, body, ttl)
			c.Set("X-Cache", "MISS")
		}
		return nil
	}
}
