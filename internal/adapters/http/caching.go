package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses.
// Point data must never be served stale by an intermediary: a create has to
// be visible to the very next read, so the data endpoints get no-cache and
// rely on ETag revalidation instead.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case strings.HasPrefix(path, "/v1/points"):
			ttl = "no-cache" // Revalidate via ETag; reads must see prior writes
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
