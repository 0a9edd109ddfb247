package middleware

import (
	"crypto/md5"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ETag generates and validates ETags for successful GET and HEAD responses.
func ETag() fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := c.Method()
		if method != fiber.MethodGet && method != fiber.MethodHead {
			return c.Next()
		}

		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() >= 400 {
			return nil
		}

		body := c.Response().Body()
		if len(body) == 0 {
			return nil
		}

		hash := md5.Sum(body)
		etag := fmt.Sprintf(`"%x"`, hash)
		c.Set(fiber.HeaderETag, etag)

		if c.Get(fiber.HeaderIfNoneMatch) == etag {
			c.Status(fiber.StatusNotModified)
			c.Response().SetBody(nil)
		}
		return nil
	}
}

// NoCache marks responses as uncacheable. Generation results differ on every call.
func NoCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
		c.Set(fiber.HeaderPragma, "no-cache")
		c.Set(fiber.HeaderExpires, "0")
		return c.Next()
	}
}

// PublicCache sets shared cache headers on successful responses.
func PublicCache(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		if c.Response().StatusCode() < 400 {
			c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
		}
		return nil
	}
}
