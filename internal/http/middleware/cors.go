package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORS allows the site frontend origin(s) to call the API. origins is a comma separated
// list; "*" or empty allows any origin.
func CORS(origins string) fiber.Handler {
	allowed := map[string]struct{}{}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowed[o] = struct{}{}
		}
	}
	_, allowAll := allowed["*"]
	if len(allowed) == 0 {
		allowAll = true
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		switch {
		case allowAll:
			c.Set("Access-Control-Allow-Origin", "*")
		case origin != "":
			if _, ok := allowed[origin]; ok {
				c.Set("Access-Control-Allow-Origin", origin)
				c.Vary(fiber.HeaderOrigin)
			}
		}
		c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Set("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-ID")
		c.Set("Access-Control-Max-Age", "86400")

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.Next()
	}
}
