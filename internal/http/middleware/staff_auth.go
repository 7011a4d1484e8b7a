package middleware

import (
	"errors"
	"strings"

	"github.com/cdentertainment/site-api/internal/http/util"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const staffKey = "staff"

// RequireStaff rejects requests without a valid staff bearer token.
func RequireStaff(tokens *util.TokenSigner, logger *zap.Logger) fiber.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		subject, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			if !errors.Is(err, util.ErrInvalidToken) {
				logger.Error("staff token check failed", zap.Error(err))
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals(staffKey, subject)
		return c.Next()
	}
}

// StaffFrom returns the authenticated staff username, or "" on public routes.
func StaffFrom(c *fiber.Ctx) string {
	s, _ := c.Locals(staffKey).(string)
	return s
}
