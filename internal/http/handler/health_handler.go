package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function, such as a redis ping, to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	logger *zap.Logger
	checks map[string]Pinger
}

// NewHealthHandler creates a health handler; checks are run by /api/ready.
func NewHealthHandler(logger *zap.Logger, checks map[string]Pinger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{logger: logger, checks: checks}
}

// Register wires probe routes onto the provided router.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.Live)
	router.Get("/api/ready", h.Ready)
}

// Live handles GET /health
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /api/ready
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(userContext(c), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	results := make(fiber.Map, len(h.checks))
	for name, check := range h.checks {
		if check == nil {
			continue
		}
		if err := check.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			results[name] = "down"
			status = fiber.StatusServiceUnavailable
			continue
		}
		results[name] = "up"
	}
	return c.Status(status).JSON(fiber.Map{
		"ready":  status == fiber.StatusOK,
		"checks": results,
	})
}
