package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	healthy := PingerFunc(func(ctx context.Context) error { return nil })
	broken := PingerFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	app := fiber.New()
	NewHealthHandler(nil, map[string]Pinger{"postgres": healthy}).Register(app)
	resp, data := doRequest(t, app, fiber.MethodGet, "/api/ready", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ready":true,"checks":{"postgres":"up"}}`, string(data))

	resp, _ = doRequest(t, app, fiber.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	app = fiber.New()
	NewHealthHandler(nil, map[string]Pinger{"postgres": healthy, "redis": broken}).Register(app)
	resp, data = doRequest(t, app, fiber.MethodGet, "/api/ready", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"ready":false,"checks":{"postgres":"up","redis":"down"}}`, string(data))
}
