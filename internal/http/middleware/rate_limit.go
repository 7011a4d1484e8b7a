package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
	// KeyPrefix separates buckets, e.g. search and writes get independent limits.
	KeyPrefix string
}

// DefaultRateLimitConfig returns default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 30,
		Window:      time.Minute,
		KeyPrefix:   "ratelimit",
	}
}

// RateLimit is a fixed-window limiter per client IP backed by Redis. A nil client or a
// Redis error lets the request through.
func RateLimit(redisClient *redis.Client, config RateLimitConfig, logger *zap.Logger) fiber.Handler {
	defaults := DefaultRateLimitConfig()
	if config.MaxRequests <= 0 {
		config.MaxRequests = defaults.MaxRequests
	}
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = defaults.KeyPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		if redisClient == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := config.KeyPrefix + ":" + c.IP()

		count, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit redis error", zap.String("key", key), zap.Error(err))
			return c.Next()
		}

		// A counter without a TTL starts the clock. That covers the first hit and
		// any key left behind by a failed EXPIRE, which would otherwise never reset.
		ttl, err := redisClient.TTL(ctx, key).Result()
		switch {
		case err != nil:
			ttl = config.Window
		case ttl < 0:
			if err := redisClient.Expire(ctx, key, config.Window).Err(); err != nil {
				logger.Warn("rate limit expire failed", zap.String("key", key), zap.Error(err))
			}
			ttl = config.Window
		}

		remaining := config.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(config.MaxRequests))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))

		if count > int64(config.MaxRequests) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(ttl.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again shortly",
			})
		}

		return c.Next()
	}
}
