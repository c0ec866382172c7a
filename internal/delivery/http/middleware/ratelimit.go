package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/crashstats-service/internal/config"
	apperrors "github.com/crashstats-service/internal/pkg/errors"
	"github.com/crashstats-service/internal/pkg/utils"
)

// RateLimit applies a fixed-window per-client cap to the query endpoints.
func RateLimit(cfg *config.RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendError(c, apperrors.ErrRateLimited)
		},
	})
}
