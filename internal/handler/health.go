package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	rdb     *redis.Client
	startAt time.Time
}

func NewHealthHandler(rdb *redis.Client) *HealthHandler {
	return &HealthHandler{rdb: rdb, startAt: time.Now()}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe with dependency checks.
// Redis is the only external dependency, and it is optional, so a down
// cache degrades rather than fails readiness.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	overallStatus := "healthy"
	redisCheck := checkRedis(ctx, h.rdb)
	if redisCheck["status"] == "down" {
		overallStatus = "degraded"
	}

	return c.JSON(fiber.Map{
		"status":         overallStatus,
		"checks":         fiber.Map{"redis": redisCheck},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	})
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{"status": "disabled"}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
