package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/masifunde/apsmatch-api/internal/config"
	"github.com/masifunde/apsmatch-api/internal/utils"
)

// HealthCheck reports basic liveness information.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, "ok", fiber.Map{
			"app":  cfg.AppName,
			"env":  cfg.AppEnv,
			"time": time.Now().UTC(),
		})
	}
}
