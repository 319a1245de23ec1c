package handler

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// extractUserID pulls the authenticated subject from request locals. The JWT
// middleware stores it as a UUID string.
func extractUserID(c *fiber.Ctx) (string, error) {
	value := c.Locals("user_id")
	if value == nil {
		return "", fmt.Errorf("missing user context")
	}

	id, ok := value.(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("invalid user context")
	}

	return id, nil
}
