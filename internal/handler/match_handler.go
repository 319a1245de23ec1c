package handler

import (
	"errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/masifunde/apsmatch-api/internal/dto"
	"github.com/masifunde/apsmatch-api/internal/service"
	"github.com/masifunde/apsmatch-api/internal/utils"
)

// MatchHandler exposes the eligibility match endpoints.
type MatchHandler struct {
	service service.MatchService
	logger  zerolog.Logger
}

// NewMatchHandler creates a new handler instance.
func NewMatchHandler(service service.MatchService, logger zerolog.Logger) *MatchHandler {
	return &MatchHandler{
		service: service,
		logger:  logger.With().Str("component", "match_handler").Logger(),
	}
}

// Register attaches the match endpoints.
func (h *MatchHandler) Register(router fiber.Router) {
	router.Get("/", h.find)
	router.Get("/display", h.findForDisplay)
}

func (h *MatchHandler) find(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var query dto.MatchQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	matches, cacheHit, err := h.service.FindMatches(c.Context(), userID, query)
	if err != nil {
		return h.sendMatchError(c, userID, err)
	}

	return utils.SendSuccessWithMeta(c, "matches retrieved", matches, map[string]any{"cache_hit": cacheHit})
}

func (h *MatchHandler) findForDisplay(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var query dto.MatchQuery
	if err := c.QueryParser(&query); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	matches, err := h.service.FindMatchesForDisplay(c.Context(), userID, query)
	if err != nil {
		return h.sendMatchError(c, userID, err)
	}

	return utils.SendSuccess(c, "matches retrieved", matches)
}

func (h *MatchHandler) sendMatchError(c *fiber.Ctx, userID string, err error) error {
	var validationErrs playground.ValidationErrors
	switch {
	case errors.Is(err, service.ErrMarkNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "no validated record stored; submit marks first")
	case errors.As(err, &validationErrs):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	default:
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to compute matches")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute matches")
	}
}
