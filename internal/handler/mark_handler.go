package handler

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/masifunde/apsmatch-api/internal/service"
	"github.com/masifunde/apsmatch-api/internal/utils"
)

// MarkHandler exposes the academic-record validation endpoints.
type MarkHandler struct {
	service service.MarkService
	logger  zerolog.Logger
}

// NewMarkHandler creates a new handler instance.
func NewMarkHandler(service service.MarkService, logger zerolog.Logger) *MarkHandler {
	return &MarkHandler{
		service: service,
		logger:  logger.With().Str("component", "mark_handler").Logger(),
	}
}

// Register attaches the student-facing mark endpoints.
func (h *MarkHandler) Register(router fiber.Router) {
	router.Post("/validate", h.validate)
	router.Put("/", h.save)
	router.Get("/", h.get)
}

// RegisterBulk attaches the bulk ingestion endpoint, typically behind an
// admin guard.
func (h *MarkHandler) RegisterBulk(router fiber.Router) {
	router.Post("/bulk", h.bulk)
}

func (h *MarkHandler) validate(c *fiber.Ctx) error {
	var raw map[string]any
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "request body must be a JSON object")
	}

	result := h.service.Validate(c.Context(), raw)

	return utils.SendSuccess(c, "record validated", result)
}

func (h *MarkHandler) save(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var raw map[string]any
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "request body must be a JSON object")
	}

	result, err := h.service.Save(c.Context(), userID, raw)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUserID) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save student mark")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save student mark")
	}

	message := "student mark saved"
	if !result.IsValid {
		message = "validation failed"
	}

	return utils.SendSuccess(c, message, result)
}

func (h *MarkHandler) get(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	mark, err := h.service.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrMarkNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "no validated record stored")
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load student mark")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load student mark")
	}

	return utils.SendSuccess(c, "student mark retrieved", mark)
}

func (h *MarkHandler) bulk(c *fiber.Ctx) error {
	result, err := h.service.BulkValidate(c.Context(), c.Body())
	if err != nil {
		if errors.Is(err, service.ErrBulkPayload) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("bulk validation run failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "bulk validation run failed")
	}

	return utils.SendSuccess(c, "bulk validation completed", result)
}
