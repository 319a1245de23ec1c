package handler

import (
	"errors"
	"strconv"

	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/masifunde/apsmatch-api/internal/dto"
	"github.com/masifunde/apsmatch-api/internal/service"
	"github.com/masifunde/apsmatch-api/internal/utils"
)

// ProgramHandler exposes the program catalog endpoints.
type ProgramHandler struct {
	service service.ProgramService
	logger  zerolog.Logger
}

// NewProgramHandler creates a new handler instance.
func NewProgramHandler(service service.ProgramService, logger zerolog.Logger) *ProgramHandler {
	return &ProgramHandler{
		service: service,
		logger:  logger.With().Str("component", "program_handler").Logger(),
	}
}

// Register attaches the read endpoints.
func (h *ProgramHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
}

// RegisterAdmin attaches the catalog mutation endpoints.
func (h *ProgramHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/", h.create)
	router.Delete("/:id", h.remove)
}

func (h *ProgramHandler) list(c *fiber.Ctx) error {
	programs, err := h.service.List(c.Context(), c.Query("type"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list programs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list programs")
	}

	return utils.SendSuccess(c, "programs retrieved", programs)
}

func (h *ProgramHandler) create(c *fiber.Ctx) error {
	var payload dto.ProgramCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	program, err := h.service.Create(c.Context(), payload)
	if err != nil {
		var validationErrs playground.ValidationErrors
		if errors.As(err, &validationErrs) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create program")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create program")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "program created", program)
}

func (h *ProgramHandler) remove(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid program id")
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "program not found")
		}
		h.logger.Error().Err(err).Uint64("program_id", id).Msg("failed to delete program")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete program")
	}

	return utils.SendSuccess(c, "program deleted", nil)
}
