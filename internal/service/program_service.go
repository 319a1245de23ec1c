package service

import (
	"context"
	"errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/masifunde/apsmatch-api/internal/dto"
	"github.com/masifunde/apsmatch-api/internal/models"
	"github.com/masifunde/apsmatch-api/internal/repository"
)

// ErrProgramNotFound indicates the requested catalog entry does not exist.
var ErrProgramNotFound = errors.New("program not found")

// ProgramService manages the program catalog.
type ProgramService interface {
	List(ctx context.Context, programType string) ([]dto.ProgramResponse, error)
	Create(ctx context.Context, payload dto.ProgramCreateRequest) (dto.ProgramResponse, error)
	Delete(ctx context.Context, id uint) error
}

type programService struct {
	repo      repository.ProgramRepository
	validator *playground.Validate
	logger    zerolog.Logger
}

// NewProgramService builds the catalog service.
func NewProgramService(repo repository.ProgramRepository, validate *playground.Validate, logger zerolog.Logger) ProgramService {
	return &programService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "program_service").Logger(),
	}
}

func (s *programService) List(ctx context.Context, programType string) ([]dto.ProgramResponse, error) {
	programs, err := s.repo.List(ctx, repository.ProgramFilter{Type: programType})
	if err != nil {
		return nil, err
	}

	return dto.NewProgramResponseSlice(programs), nil
}

func (s *programService) Create(ctx context.Context, payload dto.ProgramCreateRequest) (dto.ProgramResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProgramResponse{}, err
	}

	program := models.Program{
		Type:            payload.Type,
		Qualification:   payload.Qualification,
		InstitutionName: payload.InstitutionName,
		RequiredAPS:     payload.RequiredAPS,
		Faculty:         payload.Faculty,
	}

	if err := s.repo.Create(ctx, &program); err != nil {
		return dto.ProgramResponse{}, err
	}

	s.logger.Info().Uint("program_id", program.ID).Str("type", program.Type).Msg("program created")

	return dto.NewProgramResponse(program), nil
}

func (s *programService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgramNotFound
		}
		return err
	}

	s.logger.Info().Uint("program_id", id).Msg("program deleted")

	return nil
}
