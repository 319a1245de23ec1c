package dto

import (
	"time"

	"github.com/masifunde/apsmatch-api/internal/models"
)

// ProgramCreateRequest creates one catalog entry.
type ProgramCreateRequest struct {
	Type            string `json:"type" validate:"required,oneof=university tvet"`
	Qualification   string `json:"qualification" validate:"required,max=255"`
	InstitutionName string `json:"institution_name" validate:"required,max=255"`
	RequiredAPS     int    `json:"required_aps" validate:"gte=0,lte=42"`
	Faculty         string `json:"faculty" validate:"max=255"`
}

// ProgramResponse is the catalog entry view.
type ProgramResponse struct {
	ID              uint      `json:"id"`
	Type            string    `json:"type"`
	Qualification   string    `json:"qualification"`
	InstitutionName string    `json:"institution_name"`
	RequiredAPS     int       `json:"required_aps"`
	Faculty         string    `json:"faculty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewProgramResponse adapts a catalog row.
func NewProgramResponse(program models.Program) ProgramResponse {
	return ProgramResponse{
		ID:              program.ID,
		Type:            program.Type,
		Qualification:   program.Qualification,
		InstitutionName: program.InstitutionName,
		RequiredAPS:     program.RequiredAPS,
		Faculty:         program.Faculty,
		CreatedAt:       program.CreatedAt,
	}
}

// NewProgramResponseSlice adapts a list of catalog rows.
func NewProgramResponseSlice(programs []models.Program) []ProgramResponse {
	responses := make([]ProgramResponse, 0, len(programs))
	for _, program := range programs {
		responses = append(responses, NewProgramResponse(program))
	}
	return responses
}
