package dto

import (
	"time"

	"github.com/masifunde/apsmatch-api/internal/models"
	"github.com/masifunde/apsmatch-api/internal/validation"
)

// ValidationResponse is the API shape of a single-record validation outcome.
type ValidationResponse struct {
	IsValid       bool                      `json:"is_valid"`
	Errors        []string                  `json:"errors"`
	Warnings      []string                  `json:"warnings"`
	FormattedData *validation.StudentRecord `json:"formatted_data"`
}

// NewValidationResponse adapts a core validation result.
func NewValidationResponse(result validation.Result) ValidationResponse {
	return ValidationResponse{
		IsValid:       result.IsValid,
		Errors:        result.Errors,
		Warnings:      result.Warnings,
		FormattedData: result.FormattedData,
	}
}

// BulkValidateRequest carries a batch of raw records.
type BulkValidateRequest struct {
	Records []map[string]any `json:"records"`
}

// BulkValidateResponse reports a bulk ingestion run.
type BulkValidateResponse struct {
	Summary         validation.BatchSummary    `json:"summary"`
	ValidStudents   []validation.StudentRecord `json:"valid_students"`
	InvalidStudents []validation.InvalidRecord `json:"invalid_students"`
	Saved           int                        `json:"saved"`
}

// StudentMarkResponse is the stored-record view returned to the caller.
type StudentMarkResponse struct {
	UserID    string         `json:"user_id"`
	ProfileID *string        `json:"profile_id"`
	APSMark   *int           `json:"aps_mark"`
	Average   *float64       `json:"average"`
	Subjects  map[string]any `json:"subjects"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewStudentMarkResponse adapts a stored mark row.
func NewStudentMarkResponse(mark models.StudentMark) StudentMarkResponse {
	return StudentMarkResponse{
		UserID:    mark.UserID,
		ProfileID: mark.ProfileID,
		APSMark:   mark.APSMark,
		Average:   mark.Average,
		Subjects:  mark.Subjects,
		UpdatedAt: mark.UpdatedAt,
	}
}
