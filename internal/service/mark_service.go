package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/masifunde/apsmatch-api/internal/dto"
	"github.com/masifunde/apsmatch-api/internal/models"
	"github.com/masifunde/apsmatch-api/internal/observability"
	"github.com/masifunde/apsmatch-api/internal/repository"
	"github.com/masifunde/apsmatch-api/internal/validation"
)

// ErrMarkNotFound indicates no validated record is stored for the student.
var ErrMarkNotFound = errors.New("student mark not found")

// ErrInvalidUserID indicates the authenticated subject is not a usable UUID.
var ErrInvalidUserID = errors.New("user id must be a valid UUID")

// ErrBulkPayload indicates the bulk envelope failed the schema check.
var ErrBulkPayload = errors.New("invalid bulk payload")

// textFields are the free-text descriptor keys sanitized before validation.
var textFields = []string{
	"math_type",
	"home_language",
	"first_additional_language",
	"second_additional_language",
	"subject1",
	"subject2",
	"subject3",
	"subject4",
}

const bulkSchemaTemplate = `{
	"type": "object",
	"required": ["records"],
	"properties": {
		"records": {
			"type": "array",
			"minItems": 1,
			"maxItems": %d,
			"items": {"type": "object"}
		}
	}
}`

// MarkService validates and stores student academic records.
type MarkService interface {
	Validate(ctx context.Context, raw map[string]any) dto.ValidationResponse
	Save(ctx context.Context, userID string, raw map[string]any) (dto.ValidationResponse, error)
	Get(ctx context.Context, userID string) (dto.StudentMarkResponse, error)
	BulkValidate(ctx context.Context, payload []byte) (dto.BulkValidateResponse, error)
}

type markService struct {
	repo        repository.StudentMarkRepository
	validator   *validation.Validator
	sanitizer   *bluemonday.Policy
	bulkSchema  *jsonschema.Schema
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	tracer      trace.Tracer
	nodeID      string
}

type ingestEvent struct {
	Source  string                  `json:"source"`
	Summary validation.BatchSummary `json:"summary"`
	Saved   int                     `json:"saved"`
	SentAt  time.Time               `json:"sent_at"`
}

// NewMarkService builds the mark service. natsConn may be nil when eventing
// is disabled.
func NewMarkService(repo repository.StudentMarkRepository, coreValidator *validation.Validator, bulkMaxRecords int, natsConn *nats.Conn, logger zerolog.Logger) MarkService {
	if bulkMaxRecords <= 0 {
		bulkMaxRecords = 500
	}

	return &markService{
		repo:        repo,
		validator:   coreValidator,
		sanitizer:   bluemonday.StrictPolicy(),
		bulkSchema:  jsonschema.MustCompileString("bulk_validate.json", fmt.Sprintf(bulkSchemaTemplate, bulkMaxRecords)),
		nats:        natsConn,
		natsSubject: "marks.ingest.completed",
		logger:      logger.With().Str("component", "mark_service").Logger(),
		tracer:      otel.Tracer("github.com/masifunde/apsmatch-api/internal/service/mark"),
		nodeID:      uuid.NewString(),
	}
}

func (s *markService) Validate(ctx context.Context, raw map[string]any) dto.ValidationResponse {
	_, span := s.tracer.Start(ctx, "marks.validate")
	defer span.End()

	result := s.validator.ValidateAndFormat(s.sanitize(raw))
	s.observe(result)

	return dto.NewValidationResponse(result)
}

func (s *markService) Save(ctx context.Context, userID string, raw map[string]any) (dto.ValidationResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return dto.ValidationResponse{}, ErrInvalidUserID
	}

	spanCtx, span := s.tracer.Start(ctx, "marks.save", trace.WithAttributes(
		attribute.String("mark.user_id", userID),
	))
	defer span.End()

	cleaned := s.sanitize(raw)
	// The authenticated subject owns the record, whatever the body claims.
	cleaned["user_id"] = userID

	result := s.validator.ValidateAndFormat(cleaned)
	s.observe(result)

	if !result.IsValid {
		return dto.NewValidationResponse(result), nil
	}

	mark, err := markRow(result.FormattedData)
	if err != nil {
		span.RecordError(err)
		return dto.ValidationResponse{}, err
	}

	if err := s.repo.Upsert(spanCtx, &mark); err != nil {
		span.RecordError(err)
		return dto.ValidationResponse{}, err
	}

	s.logger.Info().Str("user_id", userID).Msg("student mark saved")

	return dto.NewValidationResponse(result), nil
}

func (s *markService) Get(ctx context.Context, userID string) (dto.StudentMarkResponse, error) {
	mark, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentMarkResponse{}, ErrMarkNotFound
		}
		return dto.StudentMarkResponse{}, err
	}

	return dto.NewStudentMarkResponse(mark), nil
}

func (s *markService) BulkValidate(ctx context.Context, payload []byte) (dto.BulkValidateResponse, error) {
	var document any
	if err := json.Unmarshal(payload, &document); err != nil {
		return dto.BulkValidateResponse{}, fmt.Errorf("%w: %v", ErrBulkPayload, err)
	}
	if err := s.bulkSchema.Validate(document); err != nil {
		return dto.BulkValidateResponse{}, fmt.Errorf("%w: %v", ErrBulkPayload, err)
	}

	var request dto.BulkValidateRequest
	if err := json.Unmarshal(payload, &request); err != nil {
		return dto.BulkValidateResponse{}, fmt.Errorf("%w: %v", ErrBulkPayload, err)
	}

	spanCtx, span := s.tracer.Start(ctx, "marks.bulk_validate", trace.WithAttributes(
		attribute.Int("bulk.records", len(request.Records)),
	))
	defer span.End()

	for i := range request.Records {
		request.Records[i] = s.sanitize(request.Records[i])
	}

	batch := s.validator.ValidateBatch(request.Records)
	observability.ValidationRecords().WithLabelValues("valid").Add(float64(batch.Summary.Valid))
	observability.ValidationRecords().WithLabelValues("invalid").Add(float64(batch.Summary.Invalid))
	observability.ValidationWarnings().Add(float64(batch.Summary.Warnings))

	saved := 0
	for i := range batch.Valid {
		record := batch.Valid[i]
		if record.UserID == nil {
			// Valid but anonymous records are reported, not stored.
			continue
		}

		mark, err := markRow(&record)
		if err != nil {
			span.RecordError(err)
			return dto.BulkValidateResponse{}, err
		}
		if err := s.repo.Upsert(spanCtx, &mark); err != nil {
			span.RecordError(err)
			return dto.BulkValidateResponse{}, err
		}
		saved++
	}

	s.publishIngestEvent(batch.Summary, saved)
	s.logger.Info().
		Int("total", batch.Summary.Total).
		Int("valid", batch.Summary.Valid).
		Int("invalid", batch.Summary.Invalid).
		Int("saved", saved).
		Msg("bulk validation run completed")

	return dto.BulkValidateResponse{
		Summary:         batch.Summary,
		ValidStudents:   batch.Valid,
		InvalidStudents: batch.Invalid,
		Saved:           saved,
	}, nil
}

// sanitize strips markup from the free-text descriptors and returns a copy;
// the caller's map is never mutated.
func (s *markService) sanitize(raw map[string]any) map[string]any {
	cleaned := make(map[string]any, len(raw))
	for key, value := range raw {
		cleaned[key] = value
	}

	for _, field := range textFields {
		if value, ok := cleaned[field].(string); ok {
			cleaned[field] = s.sanitizer.Sanitize(value)
		}
	}

	return cleaned
}

func (s *markService) observe(result validation.Result) {
	outcome := "valid"
	if !result.IsValid {
		outcome = "invalid"
	}
	observability.ValidationRecords().WithLabelValues(outcome).Inc()
	observability.ValidationWarnings().Add(float64(len(result.Warnings)))
}

func (s *markService) publishIngestEvent(summary validation.BatchSummary, saved int) {
	if s.nats == nil {
		return
	}

	event := ingestEvent{
		Source:  s.nodeID,
		Summary: summary,
		Saved:   saved,
		SentAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode ingest event")
		return
	}

	if err := s.nats.Publish(s.natsSubject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish ingest event")
	}
}

// markRow projects a validated record onto its storage row. The JSON round
// trip keeps the payload in the same shape the API returns.
func markRow(record *validation.StudentRecord) (models.StudentMark, error) {
	encoded, err := json.Marshal(record)
	if err != nil {
		return models.StudentMark{}, err
	}

	var subjects datatypes.JSONMap
	if err := json.Unmarshal(encoded, &subjects); err != nil {
		return models.StudentMark{}, err
	}

	mark := models.StudentMark{
		ProfileID: record.ProfileID,
		APSMark:   record.APSMark,
		Average:   record.Average,
		Subjects:  subjects,
	}
	if record.UserID != nil {
		mark.UserID = *record.UserID
	}

	return mark, nil
}
