package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/masifunde/apsmatch-api/internal/dto"
	"github.com/masifunde/apsmatch-api/internal/matching"
	"github.com/masifunde/apsmatch-api/internal/models"
	"github.com/masifunde/apsmatch-api/internal/observability"
	"github.com/masifunde/apsmatch-api/internal/repository"
)

// MatchService ranks a student against the program catalog.
type MatchService interface {
	FindMatches(ctx context.Context, userID string, query dto.MatchQuery) (dto.MatchListResponse, bool, error)
	FindMatchesForDisplay(ctx context.Context, userID string, query dto.MatchQuery) (dto.DisplayMatchListResponse, error)
}

type matchService struct {
	marks     repository.StudentMarkRepository
	programs  repository.ProgramRepository
	engine    *matching.Engine
	validator *playground.Validate
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewMatchService builds the match service. cache may be nil to disable the
// result cache.
func NewMatchService(marks repository.StudentMarkRepository, programs repository.ProgramRepository, engine *matching.Engine, validate *playground.Validate, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) MatchService {
	return &matchService{
		marks:     marks,
		programs:  programs,
		engine:    engine,
		validator: validate,
		cache:     cache,
		cacheTTL:  ttl,
		logger:    logger.With().Str("component", "match_service").Logger(),
		tracer:    otel.Tracer("github.com/masifunde/apsmatch-api/internal/service/match"),
	}
}

func (s *matchService) FindMatches(ctx context.Context, userID string, query dto.MatchQuery) (dto.MatchListResponse, bool, error) {
	if err := s.validator.Struct(query); err != nil {
		return dto.MatchListResponse{}, false, err
	}

	cacheKey := s.cacheKey(userID, query)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.MatchListResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				observability.MatchCacheHits().Inc()
				s.logger.Debug().Str("user_id", userID).Msg("match cache hit")
				return response, true, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read match cache")
		}
	}

	spanCtx, span := s.tracer.Start(ctx, "matches.find", trace.WithAttributes(
		attribute.String("match.user_id", userID),
		attribute.String("match.type", query.Type),
	))
	defer span.End()

	response, err := s.compute(spanCtx, userID, query)
	if err != nil {
		span.RecordError(err)
		observability.MatchRequests().WithLabelValues("error").Inc()
		return dto.MatchListResponse{}, false, err
	}
	observability.MatchRequests().WithLabelValues("ok").Inc()

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(spanCtx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store match cache")
			}
		}
	}

	return response, false, nil
}

func (s *matchService) FindMatchesForDisplay(ctx context.Context, userID string, query dto.MatchQuery) (dto.DisplayMatchListResponse, error) {
	response, _, err := s.FindMatches(ctx, userID, query)
	if err != nil {
		return dto.DisplayMatchListResponse{}, err
	}

	return dto.DisplayMatchListResponse{
		UserID:       response.UserID,
		TotalMatches: response.TotalMatches,
		Matches:      matching.FormatForDisplay(response.Matches),
	}, nil
}

func (s *matchService) compute(ctx context.Context, userID string, query dto.MatchQuery) (dto.MatchListResponse, error) {
	mark, err := s.marks.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MatchListResponse{}, ErrMarkNotFound
		}
		return dto.MatchListResponse{}, err
	}

	programs, err := s.programs.List(ctx, repository.ProgramFilter{Type: query.Type})
	if err != nil {
		return dto.MatchListResponse{}, err
	}

	profile := matching.StudentProfile{
		UserID:       mark.UserID,
		APSMark:      mark.APSMark,
		SubjectMarks: subjectMarks(mark),
	}

	matches := s.engine.FindMatches(profile, catalog(programs))
	if query.Limit > 0 && len(matches) > query.Limit {
		matches = matches[:query.Limit]
	}

	return dto.MatchListResponse{
		UserID:       mark.UserID,
		APSMark:      mark.APSMark,
		TotalMatches: len(matches),
		Matches:      matches,
	}, nil
}

func (s *matchService) cacheKey(userID string, query dto.MatchQuery) string {
	programType := query.Type
	if programType == "" {
		programType = "all"
	}
	return fmt.Sprintf("matches:user:%s:%s:%d", userID, programType, query.Limit)
}

// subjectMarks pulls the numeric percentage marks out of the stored payload.
func subjectMarks(mark models.StudentMark) map[string]float64 {
	marks := make(map[string]float64)
	for key, value := range mark.Subjects {
		number, ok := value.(float64)
		if !ok {
			continue
		}
		if strings.HasSuffix(key, "_mark") || key == "average" {
			marks[key] = number
		}
	}
	return marks
}

func catalog(programs []models.Program) []matching.Program {
	entries := make([]matching.Program, 0, len(programs))
	for _, program := range programs {
		entries = append(entries, matching.Program{
			ID:              program.ID,
			Type:            matching.InstitutionType(program.Type),
			Qualification:   program.Qualification,
			InstitutionName: program.InstitutionName,
			RequiredAPS:     program.RequiredAPS,
			Faculty:         program.Faculty,
		})
	}
	return entries
}
