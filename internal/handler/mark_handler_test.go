package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/masifunde/apsmatch-api/internal/dto"
	"github.com/masifunde/apsmatch-api/internal/handler"
	"github.com/masifunde/apsmatch-api/internal/service"
	"github.com/masifunde/apsmatch-api/internal/validation"
)

type stubMarkService struct {
	validateResponse dto.ValidationResponse
	saveResponse     dto.ValidationResponse
	saveErr          error
	getResponse      dto.StudentMarkResponse
	getErr           error
	bulkResponse     dto.BulkValidateResponse
	bulkErr          error
	lastUserID       string
	lastRaw          map[string]any
}

var _ service.MarkService = (*stubMarkService)(nil)

func (s *stubMarkService) Validate(_ context.Context, raw map[string]any) dto.ValidationResponse {
	s.lastRaw = raw
	return s.validateResponse
}

func (s *stubMarkService) Save(_ context.Context, userID string, raw map[string]any) (dto.ValidationResponse, error) {
	s.lastUserID = userID
	s.lastRaw = raw
	return s.saveResponse, s.saveErr
}

func (s *stubMarkService) Get(_ context.Context, userID string) (dto.StudentMarkResponse, error) {
	s.lastUserID = userID
	return s.getResponse, s.getErr
}

func (s *stubMarkService) BulkValidate(_ context.Context, _ []byte) (dto.BulkValidateResponse, error) {
	return s.bulkResponse, s.bulkErr
}

func newMarkApp(svc service.MarkService, userID string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/marks", func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user_id", userID)
		}
		return c.Next()
	})
	h := handler.NewMarkHandler(svc, zerolog.Nop())
	h.Register(group)
	h.RegisterBulk(group)
	return app
}

type markPayload struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    dto.ValidationResponse `json:"data"`
}

func TestMarkHandler_Validate(t *testing.T) {
	svc := &stubMarkService{validateResponse: dto.ValidationResponse{IsValid: true, Errors: []string{}, Warnings: []string{}}}
	app := newMarkApp(svc, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/marks/validate", strings.NewReader(`{"math_mark": 78.5}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload markPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, "record validated", payload.Message)
	require.True(t, payload.Data.IsValid)
	require.Equal(t, 78.5, svc.lastRaw["math_mark"])
}

func TestMarkHandler_Validate_BadBody(t *testing.T) {
	app := newMarkApp(&stubMarkService{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/marks/validate", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMarkHandler_Save(t *testing.T) {
	userID := "0d4907ee-21c9-4d45-9f01-8c791e5c47b9"
	record := validation.StudentRecord{UserID: &userID}
	svc := &stubMarkService{saveResponse: dto.ValidationResponse{IsValid: true, Errors: []string{}, Warnings: []string{}, FormattedData: &record}}
	app := newMarkApp(svc, userID)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/marks/", strings.NewReader(`{"aps_mark": 35}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload markPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, "student mark saved", payload.Message)
	require.Equal(t, userID, svc.lastUserID)
}

func TestMarkHandler_Save_ValidationFailed(t *testing.T) {
	svc := &stubMarkService{saveResponse: dto.ValidationResponse{IsValid: false, Errors: []string{"math_mark must be a number between 0 and 100"}, Warnings: []string{}}}
	app := newMarkApp(svc, "0d4907ee-21c9-4d45-9f01-8c791e5c47b9")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/marks/", strings.NewReader(`{"math_mark": 150}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload markPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, "validation failed", payload.Message)
	require.False(t, payload.Data.IsValid)
	require.Len(t, payload.Data.Errors, 1)
}

func TestMarkHandler_Save_Unauthorized(t *testing.T) {
	app := newMarkApp(&stubMarkService{}, "")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/marks/", strings.NewReader(`{"aps_mark": 35}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMarkHandler_Save_InvalidUserID(t *testing.T) {
	svc := &stubMarkService{saveErr: service.ErrInvalidUserID}
	app := newMarkApp(svc, "not-a-uuid")

	req := httptest.NewRequest(http.MethodPut, "/api/v1/marks/", strings.NewReader(`{"aps_mark": 35}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMarkHandler_Get(t *testing.T) {
	userID := "0d4907ee-21c9-4d45-9f01-8c791e5c47b9"
	aps := 35
	svc := &stubMarkService{getResponse: dto.StudentMarkResponse{UserID: userID, APSMark: &aps}}
	app := newMarkApp(svc, userID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/marks/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                    `json:"success"`
		Data    dto.StudentMarkResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, userID, payload.Data.UserID)
	require.Equal(t, 35, *payload.Data.APSMark)
}

func TestMarkHandler_Get_NotFound(t *testing.T) {
	svc := &stubMarkService{getErr: service.ErrMarkNotFound}
	app := newMarkApp(svc, "0d4907ee-21c9-4d45-9f01-8c791e5c47b9")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/marks/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestMarkHandler_Bulk(t *testing.T) {
	svc := &stubMarkService{bulkResponse: dto.BulkValidateResponse{
		Summary: validation.BatchSummary{Total: 2, Valid: 1, Invalid: 1},
		Saved:   1,
	}}
	app := newMarkApp(svc, "0d4907ee-21c9-4d45-9f01-8c791e5c47b9")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/marks/bulk", strings.NewReader(`{"records": [{}]}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                     `json:"success"`
		Data    dto.BulkValidateResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, 2, payload.Data.Summary.Total)
	require.Equal(t, 1, payload.Data.Saved)
}

func TestMarkHandler_Bulk_BadEnvelope(t *testing.T) {
	svc := &stubMarkService{bulkErr: service.ErrBulkPayload}
	app := newMarkApp(svc, "0d4907ee-21c9-4d45-9f01-8c791e5c47b9")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/marks/bulk", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
