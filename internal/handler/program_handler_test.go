package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/masifunde/apsmatch-api/internal/dto"
	"github.com/masifunde/apsmatch-api/internal/handler"
	"github.com/masifunde/apsmatch-api/internal/service"
)

type stubProgramService struct {
	listResponse   []dto.ProgramResponse
	listErr        error
	createResponse dto.ProgramResponse
	createErr      error
	deleteErr      error
	lastType       string
	lastID         uint
}

var _ service.ProgramService = (*stubProgramService)(nil)

func (s *stubProgramService) List(_ context.Context, programType string) ([]dto.ProgramResponse, error) {
	s.lastType = programType
	return s.listResponse, s.listErr
}

func (s *stubProgramService) Create(_ context.Context, _ dto.ProgramCreateRequest) (dto.ProgramResponse, error) {
	return s.createResponse, s.createErr
}

func (s *stubProgramService) Delete(_ context.Context, id uint) error {
	s.lastID = id
	return s.deleteErr
}

func newProgramApp(svc service.ProgramService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/programs")
	h := handler.NewProgramHandler(svc, zerolog.Nop())
	h.Register(group)
	h.RegisterAdmin(group)
	return app
}

func TestProgramHandler_List(t *testing.T) {
	svc := &stubProgramService{listResponse: []dto.ProgramResponse{
		{ID: 1, Type: "university", Qualification: "BCom Accounting", InstitutionName: "UCT", RequiredAPS: 30},
	}}
	app := newProgramApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/programs/?type=university", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                  `json:"success"`
		Data    []dto.ProgramResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Len(t, payload.Data, 1)
	require.Equal(t, "university", svc.lastType)
}

func TestProgramHandler_Create(t *testing.T) {
	svc := &stubProgramService{createResponse: dto.ProgramResponse{ID: 9, Type: "university", Qualification: "BSc Computer Science"}}
	app := newProgramApp(svc)

	body := `{"type": "university", "qualification": "BSc Computer Science", "institution_name": "Wits", "required_aps": 34}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/", strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var payload struct {
		Success bool                `json:"success"`
		Data    dto.ProgramResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.True(t, payload.Success)
	require.Equal(t, uint(9), payload.Data.ID)
}

func TestProgramHandler_Create_Invalid(t *testing.T) {
	validate := playground.New(playground.WithRequiredStructEnabled())
	createErr := validate.Struct(dto.ProgramCreateRequest{Type: "college"})
	require.Error(t, createErr)

	svc := &stubProgramService{createErr: createErr}
	app := newProgramApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/programs/", strings.NewReader(`{"type": "college"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProgramHandler_Delete(t *testing.T) {
	svc := &stubProgramService{}
	app := newProgramApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/programs/9", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(9), svc.lastID)
}

func TestProgramHandler_Delete_NotFound(t *testing.T) {
	svc := &stubProgramService{deleteErr: service.ErrProgramNotFound}
	app := newProgramApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/programs/9", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProgramHandler_Delete_BadID(t *testing.T) {
	app := newProgramApp(&stubProgramService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/programs/nine", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
