package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestCreateAppointmentEnvelope(t *testing.T) {
	svc, repo, dir := setup()
	providerID, patientID := seedParties(dir)
	h := NewHandler(svc)

	e := echo.New()
	payload := fmt.Sprintf(`{"providerId":%q,"patientId":%q,"date":"2026-09-01","timeStart":"09:00","timeEnd":"09:30"}`, providerID, patientID)
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool      `json:"success"`
		ID      uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.ID == uuid.Nil {
		t.Errorf("envelope = %+v", body)
	}
	if len(repo.appts) != 1 {
		t.Errorf("stored = %d", len(repo.appts))
	}
}

func TestCreateAppointmentReferentialFailure(t *testing.T) {
	svc, repo, dir := setup()
	_, patientID := seedParties(dir)
	h := NewHandler(svc)

	e := echo.New()
	payload := fmt.Sprintf(`{"providerId":%q,"patientId":%q,"date":"2026-09-01","timeStart":"09:00","timeEnd":"09:30"}`, uuid.New(), patientID)
	req := httptest.NewRequest(http.MethodPost, "/api/schedule", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error != "provider not found" {
		t.Errorf("envelope = %+v", body)
	}
	if len(repo.appts) != 0 {
		t.Error("appointment count changed")
	}
}

func TestUpdateAppointmentStorageError(t *testing.T) {
	svc, repo, dir := setup()
	providerID, patientID := seedParties(dir)
	a := createAppt(t, svc, providerID, patientID, "2026-09-01")
	repo.getErr = errors.New("connection refused")
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"status":"arrived"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error != "update failed" {
		t.Errorf("envelope = %+v", body)
	}
}

func TestDeleteMissingReturns404(t *testing.T) {
	svc, _, _ := setup()
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
}

func TestGetAppointmentDTO(t *testing.T) {
	svc, _, dir := setup()
	providerID, patientID := seedParties(dir)
	a := createAppt(t, svc, providerID, patientID, "2026-09-01")
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.GetAppointment(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	var dto DTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.Date != "2026-09-01" || dto.TimeStart != "09:00" || dto.Duration != 15 {
		t.Errorf("dto = %+v", dto)
	}
}

func TestScheduleEndpoint(t *testing.T) {
	svc, _, dir := setup()
	providerID, patientID := seedParties(dir)
	createAppt(t, svc, providerID, patientID, "2026-09-03")
	h := NewHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/schedule/provider/x?start=2026-09-01T00:00:00&end=2026-09-07T00:00:00", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("providerId")
	c.SetParamValues(providerID.String())

	if err := h.Schedule(c); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	var events []Event
	if err := json.Unmarshal(rec.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Jane Doe" {
		t.Fatalf("events = %+v", events)
	}
}

func TestCreateRoomRequiresName(t *testing.T) {
	svc, _, _ := setup()
	if err := svc.CreateRoom(context.Background(), &Room{}); err == nil {
		t.Fatal("expected validation error")
	}
}
