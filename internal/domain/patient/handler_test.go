package patient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func setupHandler() (*Handler, *mockRepo) {
	repo := newMockRepo()
	return NewHandler(NewService(repo)), repo
}

func seedPatient(repo *mockRepo, first, last string) *Patient {
	email := "jane@example.com"
	dob := time.Date(1985, time.March, 15, 0, 0, 0, 0, time.UTC)
	p := &Patient{FirstName: first, LastName: last, DOB: &dob, Email: &email}
	_ = repo.Create(context.Background(), p)
	return p
}

func TestSearchEnvelope(t *testing.T) {
	h, repo := setupHandler()
	seedPatient(repo, "Jane", "Doe")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/search?page=0&size=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("search: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Patients      []map[string]interface{} `json:"patients"`
		Page          int                      `json:"page"`
		TotalPages    int                      `json:"totalPages"`
		TotalElements int                      `json:"totalElements"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Page != 0 || body.TotalPages != 1 || body.TotalElements != 1 {
		t.Errorf("envelope = page %d, totalPages %d, totalElements %d", body.Page, body.TotalPages, body.TotalElements)
	}
	if len(body.Patients) != 1 {
		t.Fatalf("rows = %d", len(body.Patients))
	}
	row := body.Patients[0]
	if row["dob"] != "03/15/1985" {
		t.Errorf("dob = %v", row["dob"])
	}
	// Absent optional fields come back as empty strings, never null.
	if row["phone"] != "" || row["city"] != "" {
		t.Errorf("nil fields not blanked: phone=%v city=%v", row["phone"], row["city"])
	}
}

func TestGetPatientNotFound(t *testing.T) {
	h, _ := setupHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestGetPatientBadID(t *testing.T) {
	h, _ := setupHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCreatePatient(t *testing.T) {
	h, repo := setupHandler()
	e := echo.New()
	payload := `{"firstName":"Jane","lastName":"Doe","dob":"03/15/1985","gender":"F"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.patients) != 1 {
		t.Fatalf("patients stored = %d", len(repo.patients))
	}
	var dto DTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dto.DOB != "03/15/1985" {
		t.Errorf("dob = %q", dto.DOB)
	}
	if dto.MiddleName != "" {
		t.Errorf("middleName should be empty string, got %q", dto.MiddleName)
	}
}

func TestCreatePatientValidationError(t *testing.T) {
	h, _ := setupHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(`{"firstName":"Jane"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCreatePatientStorageError(t *testing.T) {
	h, repo := setupHandler()
	repo.createErr = errors.New("pq: disk full")

	e := echo.New()
	payload := `{"firstName":"Jane","lastName":"Doe","dob":"03/15/1985"}`
	req := httptest.NewRequest(http.MethodPost, "/api/patients", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v", err)
	}
	// The raw storage error must not leak to the client.
	if msg, _ := he.Message.(string); strings.Contains(msg, "disk full") {
		t.Errorf("message leaks storage detail: %q", msg)
	}
}

func TestUpdatePatient(t *testing.T) {
	h, repo := setupHandler()
	p := seedPatient(repo, "Jane", "Doe")

	e := echo.New()
	payload := `{"firstName":"Jane","lastName":"Smith","dob":"03/15/1985"}`
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if repo.patients[p.ID].LastName != "Smith" {
		t.Errorf("lastName = %q", repo.patients[p.ID].LastName)
	}
	if repo.patients[p.ID].Email != nil {
		t.Errorf("omitted email should be cleared")
	}
}
