package provider

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestSearchEnvelope(t *testing.T) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))
	title := "Dr."
	repo.providers[uuid.New()] = &Provider{ID: uuid.New(), Title: &title, FirstName: "Sam", LastName: "Lee", Active: true}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/providers/search?activeOnly=true", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("search: %v", err)
	}
	var body struct {
		Providers     []DTO `json:"providers"`
		Page          int   `json:"page"`
		TotalPages    int   `json:"totalPages"`
		TotalElements int   `json:"totalElements"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Providers) != 1 || body.TotalElements != 1 {
		t.Fatalf("rows = %d, totalElements = %d", len(body.Providers), body.TotalElements)
	}
	if body.Providers[0].DisplayName != "Dr. Sam Lee" {
		t.Errorf("displayName = %q", body.Providers[0].DisplayName)
	}
	if repo.lastF.Active == nil || !*repo.lastF.Active {
		t.Error("activeOnly=true not passed through")
	}
}

func TestBoolParamUnparseable(t *testing.T) {
	repo := newMockRepo()
	h := NewHandler(NewService(repo))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/providers/search?inPracticeOnly=maybe", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Search(c); err != nil {
		t.Fatalf("search: %v", err)
	}
	if repo.lastF.InPractice != nil {
		t.Error("unparseable boolean should disable the filter")
	}
}

func TestGetProviderNotFound(t *testing.T) {
	h := NewHandler(NewService(newMockRepo()))
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
