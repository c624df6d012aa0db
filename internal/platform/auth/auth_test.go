package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	tok, err := issuer.Issue("jsmith", "staff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := issuer.Parse(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "jsmith" {
		t.Errorf("expected subject jsmith, got %s", claims.Subject)
	}
	if claims.Role != "staff" {
		t.Errorf("expected role staff, got %s", claims.Role)
	}
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret-a"), time.Hour)
	tok, _ := issuer.Issue("jsmith", "staff")

	other := NewTokenIssuer([]byte("secret-b"), time.Hour)
	if _, err := other.Parse(tok); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)
	tok, _ := issuer.Issue("jsmith", "staff")
	if _, err := issuer.Parse(tok); err == nil {
		t.Error("expected error for expired token")
	}
}

func authedContext(e *echo.Echo, issuer *TokenIssuer, username, role string) echo.Context {
	tok, _ := issuer.Issue(username, role)
	req := httptest.NewRequest(http.MethodGet, "/api/patients/search", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestMiddleware_SetsIdentity(t *testing.T) {
	e := echo.New()
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	c := authedContext(e, issuer, "jsmith", "staff")

	var gotUser, gotRole string
	handler := Middleware(issuer)(func(c echo.Context) error {
		gotUser = UsernameFromContext(c.Request().Context())
		gotRole = RoleFromContext(c.Request().Context())
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUser != "jsmith" || gotRole != "staff" {
		t.Errorf("expected jsmith/staff, got %s/%s", gotUser, gotRole)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/api/patients/search", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Middleware(issuer)(func(c echo.Context) error { return nil })
	err := handler(c)
	if err == nil {
		t.Fatal("expected error for missing header")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_PublicPathSkipsAuth(t *testing.T) {
	e := echo.New()
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	called := false
	handler := Middleware(issuer)(func(c echo.Context) error {
		called = true
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected handler to run without credentials on public path")
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	run := func(role string, required ...string) error {
		c := authedContext(e, issuer, "u", role)
		inner := Middleware(issuer)(RequireRole(required...)(func(c echo.Context) error { return nil }))
		return inner(c)
	}

	if err := run("staff", "staff"); err != nil {
		t.Errorf("staff should pass staff gate: %v", err)
	}
	if err := run("admin", "staff"); err != nil {
		t.Errorf("admin should pass every gate: %v", err)
	}
	err := run("staff", "admin")
	if err == nil {
		t.Fatal("staff should not pass admin gate")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}
