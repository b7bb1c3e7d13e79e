package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tailorshop/internal/domain"
	authsvc "tailorshop/internal/service/auth"
)

func TestSignupHandler_Created(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{op: &domain.Operator{ID: "op-1", Email: "shop@example.com", ShopName: "Kazi Tailors"}}
	router := newTestRouter(t, deps)

	body := `{"email":"shop@example.com","password":"Abcdefg1","shopName":"Kazi Tailors"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"email":"shop@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Fatalf("password hash must not leak: %s", rec.Body.String())
	}
}

func TestSignupHandler_Validation(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{signupErr: &domain.ValidationError{Field: "email", Reason: "valid email required"}}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodPost, "/v1/signup", strings.NewReader(`{"email":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoginHandler_Tokens(t *testing.T) {
	router := newTestRouter(t, testDeps())

	body := `{"email":"shop@example.com","password":"Abcdefg1"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	for _, want := range []string{`"accessToken":"access"`, `"refreshToken":"refresh"`, `"expiresIn":3600`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("missing %s in body: %s", want, rec.Body.String())
		}
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{loginErr: authsvc.ErrInvalidCredentials}
	router := newTestRouter(t, deps)

	body := `{"email":"shop@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler(t *testing.T) {
	router := newTestRouter(t, testDeps())

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":"op-1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
