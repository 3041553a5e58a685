package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quintal/roomdesk/internal/auth"
)

func TestRequireRole_MissingToken(t *testing.T) {
	_, _, handler := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/bookings/abc", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	assertErrorCode(t, rec, "unauthorized")
}

func TestRequireRole_MalformedHeader(t *testing.T) {
	_, manager, handler := newRouter(t, nil)
	token, err := manager.Generate("user", auth.RoleOperator, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	for _, header := range []string{token, "Basic " + token, "Bearer ", "bearer " + token} {
		req := httptest.NewRequest(http.MethodGet, "/bookings/abc", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestRequireRole_InvalidToken(t *testing.T) {
	_, _, handler := newRouter(t, nil)

	other := auth.NewManager("different-secret")
	token, err := other.Generate("user", auth.RoleOperator, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/bookings/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_ExpiredToken(t *testing.T) {
	_, manager, handler := newRouter(t, nil)
	token, err := manager.Generate("user", auth.RoleOperator, -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/bookings/abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_OperatorCannotAdminister(t *testing.T) {
	_, manager, handler := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/hotels", strings.NewReader(`{"name":"Hotel"}`))
	req.Header.Set("Authorization", bearer(t, manager, auth.RoleOperator))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	assertErrorCode(t, rec, "forbidden")
}

func TestRequireRole_AdminCanOperate(t *testing.T) {
	_, manager, handler := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/bookings/abc", nil)
	req.Header.Set("Authorization", bearer(t, manager, auth.RoleAdmin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	_, _, handler := newRouter(t, nil)

	for _, path := range []string{"/health", "/events"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
