package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runMiddleware(t *testing.T, ts *TokenService, setup func(*http.Request)) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		return c.NoContent(http.StatusOK)
	}

	err := ts.Middleware()(handler)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, handlerCalled
}

func TestMiddleware_ValidCookie(t *testing.T) {
	ts := NewTokenService("test-secret-key")
	token, err := ts.GenerateSessionToken(7, "alice")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		if GetUserID(c) != 7 {
			t.Errorf("user_id = %d, want 7", GetUserID(c))
		}
		if c.Get("username") != "alice" {
			t.Errorf("username = %v, want alice", c.Get("username"))
		}
		return c.NoContent(http.StatusOK)
	}

	if err := ts.Middleware()(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestMiddleware_BearerFallback(t *testing.T) {
	ts := NewTokenService("test-secret-key")
	token, err := ts.GenerateSessionToken(7, "alice")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error: %v", err)
	}

	rec, called := runMiddleware(t, ts, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	if !called {
		t.Error("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestMiddleware_MissingToken(t *testing.T) {
	ts := NewTokenService("test-secret-key")

	rec, called := runMiddleware(t, ts, nil)
	if called {
		t.Error("handler must not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	ts := NewTokenService("test-secret-key")

	rec, called := runMiddleware(t, ts, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-token"})
	})
	if called {
		t.Error("handler must not run with an invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	expired := &TokenService{secret: []byte("test-secret-key"), sessionExpiry: -1}
	token, err := expired.GenerateSessionToken(7, "alice")
	if err != nil {
		t.Fatalf("GenerateSessionToken() error: %v", err)
	}

	ts := NewTokenService("test-secret-key")
	rec, called := runMiddleware(t, ts, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	})
	if called {
		t.Error("handler must not run with an expired token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
