package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Abh1nav7/AgenticSprint/internal/core/domain"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, name, email, password string) (string, *domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	return s.signupFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(_ context.Context, name, email, password string) (string, *domain.User, error) {
			if name != "A" || email != "a@x.com" || password != "p" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return "tok", &domain.User{ID: 1, Name: name, Email: email}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/auth/signup", `{"name":"A","email":"a@x.com","password":"p"}`)
	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	if resp["access_token"] != "tok" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "1" || user["email"] != "a@x.com" || user["name"] != "A" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, ok := user["bio"]; ok {
		t.Fatalf("signup user must not carry profile fields: %+v", user)
	}
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := jsonContext(e, http.MethodPost, "/auth/signup", `{"name":"A","email":"not-an-email","password":"p"}`)
	err := handler.Signup(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "email must be a valid email") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestAuthHandler_Signup_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(context.Context, string, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/auth/signup", `{"name":"A","email":"a@x.com","password":"p"}`)
	if err := handler.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	bio := "hello"
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "tok", &domain.User{ID: 9, Name: "A", Email: email, Bio: &bio}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"p"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeBody(t, rec)
	user := resp["user"].(map[string]any)
	if user["id"] != "9" || user["bio"] != "hello" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if v, ok := user["lastUpdated"]; !ok || v != nil {
		t.Fatalf("expected lastUpdated null, got %v", v)
	}
	if v, ok := user["avatarUrl"]; !ok || v != nil {
		t.Fatalf("expected avatarUrl null, got %v", v)
	}
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c, _ := jsonContext(e, http.MethodPost, "/auth/login", `{"email":"not-an-email","password":"p"}`)
	err := handler.Login(c)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "email must be a valid email") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	cases := []error{domain.ErrUserNotFound, domain.ErrInvalidCredentials}
	for _, want := range cases {
		e := newTestEcho()
		stub := &stubAuthService{
			loginFn: func(context.Context, string, string) (string, *domain.User, error) {
				return "", nil, want
			},
		}
		handler := NewAuthHandler(stub)

		c, _ := jsonContext(e, http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"p"}`)
		if err := handler.Login(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := jsonContext(e, http.MethodPost, "/auth/logout", "")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decodeBody(t, rec); resp["detail"] != "Successfully logged out" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.HasPrefix(cookie, "Authorization=") || !strings.Contains(cookie, "Max-Age=0") {
		t.Fatalf("expected expired Authorization cookie, got %q", cookie)
	}
}
