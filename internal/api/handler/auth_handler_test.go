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

	"github.com/tariq-shuvo/social-media-rest-api/internal/core/domain"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, error) {
			if in.FirstName != "Alice" || in.LastName != "Liddell" || in.Email != "a@example.com" || in.Password != "secret1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"first_name":"Alice","last_name":"Liddell","email":"a@example.com","password":"secret1","confirm_password":"secret1"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/users", body), rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"first_name":"","last_name":"L","email":"nope","password":"123","confirm_password":"456"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/users", body), httptest.NewRecorder())

	err := handler.Register(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}

	got := map[string]string{}
	for _, f := range ve.Fields {
		got[f.Field] = f.Message
	}
	want := map[string]string{
		"first_name":       "First name should not be empty.",
		"email":            "Email should be in email format.",
		"password":         "Password should be 6 or more characters.",
		"confirm_password": "Password confirmation does not match password.",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Fatalf("field %s: expected %q, got %q (all: %+v)", field, msg, got[field], got)
		}
	}
	if _, ok := got["last_name"]; ok {
		t.Fatalf("last_name should have passed")
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, error) {
			return "", domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"first_name":"Bob","last_name":"B","email":"b@example.com","password":"secret1","confirm_password":"secret1"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/users", body), httptest.NewRecorder())

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/users", "not-json"), httptest.NewRecorder())

	err := handler.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret"}`), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token":"token123"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"bad"}`), httptest.NewRecorder())

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_EmptyPassword(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com"}`), httptest.NewRecorder())

	var ve *domain.ValidationError
	if err := handler.Login(c); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 1 || ve.Fields[0].Message != "Password should not be empty." {
		t.Fatalf("unexpected fields: %+v", ve.Fields)
	}
}

func TestAuthHandler_Me_OmitsPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			if userID != "u1" {
				t.Fatalf("unexpected caller: %q", userID)
			}
			return &domain.User{ID: "u1", FirstName: "Alice", Email: "a@example.com", PasswordHash: "$2a$hash"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth", nil), rec)
	c.Set("user_id", "u1")

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "$2a$hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"first_name":"Alice"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
