package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campushub/user-directory/internal/core/domain"
	"github.com/campushub/user-directory/internal/core/policy"
)

type stubAuthService struct {
	token string
	view  policy.View
	err   error

	gotUsername string
	gotPassword string
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (string, policy.View, error) {
	s.gotUsername, s.gotPassword = username, password
	return s.token, s.view, s.err
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{token: "tok", view: policy.View{ID: "u1", Username: "alice"}}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"username":"alice","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login handler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotUsername != "alice" || svc.gotPassword != "secret" {
		t.Fatalf("credentials not forwarded: %q/%q", svc.gotUsername, svc.gotPassword)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Token != "tok" || resp.User.Username != "alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodPost, "/auth/login", `{"username":"alice"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Login_ServiceErrorPropagates(t *testing.T) {
	svc := &stubAuthService{err: domain.ErrInvalidLogin}
	h := NewAuthHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/auth/login", `{"username":"alice","password":"nope"}`)
	if err := h.Login(c); err != domain.ErrInvalidLogin {
		t.Fatalf("expected service error passthrough, got %v", err)
	}
}
