package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campushub/user-directory/internal/core/domain"
	"github.com/campushub/user-directory/internal/core/policy"
	"github.com/campushub/user-directory/internal/core/ports"
)

// stubUserService records the inputs it receives and returns canned results.
type stubUserService struct {
	lastIdent  policy.Identity
	lastID     string
	lastCreate ports.CreateUserInput
	lastUpdate ports.UpdateUserInput

	views  []policy.View
	view   policy.View
	result *ports.CreateUserResult
	err    error
}

func (s *stubUserService) List(_ context.Context, ident policy.Identity) ([]policy.View, error) {
	s.lastIdent = ident
	return s.views, s.err
}

func (s *stubUserService) Get(_ context.Context, ident policy.Identity, id string) (policy.View, error) {
	s.lastIdent, s.lastID = ident, id
	return s.view, s.err
}

func (s *stubUserService) Create(_ context.Context, ident policy.Identity, in ports.CreateUserInput) (*ports.CreateUserResult, error) {
	s.lastIdent, s.lastCreate = ident, in
	return s.result, s.err
}

func (s *stubUserService) Update(_ context.Context, ident policy.Identity, id string, in ports.UpdateUserInput) (policy.View, error) {
	s.lastIdent, s.lastID, s.lastUpdate = ident, id, in
	return s.view, s.err
}

func (s *stubUserService) Delete(_ context.Context, ident policy.Identity, id string) error {
	s.lastIdent, s.lastID = ident, id
	return s.err
}

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUserHandler_Create(t *testing.T) {
	svc := &stubUserService{
		result: &ports.CreateUserResult{
			User: policy.View{
				ID:        "u1",
				Username:  "alice",
				Role:      domain.RoleUser,
				Email:     "a@x.com",
				Phone:     "1",
				RealName:  "Alice",
				StudentID: "S1",
				CreatedAt: time.Now().UTC(),
				UpdatedAt: time.Now().UTC(),
			},
			Token: "tok123",
		},
	}
	h := NewUserHandler(svc)

	body := `{"username":"alice","password":"p","email":"a@x.com","group":"user","phone":"1","department":"CS","class":"1A","realname":"Alice","studentId":"S1"}`
	c, rec := newTestContext(http.MethodPost, "/v1/users", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("create handler failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/v1/users/u1" {
		t.Fatalf("wrong Location header: %q", loc)
	}

	if svc.lastCreate.Role != "user" || svc.lastCreate.StudentID != "S1" {
		t.Fatalf("request not mapped: %+v", svc.lastCreate)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if string(resp["token"]) != `"tok123"` {
		t.Fatalf("token missing: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked in response: %s", rec.Body.String())
	}
}

func TestUserHandler_Create_BadJSON(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	c, _ := newTestContext(http.MethodPost, "/v1/users", `{"username":`)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Create_InvalidEmail(t *testing.T) {
	h := NewUserHandler(&stubUserService{})
	c, _ := newTestContext(http.MethodPost, "/v1/users", `{"username":"a","password":"p","email":"not-an-email"}`)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestUserHandler_Create_ServiceErrorPropagates(t *testing.T) {
	svc := &stubUserService{err: &domain.ConflictError{Field: "username"}}
	h := NewUserHandler(svc)
	c, _ := newTestContext(http.MethodPost, "/v1/users", `{"username":"a","password":"p","email":"a@x.com"}`)

	// The central error handler owns the status mapping; the handler just
	// forwards the service error untouched.
	if err := h.Create(c); err != svc.err {
		t.Fatalf("expected service error passthrough, got %v", err)
	}
}

func TestUserHandler_Update_PartialBody(t *testing.T) {
	svc := &stubUserService{view: policy.View{ID: "u1", Phone: "555"}}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPut, "/v1/users/u1", `{"phone":"555"}`)
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.Update(c); err != nil {
		t.Fatalf("update handler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastID != "u1" {
		t.Fatalf("target id not forwarded: %q", svc.lastID)
	}
	// Absent fields must map to nil, not empty strings.
	if svc.lastUpdate.Phone == nil || *svc.lastUpdate.Phone != "555" {
		t.Fatalf("phone not mapped: %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Password != nil || svc.lastUpdate.Username != nil {
		t.Fatalf("absent fields mapped as present: %+v", svc.lastUpdate)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodDelete, "/v1/users/u1", "")
	c.SetParamNames("id")
	c.SetParamValues("u1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete handler failed: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.lastID != "u1" {
		t.Fatalf("target id not forwarded: %q", svc.lastID)
	}
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{views: []policy.View{{ID: "u1"}, {ID: "u2"}}}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodGet, "/v1/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list handler failed: %v", err)
	}

	var resp listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Total != 2 || len(resp.Users) != 2 {
		t.Fatalf("unexpected list payload: %+v", resp)
	}
}
