package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/campushub/user-directory/internal/core/policy"
)

const testSecret = "test-secret"

func mintTestToken(t *testing.T, secret, sub string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func resolveRequest(t *testing.T, authHeader string) policy.Identity {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var got policy.Identity
	h := ResolveIdentity(testSecret)(func(c echo.Context) error {
		got = Identity(c)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("resolve middleware returned error: %v", err)
	}
	return got
}

func TestResolveIdentity_NoHeader(t *testing.T) {
	ident := resolveRequest(t, "")
	if ident.State != policy.IdentityAbsent {
		t.Fatalf("expected absent identity, got %+v", ident)
	}
}

func TestResolveIdentity_ValidToken(t *testing.T) {
	ident := resolveRequest(t, "Bearer "+mintTestToken(t, testSecret, "u42"))
	if ident.State != policy.IdentityPresent || ident.Subject != "u42" {
		t.Fatalf("expected present identity for u42, got %+v", ident)
	}
}

func TestResolveIdentity_InvalidCredentials(t *testing.T) {
	cases := map[string]string{
		"not bearer":     "Basic dXNlcjpwYXNz",
		"garbage token":  "Bearer not-a-jwt",
		"wrong secret":   "Bearer " + mintTestToken(t, "other-secret", "u42"),
		"missing sub":    "Bearer " + mintTestTokenNoSub(t),
		"no token part":  "Bearer",
	}
	for name, header := range cases {
		if ident := resolveRequest(t, header); ident.State != policy.IdentityInvalid {
			t.Errorf("%s: expected invalid identity, got %+v", name, ident)
		}
	}
}

func mintTestTokenNoSub(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestResolveIdentity_RejectsWrongAlgorithm(t *testing.T) {
	// An unsigned token must never resolve, even though its payload parses.
	claims := jwt.MapClaims{"sub": "u42", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if ident := resolveRequest(t, "Bearer "+token); ident.State != policy.IdentityInvalid {
		t.Fatalf("expected invalid identity for alg=none, got %+v", ident)
	}
}

func TestRequireIdentity(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	h := RequireIdentity()(next)

	cases := []struct {
		name   string
		ident  policy.Identity
		status int
	}{
		{"absent", policy.Anonymous, http.StatusUnauthorized},
		{"invalid", policy.Identity{State: policy.IdentityInvalid}, http.StatusUnauthorized},
		{"present", policy.Identity{State: policy.IdentityPresent, Subject: "u1"}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.Set(identityKey, tc.ident)

			err := h(c)
			if tc.status == http.StatusOK {
				if err != nil {
					t.Fatalf("expected pass-through, got %v", err)
				}
				return
			}
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != tc.status {
				t.Fatalf("expected %d, got %v", tc.status, err)
			}
		})
	}
}

func TestIdentity_ZeroValueIsAnonymous(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if ident := Identity(c); ident.State != policy.IdentityAbsent {
		t.Fatalf("expected anonymous fallback, got %+v", ident)
	}
}
