package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/campushub/user-directory/internal/core/policy"
)

const identityKey = "identity"

// ResolveIdentity parses the bearer credential, if any, into an explicit
// policy.Identity and attaches it to the request context. It never rejects
// a request: the result is three-way (absent, invalid, present) so the
// create-user flow can tell "no credential offered" apart from "credential
// offered but unusable". Routes that require authentication stack
// RequireIdentity on top.
func ResolveIdentity(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(identityKey, resolve(c.Request().Header.Get("Authorization"), jwtSecret))
			return next(c)
		}
	}
}

func resolve(authHeader, jwtSecret string) policy.Identity {
	if authHeader == "" {
		return policy.Anonymous
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return policy.Identity{State: policy.IdentityInvalid}
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return policy.Identity{State: policy.IdentityInvalid}
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return policy.Identity{State: policy.IdentityInvalid}
	}

	return policy.Identity{State: policy.IdentityPresent, Subject: sub}
}

// RequireIdentity rejects requests whose credential did not resolve to a
// subject.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch Identity(c).State {
			case policy.IdentityAbsent:
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			case policy.IdentityInvalid:
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			return next(c)
		}
	}
}

// Identity returns the identity resolved for this request. The zero value
// is an anonymous identity, so handlers behind neither middleware still get
// a well-formed result.
func Identity(c echo.Context) policy.Identity {
	ident, _ := c.Get(identityKey).(policy.Identity)
	return ident
}
