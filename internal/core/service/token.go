package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campushub/user-directory/internal/core/domain"
)

// TokenMinter issues HS256 session tokens for directory subjects. Both the
// login flow and the creation flow (which returns a token for the new
// record) share one minter.
type TokenMinter struct {
	secret string
	ttl    time.Duration
}

func NewTokenMinter(secret string, ttl time.Duration) *TokenMinter {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenMinter{secret: secret, ttl: ttl}
}

// Mint signs a token whose subject is the user's record id.
func (m *TokenMinter) Mint(u *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"role":     string(u.Role),
		"exp":      time.Now().Add(m.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(m.secret))
}
