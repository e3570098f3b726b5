package ports

import (
	"context"

	"github.com/campushub/user-directory/internal/core/policy"
)

// AuthService issues session tokens for existing users.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, policy.View, error)
}
