package ports

import (
	"context"

	"github.com/campushub/user-directory/internal/core/policy"
)

// CreateUserInput carries all data needed to create a new user record.
// Role defaults to "user" when empty or unrecognized.
type CreateUserInput struct {
	Username   string
	Password   string
	Email      string
	Role       string
	Phone      string
	Department string
	Class      string
	RealName   string
	StudentID  string
}

// UpdateUserInput is a partial update: a nil field was absent from the
// request and leaves the stored value untouched.
type UpdateUserInput struct {
	Username   *string
	Password   *string
	Email      *string
	Role       *string
	Phone      *string
	Department *string
	Class      *string
	RealName   *string
	StudentID  *string
}

// CreateUserResult is returned after a successful creation: the redacted
// view of the new record plus a session token issued for it.
type CreateUserResult struct {
	User  policy.View
	Token string
}

// UserService defines the use-case operations of the directory. Every
// operation receives the caller's resolved identity explicitly.
type UserService interface {
	List(ctx context.Context, ident policy.Identity) ([]policy.View, error)
	Get(ctx context.Context, ident policy.Identity, id string) (policy.View, error)
	Create(ctx context.Context, ident policy.Identity, in CreateUserInput) (*CreateUserResult, error)
	Update(ctx context.Context, ident policy.Identity, id string, in UpdateUserInput) (policy.View, error)
	Delete(ctx context.Context, ident policy.Identity, id string) error
}
