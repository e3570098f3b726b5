package ports

import (
	"context"

	"github.com/campushub/user-directory/internal/core/domain"
)

// UserRepository defines persistence operations for user records. It also
// satisfies policy.UniquenessSource so the conflict checks can run against
// live storage.
//
// The existence checks and the subsequent Create are two separate steps; the
// storage layer is expected to hold unique indexes as the authoritative
// backstop for the check-then-act window.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// StudentIDExists counts only records with role "user".
	StudentIDExists(ctx context.Context, studentID string) (bool, error)
}
