package service

import (
	"context"
	"errors"

	"github.com/campushub/user-directory/internal/core/domain"
	"github.com/campushub/user-directory/internal/core/ports"
)

// RepoRoleOracle answers role questions from the user repository. The role
// stored on the record is authoritative; token claims are never trusted for
// privilege checks.
type RepoRoleOracle struct {
	repo ports.UserRepository
}

func NewRepoRoleOracle(repo ports.UserRepository) *RepoRoleOracle {
	return &RepoRoleOracle{repo: repo}
}

// HasRole reports whether the subject currently holds role. An unknown
// subject holds no roles; storage failures propagate.
func (o *RepoRoleOracle) HasRole(ctx context.Context, subjectID string, role domain.Role) (bool, error) {
	u, err := o.repo.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.Role == role, nil
}
