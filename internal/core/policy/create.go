package policy

import (
	"context"

	"github.com/campushub/user-directory/internal/core/domain"
)

// CreateInput carries the proposed attributes of a new user record.
type CreateInput struct {
	Username   string
	Password   string
	Email      string
	Role       domain.Role
	Phone      string
	Department string
	Class      string
	RealName   string
	StudentID  string
}

// UniquenessSource answers the existence questions the conflict checks need.
// StudentIDExists counts only records with role "user"; admins may share a
// student id with anyone.
type UniquenessSource interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	StudentIDExists(ctx context.Context, studentID string) (bool, error)
}

// AuthorizeCreate guards privilege escalation at creation. Requesting any
// role other than admin is always allowed, anonymously. Minting an admin
// requires a presented, valid credential whose subject already holds admin;
// the three failure modes stay distinct so the transport can name them.
func AuthorizeCreate(ctx context.Context, requested domain.Role, ident Identity, oracle RoleOracle) error {
	if !requested.IsAdmin() {
		return nil
	}
	switch ident.State {
	case IdentityAbsent:
		return domain.ErrCredentialRequired
	case IdentityInvalid:
		return domain.ErrInvalidCredential
	}
	isAdmin, err := oracle.HasRole(ctx, ident.Subject, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if !isAdmin {
		return domain.ErrInsufficientPermission
	}
	return nil
}

// CheckComplete verifies the payload has every field its declared role
// requires. Username, password and email are always required; role "user"
// additionally requires phone, department, class, real name and student id.
// An empty string counts as missing.
func CheckComplete(in CreateInput) error {
	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	require("username", in.Username)
	require("password", in.Password)
	require("email", in.Email)
	if !in.Role.IsAdmin() {
		require("phone", in.Phone)
		require("department", in.Department)
		require("class", in.Class)
		require("realname", in.RealName)
		require("studentId", in.StudentID)
	}

	if len(missing) > 0 {
		return &domain.IncompleteError{Missing: missing}
	}
	return nil
}

// CheckConflicts detects uniqueness collisions for a creation payload.
// Precedence is deterministic and short-circuiting: username, then email,
// then student id. The student id check runs only when the proposed role is
// "user" and only against role "user" records.
func CheckConflicts(ctx context.Context, src UniquenessSource, in CreateInput) error {
	if exists, err := src.UsernameExists(ctx, in.Username); err != nil {
		return err
	} else if exists {
		return &domain.ConflictError{Field: "username"}
	}

	if exists, err := src.EmailExists(ctx, in.Email); err != nil {
		return err
	} else if exists {
		return &domain.ConflictError{Field: "email"}
	}

	if !in.Role.IsAdmin() {
		if exists, err := src.StudentIDExists(ctx, in.StudentID); err != nil {
			return err
		} else if exists {
			return &domain.ConflictError{Field: "studentId"}
		}
	}
	return nil
}

// AuthorizeDelete restricts hard deletion to admins.
func AuthorizeDelete(caller Caller) error {
	if !caller.Admin {
		return domain.ErrInsufficientPermission
	}
	return nil
}
