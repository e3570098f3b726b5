package policy

import (
	"github.com/campushub/user-directory/internal/core/domain"
)

// Changes is a partial update of a user record. A nil field was absent from
// the request and leaves the stored value untouched; merge semantics are
// strictly non-destructive.
type Changes struct {
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

// Empty reports whether the change set carries no fields at all.
func (c Changes) Empty() bool {
	return c.Username == nil && c.Password == nil && c.Email == nil &&
		c.Role == nil && c.Phone == nil && c.Department == nil &&
		c.Class == nil && c.RealName == nil && c.StudentID == nil
}

// AuthorizeUpdate decides whether caller may apply the proposed changes to
// the record identified by targetID and returns the sanitized change set.
//
// A non-admin may only edit itself and may never grant itself admin. An
// admin may edit anyone, but real name and student id are stripped from its
// changes: those two fields are only settable at creation. Username and
// email are stripped unconditionally. For an authorized caller an empty
// change set succeeds and sanitizes to an empty change set.
func AuthorizeUpdate(caller Caller, targetID string, ch Changes) (Changes, error) {
	effective := domain.RoleUser
	if ch.Role != nil {
		effective = domain.ParseRole(*ch.Role)
	}

	if !caller.Admin {
		if caller.Subject != targetID || effective.IsAdmin() {
			return Changes{}, domain.ErrInsufficientPermission
		}
	} else {
		ch.RealName = nil
		ch.StudentID = nil
	}

	// Immutable after creation regardless of privilege.
	ch.Username = nil
	ch.Email = nil

	if ch.Role != nil {
		norm := string(effective)
		ch.Role = &norm
	}
	return ch, nil
}

// Merge applies a sanitized change set onto the stored record. passwordHash
// replaces the stored credential only when non-empty; a request that carried
// no password never clears or rehashes the stored hash.
func Merge(u *domain.User, ch Changes, passwordHash string) {
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	if ch.Role != nil {
		u.Role = domain.ParseRole(*ch.Role)
	}
	if ch.Phone != nil {
		u.Phone = *ch.Phone
	}
	if ch.Department != nil {
		u.Department = *ch.Department
	}
	if ch.Class != nil {
		u.Class = *ch.Class
	}
	if ch.RealName != nil {
		u.RealName = *ch.RealName
	}
	if ch.StudentID != nil {
		u.StudentID = *ch.StudentID
	}
}
