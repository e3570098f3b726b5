package policy

import (
	"time"

	"github.com/campushub/user-directory/internal/core/domain"
)

// View is the redacted projection of a user record returned to callers.
// The password hash has no field here at all, so it can never leak through
// serialization.
type View struct {
	ID         string      `json:"id"`
	Username   string      `json:"username"`
	Role       domain.Role `json:"group"`
	Email      string      `json:"email"`
	Department string      `json:"department,omitempty"`
	Class      string      `json:"class,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	RealName   string      `json:"realname,omitempty"`
	StudentID  string      `json:"studentId,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Redact projects a user record into the view the caller is allowed to see.
// Identifier, username, role, email, department and class are always
// included. Phone, real name and student id are included only when the
// caller holds admin or is the target itself. The projection is pure and is
// applied identically when listing many records and when fetching one.
func Redact(caller Caller, target *domain.User) View {
	v := View{
		ID:         target.ID,
		Username:   target.Username,
		Role:       target.Role,
		Email:      target.Email,
		Department: target.Department,
		Class:      target.Class,
		CreatedAt:  target.CreatedAt,
		UpdatedAt:  target.UpdatedAt,
	}
	if caller.Admin || caller.Subject == target.ID {
		v.Phone = target.Phone
		v.RealName = target.RealName
		v.StudentID = target.StudentID
	}
	return v
}
