package domain

import "time"

// Role is the coarse privilege class assigned to every user record.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole normalizes an arbitrary role string. Anything that is not
// exactly "admin" maps to RoleUser.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// IsAdmin reports whether the role carries elevated privilege.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User is the core aggregate root of the directory.
//
// Username and Email are globally unique and immutable after creation.
// StudentID is unique only among records with RoleUser. PasswordHash is
// write-only and never serialized.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Email        string    `json:"email" bson:"email"`
	Role         Role      `json:"role" bson:"role"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Department   string    `json:"department,omitempty" bson:"department,omitempty"`
	Class        string    `json:"class,omitempty" bson:"class,omitempty"`
	RealName     string    `json:"real_name,omitempty" bson:"real_name,omitempty"`
	StudentID    string    `json:"student_id,omitempty" bson:"student_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
