package handler

import "github.com/campushub/user-directory/internal/core/policy"

// Wire format notes: the role travels as "group" and the profile fields as
// "realname"/"studentId", matching the directory's original public API.

type createUserRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email" validate:"omitempty,email"`
	Group      string `json:"group"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Class      string `json:"class"`
	RealName   string `json:"realname"`
	StudentID  string `json:"studentId"`
}

// updateUserRequest is a partial update: nil means the field was absent and
// must leave the stored value untouched.
type updateUserRequest struct {
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Group      *string `json:"group"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Class      *string `json:"class"`
	RealName   *string `json:"realname"`
	StudentID  *string `json:"studentId"`
}

type createUserResponse struct {
	User  policy.View `json:"user"`
	Token string      `json:"token"`
}

type listUsersResponse struct {
	Users []policy.View `json:"users"`
	Total int           `json:"total"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  policy.View `json:"user"`
}
