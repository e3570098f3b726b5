package handler

import "github.com/campushub/user-directory/internal/core/ports"

func toCreateInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		Role:       req.Group,
		Phone:      req.Phone,
		Department: req.Department,
		Class:      req.Class,
		RealName:   req.RealName,
		StudentID:  req.StudentID,
	}
}

func toUpdateInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		Role:       req.Group,
		Phone:      req.Phone,
		Department: req.Department,
		Class:      req.Class,
		RealName:   req.RealName,
		StudentID:  req.StudentID,
	}
}
