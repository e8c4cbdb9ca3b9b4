package dto

import (
	helper "campusevents_backend/internals/helpers"
)

type LoginRequest struct {
	UserName string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.UserName = helper.NormalizeText(r.UserName)
}

// RegisterRequest is the student self-registration form.
type RegisterRequest struct {
	UserName     string `json:"user_name" validate:"required,min=3,max=50"`
	Password     string `json:"password" validate:"required,min=6,max=72"`
	FullName     string `json:"full_name" validate:"required,min=2,max=150"`
	Email        string `json:"email" validate:"required,email,max=255"`
	StudentID    string `json:"student_id" validate:"required,max=50"`
	DepartmentID string `json:"department_id" validate:"required,uuid"`
}

func (r *RegisterRequest) Normalize() {
	r.UserName = helper.NormalizeText(r.UserName)
	r.FullName = helper.NormalizeText(r.FullName)
	r.Email = helper.NormalizeEmail(r.Email)
	r.StudentID = helper.NormalizeText(r.StudentID)
	r.DepartmentID = helper.NormalizeText(r.DepartmentID)
}

// CreateAdminRequest is used by an admin to add another admin.
type CreateAdminRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

func (r *CreateAdminRequest) Normalize() {
	r.UserName = helper.NormalizeText(r.UserName)
	r.FullName = helper.NormalizeText(r.FullName)
	r.Email = helper.NormalizeEmail(r.Email)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6,max=72"`
}
