package dto

import (
	"time"

	"github.com/google/uuid"

	deptDTO "campusevents_backend/internals/features/departments/dto"
	"campusevents_backend/internals/features/users/user/model"
	helper "campusevents_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// UpdateProfileRequest is a partial update; nil pointers are left untouched.
type UpdateProfileRequest struct {
	FullName     *string `json:"full_name" validate:"omitempty,min=2,max=150"`
	Email        *string `json:"email" validate:"omitempty,email,max=255"`
	DepartmentID *string `json:"department_id" validate:"omitempty,uuid"`
	StudentID    *string `json:"student_id" validate:"omitempty,min=1,max=50"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.FullName != nil {
		*r.FullName = helper.NormalizeText(*r.FullName)
	}
	if r.Email != nil {
		*r.Email = helper.NormalizeEmail(*r.Email)
	}
	if r.DepartmentID != nil {
		*r.DepartmentID = helper.NormalizeText(*r.DepartmentID)
	}
	if r.StudentID != nil {
		*r.StudentID = helper.NormalizeText(*r.StudentID)
	}
}

func (r *UpdateProfileRequest) IsEmpty() bool {
	return r.FullName == nil && r.Email == nil && r.DepartmentID == nil && r.StudentID == nil
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type UserResponse struct {
	ID              uuid.UUID                `json:"id"`
	UserName        string                   `json:"user_name"`
	FullName        string                   `json:"full_name"`
	Email           string                   `json:"email"`
	Role            string                   `json:"role"`
	StudentID       *string                  `json:"student_id,omitempty"`
	Department      *deptDTO.DepartmentBrief `json:"department,omitempty"`
	DepartmentLabel string                   `json:"department_label,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

func FromModel(u *model.UserModel) UserResponse {
	out := UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		StudentID: u.StudentID,
		CreatedAt: u.CreatedAt,
	}
	if u.Department != nil {
		out.Department = deptDTO.BriefFromModel(u.Department)
		out.DepartmentLabel = u.Department.Label()
	}
	return out
}

func FromModels(list []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}
