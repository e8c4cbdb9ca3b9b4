package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusevents_backend/internals/constants"
	deptModel "campusevents_backend/internals/features/departments/model"
	"campusevents_backend/internals/features/users/user/dto"
	"campusevents_backend/internals/features/users/user/model"
	helper "campusevents_backend/internals/helpers"
)

type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	FindConflicts(ctx context.Context, username, email, studentID string) ([]model.UserModel, error)
	UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error
	List(ctx context.Context, role string, p helper.Params) ([]model.UserModel, int64, error)
}

type DepartmentLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*deptModel.DepartmentModel, error)
}

type UserService struct {
	users       UserStore
	departments DepartmentLookup
}

func NewUserService(users UserStore, departments DepartmentLookup) *UserService {
	return &UserService{users: users, departments: departments}
}

func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("User not found")
		}
		return nil, helper.ErrInternal("failed to load user", err)
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req dto.UpdateProfileRequest) (*model.UserModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return s.Profile(ctx, id)
	}

	email, studentID := "", ""
	if req.Email != nil {
		email = *req.Email
	}
	if req.StudentID != nil {
		studentID = *req.StudentID
	}
	if err := s.ensureNoConflict(ctx, id, email, studentID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.StudentID != nil {
		if *req.StudentID == "" {
			updates["student_id"] = nil
		} else {
			updates["student_id"] = *req.StudentID
		}
	}
	if req.DepartmentID != nil {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return nil, helper.ErrValidation("department_id must be a valid id")
		}
		if _, err := s.departments.FindByID(ctx, deptID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, helper.ErrValidation("Department not found")
			}
			return nil, helper.ErrInternal("failed to load department", err)
		}
		updates["department_id"] = deptID
	}

	if err := s.users.UpdateFields(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("User not found")
		}
		if t := helper.TranslateDBError(err, "Email or student ID already registered"); t != err {
			return nil, t
		}
		return nil, helper.ErrInternal("failed to update profile", err)
	}
	return s.Profile(ctx, id)
}

func (s *UserService) ensureNoConflict(ctx context.Context, self uuid.UUID, email, studentID string) error {
	if email == "" && studentID == "" {
		return nil
	}
	found, err := s.users.FindConflicts(ctx, "", email, studentID)
	if err != nil {
		return helper.ErrInternal("failed to check profile conflicts", err)
	}
	for _, u := range found {
		if u.ID == self {
			continue
		}
		if email != "" && u.Email == email {
			return helper.ErrConflict("Email already registered")
		}
		if studentID != "" && u.StudentIDValue() == studentID {
			return helper.ErrConflict("Student ID already registered")
		}
	}
	return nil
}

// List returns one page of users, optionally only those of role.
func (s *UserService) List(ctx context.Context, role string, p helper.Params) ([]model.UserModel, int64, error) {
	if role != "" && !constants.IsValidRole(role) {
		return nil, 0, helper.ErrValidation("role must be admin or student")
	}
	list, total, err := s.users.List(ctx, role, p)
	if err != nil {
		return nil, 0, helper.ErrInternal("failed to list users", err)
	}
	return list, total, nil
}
