package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusevents_backend/internals/features/departments/dto"
	"campusevents_backend/internals/features/departments/model"
	helper "campusevents_backend/internals/helpers"
	"campusevents_backend/internals/helpers/media"
)

const departmentConflictMsg = "A department with this name or abbreviation already exists"

type DepartmentStore interface {
	List(ctx context.Context) ([]model.DepartmentModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.DepartmentModel, error)
	Create(ctx context.Context, d *model.DepartmentModel) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountEvents(ctx context.Context, id uuid.UUID) (int64, error)
}

type DepartmentService struct {
	repo  DepartmentStore
	media media.Storage
}

// NewDepartmentService; store may be nil when uploads are disabled.
func NewDepartmentService(repo DepartmentStore, store media.Storage) *DepartmentService {
	return &DepartmentService{repo: repo, media: store}
}

func (s *DepartmentService) List(ctx context.Context) ([]model.DepartmentModel, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, helper.ErrInternal("failed to list departments", err)
	}
	return list, nil
}

func (s *DepartmentService) Get(ctx context.Context, id uuid.UUID) (*model.DepartmentModel, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Department not found")
		}
		return nil, helper.ErrInternal("failed to load department", err)
	}
	return d, nil
}

func (s *DepartmentService) Create(ctx context.Context, req dto.CreateDepartmentRequest) (*model.DepartmentModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	d := req.ToModel()
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, wrapWriteErr(err, "failed to create department")
	}
	return d, nil
}

func (s *DepartmentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateDepartmentRequest) (*model.DepartmentModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	updates := req.ToUpdates()
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.ErrNotFound("Department not found")
		}
		return nil, wrapWriteErr(err, "failed to update department")
	}
	return s.Get(ctx, id)
}

// Delete refuses while events still reference the department.
func (s *DepartmentService) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.repo.CountEvents(ctx, id)
	if err != nil {
		return helper.ErrInternal("failed to count department events", err)
	}
	if n > 0 {
		return helper.ErrConflict("Department still has events and cannot be deleted")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrNotFound("Department not found")
		}
		return wrapWriteErr(err, "failed to delete department")
	}
	if s.media != nil {
		media.RemoveStoredImage(ctx, s.media, d.Image)
	}
	return nil
}

// UploadImage replaces the department image with the processed upload.
func (s *DepartmentService) UploadImage(ctx context.Context, id uuid.UUID, fh *multipart.FileHeader) (*model.DepartmentModel, error) {
	if s.media == nil {
		return nil, helper.ErrValidation("Image uploads are not configured")
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := media.SaveUploadedImage(ctx, s.media, "departments", fh)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"department_image": url}); err != nil {
		media.RemoveStoredImage(ctx, s.media, url)
		return nil, wrapWriteErr(err, "failed to save department image")
	}
	media.RemoveStoredImage(ctx, s.media, d.Image)
	d.Image = url
	return d, nil
}

func wrapWriteErr(err error, msg string) error {
	if t := helper.TranslateDBError(err, departmentConflictMsg); t != err {
		return t
	}
	return helper.ErrInternal(msg, err)
}
