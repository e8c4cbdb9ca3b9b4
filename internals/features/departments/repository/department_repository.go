package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusevents_backend/internals/features/departments/model"
)

type DepartmentRepository struct {
	DB *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{DB: db}
}

func (r *DepartmentRepository) List(ctx context.Context) ([]model.DepartmentModel, error) {
	var out []model.DepartmentModel
	err := r.DB.WithContext(ctx).Order("department_name ASC").Find(&out).Error
	return out, err
}

// FindByID returns gorm.ErrRecordNotFound when missing.
func (r *DepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.DepartmentModel, error) {
	var d model.DepartmentModel
	if err := r.DB.WithContext(ctx).First(&d, "department_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) Create(ctx context.Context, d *model.DepartmentModel) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *DepartmentRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&model.DepartmentModel{}).
		Where("department_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&model.DepartmentModel{}, "department_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountEvents counts events still pointing at the department.
func (r *DepartmentRepository) CountEvents(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Table("events").
		Where("event_department_id = ?", id).
		Count(&n).Error
	return n, err
}

// InsertMissing inserts departments whose abbreviation is not yet present.
// It returns how many rows were actually inserted.
func (r *DepartmentRepository) InsertMissing(ctx context.Context, list []model.DepartmentModel) (int64, error) {
	if len(list) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&list)
	return res.RowsAffected, res.Error
}
