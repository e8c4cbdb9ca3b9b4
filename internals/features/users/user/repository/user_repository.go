package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusevents_backend/internals/features/users/user/model"
	helper "campusevents_backend/internals/helpers"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindByID returns gorm.ErrRecordNotFound when missing.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := r.DB.WithContext(ctx).Preload("Department").First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.UserModel, error) {
	var u model.UserModel
	if err := r.DB.WithContext(ctx).Preload("Department").Where("user_name = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindConflicts returns every user sharing the username, email or student id in one query.
// Empty arguments are ignored.
func (r *UserRepository) FindConflicts(ctx context.Context, username, email, studentID string) ([]model.UserModel, error) {
	var (
		conds []string
		args  []any
	)
	if username != "" {
		conds = append(conds, "user_name = ?")
		args = append(args, username)
	}
	if email != "" {
		conds = append(conds, "email = ?")
		args = append(args, email)
	}
	if studentID != "" {
		conds = append(conds, "student_id = ?")
		args = append(args, studentID)
	}
	if len(conds) == 0 {
		return nil, nil
	}

	var out []model.UserModel
	err := r.DB.WithContext(ctx).
		Select("id", "user_name", "email", "student_id").
		Where(strings.Join(conds, " OR "), args...).
		Limit(3).
		Find(&out).Error
	return out, err
}

func (r *UserRepository) Create(ctx context.Context, u *model.UserModel) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(u).Error
}

// InsertIfMissing inserts u unless the username or email is already taken.
func (r *UserRepository) InsertIfMissing(ctx context.Context, u *model.UserModel) (bool, error) {
	res := r.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(u)
	return res.RowsAffected > 0, res.Error
}

func (r *UserRepository) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&model.UserModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	return r.UpdateFields(ctx, id, map[string]any{"password": hash})
}

// userSortColumns whitelists ?sort_by for List.
var userSortColumns = map[string]string{
	"name":       "full_name",
	"username":   "user_name",
	"created_at": "created_at",
}

// List returns one page of users and the total; role "" means all roles.
func (r *UserRepository) List(ctx context.Context, role string, p helper.Params) ([]model.UserModel, int64, error) {
	base := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&model.UserModel{})
		if role != "" {
			q = q.Where("role = ?", role)
		}
		return q
	}
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []model.UserModel
	err := base().Preload("Department").
		Order(p.OrderClause(userSortColumns, "name")).
		Order("user_name ASC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&out).Error
	return out, total, err
}
