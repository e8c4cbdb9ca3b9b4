package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	deptModel "campusevents_backend/internals/features/departments/model"
)

// UserModel maps the users table. Password only ever holds a bcrypt hash.
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName     string     `gorm:"column:user_name;size:50;not null" json:"user_name"`
	Password     string     `gorm:"not null" json:"-"`
	Role         string     `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	FullName     string     `gorm:"column:full_name;size:150;not null" json:"full_name"`
	Email        string     `gorm:"size:255;not null" json:"email"`
	DepartmentID *uuid.UUID `gorm:"column:department_id;type:uuid" json:"department_id,omitempty"`
	StudentID    *string    `gorm:"column:student_id;size:50" json:"student_id,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Department *deptModel.DepartmentModel `gorm:"foreignKey:DepartmentID;references:ID" json:"-"`
}

// TableName pins the table name.
func (UserModel) TableName() string {
	return "users"
}

// SetPassword stores the bcrypt hash of plain. Every password write goes through here.
func (u *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *UserModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

func (u *UserModel) StudentIDValue() string {
	if u.StudentID == nil {
		return ""
	}
	return strings.TrimSpace(*u.StudentID)
}
