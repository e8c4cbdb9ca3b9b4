package model

import (
	"time"

	"github.com/google/uuid"
)

const DefaultDepartmentImage = "soss.jpeg"

// DepartmentModel maps the departments table.
type DepartmentModel struct {
	ID          uuid.UUID `gorm:"column:department_id;type:uuid;default:gen_random_uuid();primaryKey" json:"department_id"`
	Name        string    `gorm:"column:department_name;size:150;not null" json:"department_name"`
	Abbr        string    `gorm:"column:department_abbr;size:20;not null" json:"department_abbr"`
	Description string    `gorm:"column:department_description;not null" json:"department_description"`
	Image       string    `gorm:"column:department_image;not null;default:'soss.jpeg'" json:"department_image"`
	CreatedAt   time.Time `gorm:"column:department_created_at;autoCreateTime" json:"department_created_at"`
	UpdatedAt   time.Time `gorm:"column:department_updated_at;autoUpdateTime" json:"department_updated_at"`
}

func (DepartmentModel) TableName() string {
	return "departments"
}

// Label is the "ABBR - Name" form shown in pickers and on event cards.
func (d DepartmentModel) Label() string {
	if d.Abbr == "" {
		return d.Name
	}
	return d.Abbr + " - " + d.Name
}
