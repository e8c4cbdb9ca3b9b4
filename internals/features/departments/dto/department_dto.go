package dto

import (
	"time"

	"github.com/google/uuid"

	"campusevents_backend/internals/features/departments/model"
	helper "campusevents_backend/internals/helpers"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateDepartmentRequest struct {
	Name        string `json:"department_name" validate:"required,min=2,max=150"`
	Abbr        string `json:"department_abbr" validate:"required,min=2,max=20"`
	Description string `json:"department_description" validate:"required"`
	Image       string `json:"department_image" validate:"omitempty,max=500"`
}

func (r *CreateDepartmentRequest) Normalize() {
	r.Name = helper.NormalizeText(r.Name)
	r.Abbr = helper.NormalizeText(r.Abbr)
	r.Description = helper.NormalizeText(r.Description)
	r.Image = helper.NormalizeText(r.Image)
}

func (r *CreateDepartmentRequest) ToModel() *model.DepartmentModel {
	img := r.Image
	if img == "" {
		img = model.DefaultDepartmentImage
	}
	return &model.DepartmentModel{
		Name:        r.Name,
		Abbr:        r.Abbr,
		Description: r.Description,
		Image:       img,
	}
}

// UpdateDepartmentRequest is a partial update.
type UpdateDepartmentRequest struct {
	Name        *string `json:"department_name" validate:"omitempty,min=2,max=150"`
	Abbr        *string `json:"department_abbr" validate:"omitempty,min=2,max=20"`
	Description *string `json:"department_description" validate:"omitempty,min=1"`
	Image       *string `json:"department_image" validate:"omitempty,max=500"`
}

func (r *UpdateDepartmentRequest) Normalize() {
	for _, p := range []*string{r.Name, r.Abbr, r.Description, r.Image} {
		if p != nil {
			*p = helper.NormalizeText(*p)
		}
	}
}

// ToUpdates returns the column map for the provided fields only.
func (r *UpdateDepartmentRequest) ToUpdates() map[string]any {
	m := map[string]any{}
	if r.Name != nil {
		m["department_name"] = *r.Name
	}
	if r.Abbr != nil {
		m["department_abbr"] = *r.Abbr
	}
	if r.Description != nil {
		m["department_description"] = *r.Description
	}
	if r.Image != nil {
		m["department_image"] = *r.Image
	}
	return m
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type DepartmentResponse struct {
	ID          uuid.UUID `json:"department_id"`
	Name        string    `json:"department_name"`
	Abbr        string    `json:"department_abbr"`
	Description string    `json:"department_description"`
	Image       string    `json:"department_image"`
	Label       string    `json:"department_label"`
	CreatedAt   time.Time `json:"department_created_at"`
	UpdatedAt   time.Time `json:"department_updated_at"`
}

func FromModel(m *model.DepartmentModel) DepartmentResponse {
	return DepartmentResponse{
		ID:          m.ID,
		Name:        m.Name,
		Abbr:        m.Abbr,
		Description: m.Description,
		Image:       m.Image,
		Label:       m.Label(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func FromModels(list []model.DepartmentModel) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out
}

// DepartmentBrief is embedded in users and events.
type DepartmentBrief struct {
	ID   uuid.UUID `json:"department_id"`
	Name string    `json:"department_name"`
	Abbr string    `json:"department_abbr"`
}

func BriefFromModel(m *model.DepartmentModel) *DepartmentBrief {
	if m == nil || m.ID == uuid.Nil {
		return nil
	}
	return &DepartmentBrief{ID: m.ID, Name: m.Name, Abbr: m.Abbr}
}
