package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	deptDTO "campusevents_backend/internals/features/departments/dto"
	"campusevents_backend/internals/features/events/events/model"
	userDTO "campusevents_backend/internals/features/users/user/dto"
	helper "campusevents_backend/internals/helpers"
	"campusevents_backend/internals/helpers/dbtime"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateEventRequest carries dates as "YYYY-MM-DD" and times as "HH:MM".
type CreateEventRequest struct {
	Title                string   `json:"event_title" validate:"required,max=255"`
	DepartmentID         string   `json:"event_department_id" validate:"required,uuid"`
	StartDate            string   `json:"event_start_date" validate:"required,ymd"`
	EndDate              string   `json:"event_end_date" validate:"required,ymd"`
	StartTime            string   `json:"event_start_time" validate:"omitempty,clock"`
	EndTime              string   `json:"event_end_time" validate:"omitempty,clock"`
	Details              string   `json:"event_details"`
	Location             string   `json:"event_location" validate:"max=255"`
	MaxParticipants      int      `json:"event_max_participants" validate:"min=0"`
	ImageURL             string   `json:"event_image_url" validate:"omitempty,max=500"`
	RegistrationDeadline string   `json:"event_registration_deadline"`
	Category             string   `json:"event_category" validate:"required,event_category"`
	Tags                 []string `json:"event_tags" validate:"omitempty,dive,event_tag"`
}

func (r *CreateEventRequest) Normalize() {
	r.Title = helper.NormalizeText(r.Title)
	r.DepartmentID = helper.NormalizeText(r.DepartmentID)
	r.StartDate = helper.NormalizeText(r.StartDate)
	r.EndDate = helper.NormalizeText(r.EndDate)
	r.StartTime = helper.NormalizeText(r.StartTime)
	r.EndTime = helper.NormalizeText(r.EndTime)
	r.Details = helper.NormalizeText(r.Details)
	r.Location = helper.NormalizeText(r.Location)
	r.ImageURL = helper.NormalizeText(r.ImageURL)
	r.RegistrationDeadline = helper.NormalizeText(r.RegistrationDeadline)
	r.Category = helper.NormalizeText(r.Category)
	// tags are validated as sent; " ai" is an invalid tag, not "ai"
}

// ToModel parses the textual fields; deadlines without an offset are read in loc.
func (r *CreateEventRequest) ToModel(loc *time.Location) (*model.EventModel, error) {
	deptID, err := uuid.Parse(r.DepartmentID)
	if err != nil {
		return nil, helper.ErrValidation("event_department_id must be a valid id")
	}
	start, err := dbtime.ParseYMD(r.StartDate)
	if err != nil {
		return nil, helper.ErrValidation(err.Error())
	}
	end, err := dbtime.ParseYMD(r.EndDate)
	if err != nil {
		return nil, helper.ErrValidation(err.Error())
	}
	startTime, err := dbtime.ParseClock(r.StartTime)
	if err != nil {
		return nil, helper.ErrValidation(err.Error())
	}
	endTime, err := dbtime.ParseClock(r.EndTime)
	if err != nil {
		return nil, helper.ErrValidation(err.Error())
	}
	deadline, err := dbtime.ParseDeadline(r.RegistrationDeadline, loc)
	if err != nil {
		return nil, helper.ErrValidation(err.Error())
	}
	tags := pq.StringArray{}
	if len(r.Tags) > 0 {
		tags = append(tags, r.Tags...)
	}
	return &model.EventModel{
		Title:                r.Title,
		DepartmentID:         deptID,
		StartDate:            start,
		EndDate:              end,
		StartTime:            startTime,
		EndTime:              endTime,
		Details:              r.Details,
		Location:             r.Location,
		MaxParticipants:      r.MaxParticipants,
		ImageURL:             r.ImageURL,
		RegistrationDeadline: deadline,
		Category:             r.Category,
		Tags:                 tags,
	}, nil
}

// UpdateEventRequest is a partial update. An empty string clears the optional
// time and deadline fields.
type UpdateEventRequest struct {
	Title                *string   `json:"event_title" validate:"omitempty,min=1,max=255"`
	DepartmentID         *string   `json:"event_department_id" validate:"omitempty,uuid"`
	StartDate            *string   `json:"event_start_date" validate:"omitempty,ymd"`
	EndDate              *string   `json:"event_end_date" validate:"omitempty,ymd"`
	StartTime            *string   `json:"event_start_time" validate:"omitempty,clock"`
	EndTime              *string   `json:"event_end_time" validate:"omitempty,clock"`
	Details              *string   `json:"event_details"`
	Location             *string   `json:"event_location" validate:"omitempty,max=255"`
	MaxParticipants      *int      `json:"event_max_participants" validate:"omitempty,min=0"`
	ImageURL             *string   `json:"event_image_url" validate:"omitempty,max=500"`
	RegistrationDeadline *string   `json:"event_registration_deadline"`
	Category             *string   `json:"event_category" validate:"omitempty,event_category"`
	Tags                 *[]string `json:"event_tags" validate:"omitempty,dive,event_tag"`
	Completed            *bool     `json:"event_completed"`
}

func normalizePtr(p *string) {
	if p != nil {
		*p = helper.NormalizeText(*p)
	}
}

func (r *UpdateEventRequest) Normalize() {
	for _, p := range []*string{r.Title, r.DepartmentID, r.StartDate, r.EndDate, r.StartTime, r.EndTime,
		r.Details, r.Location, r.ImageURL, r.RegistrationDeadline, r.Category} {
		normalizePtr(p)
	}
}

// ApplyTo merges the present fields into e.
func (r *UpdateEventRequest) ApplyTo(e *model.EventModel, loc *time.Location) error {
	if r.Title != nil {
		e.Title = *r.Title
	}
	if r.DepartmentID != nil {
		id, err := uuid.Parse(*r.DepartmentID)
		if err != nil {
			return helper.ErrValidation("event_department_id must be a valid id")
		}
		if id != e.DepartmentID {
			e.DepartmentID = id
			e.Department = nil
		}
	}
	if r.StartDate != nil {
		d, err := dbtime.ParseYMD(*r.StartDate)
		if err != nil {
			return helper.ErrValidation(err.Error())
		}
		e.StartDate = d
	}
	if r.EndDate != nil {
		d, err := dbtime.ParseYMD(*r.EndDate)
		if err != nil {
			return helper.ErrValidation(err.Error())
		}
		e.EndDate = d
	}
	if r.StartTime != nil {
		t, err := dbtime.ParseClock(*r.StartTime)
		if err != nil {
			return helper.ErrValidation(err.Error())
		}
		e.StartTime = t
	}
	if r.EndTime != nil {
		t, err := dbtime.ParseClock(*r.EndTime)
		if err != nil {
			return helper.ErrValidation(err.Error())
		}
		e.EndTime = t
	}
	if r.Details != nil {
		e.Details = *r.Details
	}
	if r.Location != nil {
		e.Location = *r.Location
	}
	if r.MaxParticipants != nil {
		e.MaxParticipants = *r.MaxParticipants
	}
	if r.ImageURL != nil {
		e.ImageURL = *r.ImageURL
	}
	if r.RegistrationDeadline != nil {
		d, err := dbtime.ParseDeadline(*r.RegistrationDeadline, loc)
		if err != nil {
			return helper.ErrValidation(err.Error())
		}
		e.RegistrationDeadline = d
	}
	if r.Category != nil {
		e.Category = *r.Category
	}
	if r.Tags != nil {
		e.Tags = append(pq.StringArray{}, *r.Tags...)
	}
	if r.Completed != nil {
		e.Completed = *r.Completed
	}
	return nil
}

type SetCompletedRequest struct {
	Completed *bool `json:"event_completed"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type EventResponse struct {
	ID                   string                   `json:"event_id"`
	Title                string                   `json:"event_title"`
	DepartmentID         uuid.UUID                `json:"event_department_id"`
	DepartmentLabel      string                   `json:"event_department"`
	Department           *deptDTO.DepartmentBrief `json:"department,omitempty"`
	StartDate            string                   `json:"event_start_date"`
	EndDate              string                   `json:"event_end_date"`
	StartTime            string                   `json:"event_start_time,omitempty"`
	EndTime              string                   `json:"event_end_time,omitempty"`
	Details              string                   `json:"event_details"`
	Completed            bool                     `json:"event_completed"`
	Status               string                   `json:"event_status"`
	Location             string                   `json:"event_location"`
	MaxParticipants      int                      `json:"event_max_participants"`
	ParticipantCount     int                      `json:"event_participant_count"`
	RemainingSlots       any                      `json:"event_remaining_slots"`
	IsFull               bool                     `json:"event_is_full"`
	ImageURL             string                   `json:"event_image_url"`
	RegistrationDeadline *time.Time               `json:"event_registration_deadline,omitempty"`
	Category             string                   `json:"event_category"`
	Tags                 []string                 `json:"event_tags"`
	CreatedAt            time.Time                `json:"event_created_at"`
	UpdatedAt            time.Time                `json:"event_updated_at"`
}

// FromModel renders e; now decides the reported status.
func FromModel(e *model.EventModel, now time.Time) EventResponse {
	tags := []string(e.Tags)
	if tags == nil {
		tags = []string{}
	}
	resp := EventResponse{
		ID:                   e.ID,
		Title:                e.Title,
		DepartmentID:         e.DepartmentID,
		StartDate:            dbtime.FormatYMD(e.StartDate),
		EndDate:              dbtime.FormatYMD(e.EndDate),
		StartTime:            dbtime.FormatClock(e.StartTime),
		EndTime:              dbtime.FormatClock(e.EndTime),
		Details:              e.Details,
		Completed:            e.Completed,
		Status:               e.Status(now),
		Location:             e.Location,
		MaxParticipants:      e.MaxParticipants,
		ParticipantCount:     e.ParticipantCount,
		RemainingSlots:       e.RemainingSlots(),
		IsFull:               e.IsFull(),
		ImageURL:             e.ImageURL,
		RegistrationDeadline: e.RegistrationDeadline,
		Category:             e.Category,
		Tags:                 tags,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
	if e.Department != nil {
		resp.DepartmentLabel = e.Department.Label()
		resp.Department = deptDTO.BriefFromModel(e.Department)
	}
	return resp
}

func FromModels(list []model.EventModel, now time.Time) []EventResponse {
	out := make([]EventResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i], now))
	}
	return out
}

// ParticipantResponse is the admin view of one roster entry.
type ParticipantResponse struct {
	userDTO.UserResponse
	RegisteredAt time.Time `json:"registered_at"`
}

func ParticipantsFromModels(list []model.EventParticipantModel) []ParticipantResponse {
	out := make([]ParticipantResponse, 0, len(list))
	for i := range list {
		p := &list[i]
		if p.User == nil {
			continue
		}
		out = append(out, ParticipantResponse{
			UserResponse: userDTO.FromModel(p.User),
			RegisteredAt: p.RegisteredAt,
		})
	}
	return out
}
