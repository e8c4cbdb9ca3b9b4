package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"campusevents_backend/internals/constants"
	deptModel "campusevents_backend/internals/features/departments/model"
	userModel "campusevents_backend/internals/features/users/user/model"
	"campusevents_backend/internals/helpers/dbtime"
)

// EventModel maps the events table.
type EventModel struct {
	ID                   string          `gorm:"column:event_id;primaryKey;size:16" json:"event_id"`
	Title                string          `gorm:"column:event_title;size:255;not null" json:"event_title"`
	DepartmentID         uuid.UUID       `gorm:"column:event_department_id;type:uuid;not null" json:"event_department_id"`
	StartDate            datatypes.Date  `gorm:"column:event_start_date;not null" json:"event_start_date"`
	EndDate              datatypes.Date  `gorm:"column:event_end_date;not null" json:"event_end_date"`
	StartTime            *datatypes.Time `gorm:"column:event_start_time" json:"event_start_time,omitempty"`
	EndTime              *datatypes.Time `gorm:"column:event_end_time" json:"event_end_time,omitempty"`
	Details              string          `gorm:"column:event_details;not null" json:"event_details"`
	Completed            bool            `gorm:"column:event_completed;not null;default:false" json:"event_completed"`
	Location             string          `gorm:"column:event_location;size:255;not null" json:"event_location"`
	MaxParticipants      int             `gorm:"column:event_max_participants;not null;default:0" json:"event_max_participants"`
	ImageURL             string          `gorm:"column:event_image_url;not null" json:"event_image_url"`
	RegistrationDeadline *time.Time      `gorm:"column:event_registration_deadline" json:"event_registration_deadline,omitempty"`
	Category             string          `gorm:"column:event_category;size:20;not null" json:"event_category"`
	Tags                 pq.StringArray  `gorm:"column:event_tags;type:text[];not null" json:"event_tags"`
	CreatedAt            time.Time       `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	UpdatedAt            time.Time       `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`

	Department *deptModel.DepartmentModel `gorm:"foreignKey:DepartmentID;references:ID" json:"-"`

	// filled by queries that select the roster count
	ParticipantCount int `gorm:"column:participant_count;->;-:migration" json:"-"`
}

func (EventModel) TableName() string {
	return "events"
}

// IsFull is true once a capped event reached its cap.
func (e *EventModel) IsFull() bool {
	return e.MaxParticipants > 0 && e.ParticipantCount >= e.MaxParticipants
}

// RemainingSlots is "Unlimited" for uncapped events, otherwise the free seats (never negative).
func (e *EventModel) RemainingSlots() any {
	if e.MaxParticipants <= 0 {
		return "Unlimited"
	}
	left := e.MaxParticipants - e.ParticipantCount
	if left < 0 {
		left = 0
	}
	return left
}

// DeadlinePassed reports whether registration changes are closed at now.
func (e *EventModel) DeadlinePassed(now time.Time) bool {
	return e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline)
}

// IsCompletedAt: flagged completed, or the end date is before now's calendar day.
func (e *EventModel) IsCompletedAt(now time.Time) bool {
	return e.Completed || dbtime.CompareDates(e.EndDate, dbtime.DateOf(now)) < 0
}

// IsActiveAt: not completed and not yet over. An event ending today stays active
// until its end time, or all day when it has none.
func (e *EventModel) IsActiveAt(now time.Time) bool {
	if e.Completed {
		return false
	}
	switch dbtime.CompareDates(e.EndDate, dbtime.DateOf(now)) {
	case 1:
		return true
	case 0:
		return e.EndTime == nil || time.Duration(*e.EndTime) > time.Duration(dbtime.ClockOf(now))
	default:
		return false
	}
}

// Status is "completed", "active", or "ended" for an event whose end time passed today.
func (e *EventModel) Status(now time.Time) string {
	switch {
	case e.IsCompletedAt(now):
		return "completed"
	case e.IsActiveAt(now):
		return "active"
	default:
		return "ended"
	}
}

/* ===============================
   Event ids (EVT001, EVT002, ...)
=================================*/

// EventNumber parses "EVT042" into 42; ok is false for ids of another shape.
func EventNumber(id string) (int, bool) {
	rest, found := strings.CutPrefix(id, constants.EventIDPrefix)
	if !found || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func FormatEventID(n int) string {
	return fmt.Sprintf("%s%03d", constants.EventIDPrefix, n)
}

// NextEventID follows last; an empty or foreign last starts at EVT001.
// Padding grows past three digits (EVT999 -> EVT1000).
func NextEventID(last string) string {
	n, ok := EventNumber(last)
	if !ok {
		return FormatEventID(1)
	}
	return FormatEventID(n + 1)
}

/* ===============================
   Roster
=================================*/

// EventParticipantModel is one roster row; Seq keeps registration order.
type EventParticipantModel struct {
	EventID      string    `gorm:"column:event_participant_event_id;primaryKey;size:16"`
	UserID       uuid.UUID `gorm:"column:event_participant_user_id;type:uuid;primaryKey"`
	Seq          int64     `gorm:"column:event_participant_seq;->"`
	RegisteredAt time.Time `gorm:"column:event_participant_registered_at;not null"`

	User *userModel.UserModel `gorm:"foreignKey:UserID;references:ID"`
}

func (EventParticipantModel) TableName() string {
	return "event_participants"
}
