package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusevents_backend/internals/constants"
	deptModel "campusevents_backend/internals/features/departments/model"
	"campusevents_backend/internals/features/events/events/dto"
	"campusevents_backend/internals/features/events/events/model"
	"campusevents_backend/internals/features/events/events/repository"
	helper "campusevents_backend/internals/helpers"
	"campusevents_backend/internals/helpers/dbtime"
	"campusevents_backend/internals/helpers/media"
)

const (
	msgEventNotFound   = "Event not found"
	msgAlreadyJoined   = "You are already registered for this event"
	msgNotRegistered   = "You are not registered for this event"
	msgDeadlinePassed  = "Registration deadline has passed"
	msgEventFull       = "Event is full"
	msgUnknownDept     = "Selected department does not exist"
	msgEventConflict   = "Event already exists"
	msgUploadsDisabled = "Image uploads are not configured"
)

type EventStore interface {
	Create(ctx context.Context, e *model.EventModel) error
	FindByID(ctx context.Context, id string) (*model.EventModel, error)
	List(ctx context.Context, f model.EventFilter) ([]model.EventModel, error)
	Update(ctx context.Context, e *model.EventModel) error
	UpdateFields(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error
	Participants(ctx context.Context, eventID string) ([]model.EventParticipantModel, error)
	EventsOfUser(ctx context.Context, userID uuid.UUID) ([]model.EventModel, error)
	Participate(ctx context.Context, eventID string, userID uuid.UUID, at time.Time, guard repository.RosterGuard) error
	Cancel(ctx context.Context, eventID string, userID uuid.UUID, guard repository.RosterGuard) error
	AllTags(ctx context.Context) ([]string, error)
	MarkPastCompleted(ctx context.Context, today time.Time) (int64, error)
}

type DepartmentLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*deptModel.DepartmentModel, error)
}

type EventService struct {
	repo        EventStore
	departments DepartmentLookup
	media       media.Storage
	now         func() time.Time
}

// NewEventService; store may be nil when uploads are disabled, now defaults to time.Now.
func NewEventService(repo EventStore, departments DepartmentLookup, store media.Storage, now func() time.Time) *EventService {
	if now == nil {
		now = time.Now
	}
	return &EventService{repo: repo, departments: departments, media: store, now: now}
}

// Now is the clock used for status and deadline decisions.
func (s *EventService) Now() time.Time {
	return s.now()
}

/* ===============================
   Validation
=================================*/

// validateEvent checks the merged event against the creation rules.
func validateEvent(e *model.EventModel) error {
	if e.Title == "" {
		return helper.ErrValidation("event_title is required")
	}
	if e.DepartmentID == uuid.Nil {
		return helper.ErrValidation("event_department_id is required")
	}
	if time.Time(e.StartDate).IsZero() || time.Time(e.EndDate).IsZero() {
		return helper.ErrValidation("event_start_date and event_end_date are required")
	}
	if dbtime.CompareDates(e.EndDate, e.StartDate) < 0 {
		return helper.ErrValidation("End date cannot be before start date")
	}
	if e.StartTime != nil && e.EndTime != nil &&
		dbtime.CompareDates(e.EndDate, e.StartDate) == 0 && *e.EndTime < *e.StartTime {
		return helper.ErrValidation("End time cannot be before start time on a single-day event")
	}
	if e.MaxParticipants < 0 {
		return helper.ErrValidation("event_max_participants cannot be negative")
	}
	if !constants.IsValidCategory(e.Category) {
		return helper.ErrValidation("Invalid category: " + e.Category)
	}
	for _, t := range e.Tags {
		if !helper.IsValidTag(t) {
			return helper.ErrValidation("Invalid tag: " + t + ". Tags must be 2-20 characters long and contain only letters, numbers, and hyphens.")
		}
	}
	return nil
}

func (s *EventService) ensureDepartment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.departments.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.ErrValidation(msgUnknownDept)
		}
		return helper.ErrInternal("failed to load department", err)
	}
	return nil
}

func wrapErr(err error, msg string) error {
	var appErr *helper.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.ErrNotFound(msgEventNotFound)
	}
	if t := helper.TranslateDBError(err, msgEventConflict); t != err {
		return t
	}
	return helper.ErrInternal(msg, err)
}

/* ===============================
   Queries
=================================*/

func (s *EventService) Get(ctx context.Context, id string) (*model.EventModel, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapErr(err, "failed to load event")
	}
	return e, nil
}

// List applies f; Now is filled in when unset.
func (s *EventService) List(ctx context.Context, f model.EventFilter) ([]model.EventModel, error) {
	if f.Now.IsZero() {
		f.Now = s.now()
	}
	if f.Status != "" && f.Status != model.StatusAll && f.Status != model.StatusActive && f.Status != model.StatusCompleted {
		return nil, helper.ErrValidation("status must be one of: all, active, completed")
	}
	if f.Category != "" && !constants.IsValidCategory(f.Category) {
		return nil, helper.ErrValidation("Invalid category: " + f.Category)
	}
	if f.DateFrom != nil && f.DateTo != nil && dbtime.CompareDates(*f.DateTo, *f.DateFrom) < 0 {
		return nil, helper.ErrValidation("dateTo cannot be before dateFrom")
	}
	list, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, helper.ErrInternal("failed to list events", err)
	}
	return list, nil
}

func (s *EventService) Active(ctx context.Context, f model.EventFilter) ([]model.EventModel, error) {
	f.Status = model.StatusActive
	return s.List(ctx, f)
}

func (s *EventService) Completed(ctx context.Context) ([]model.EventModel, error) {
	return s.List(ctx, model.EventFilter{Status: model.StatusCompleted})
}

func (s *EventService) Participants(ctx context.Context, id string) ([]model.EventParticipantModel, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	list, err := s.repo.Participants(ctx, id)
	if err != nil {
		return nil, helper.ErrInternal("failed to load participants", err)
	}
	return list, nil
}

func (s *EventService) EventsOfUser(ctx context.Context, userID uuid.UUID) ([]model.EventModel, error) {
	list, err := s.repo.EventsOfUser(ctx, userID)
	if err != nil {
		return nil, helper.ErrInternal("failed to load registered events", err)
	}
	return list, nil
}

func (s *EventService) Tags(ctx context.Context) ([]string, error) {
	tags, err := s.repo.AllTags(ctx)
	if err != nil {
		return nil, helper.ErrInternal("failed to load tags", err)
	}
	return tags, nil
}

func (s *EventService) Categories() []string {
	return append([]string(nil), constants.EventCategories...)
}

/* ===============================
   Admin mutations
=================================*/

func (s *EventService) Create(ctx context.Context, req dto.CreateEventRequest) (*model.EventModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	e, err := req.ToModel(s.now().Location())
	if err != nil {
		return nil, err
	}
	if err := validateEvent(e); err != nil {
		return nil, err
	}
	if err := s.ensureDepartment(ctx, e.DepartmentID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, wrapErr(err, "failed to create event")
	}
	return s.Get(ctx, e.ID)
}

// Update merges req into the stored event and re-checks the creation rules.
func (s *EventService) Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*model.EventModel, error) {
	req.Normalize()
	if err := helper.ValidateStruct(&req); err != nil {
		return nil, err
	}
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prevDept := e.DepartmentID
	if err := req.ApplyTo(e, s.now().Location()); err != nil {
		return nil, err
	}
	if err := validateEvent(e); err != nil {
		return nil, err
	}
	if e.DepartmentID != prevDept {
		if err := s.ensureDepartment(ctx, e.DepartmentID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, wrapErr(err, "failed to update event")
	}
	return s.Get(ctx, id)
}

// SetCompleted toggles the completion flag in either direction.
func (s *EventService) SetCompleted(ctx context.Context, id string, completed bool) (*model.EventModel, error) {
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"event_completed": completed}); err != nil {
		return nil, wrapErr(err, "failed to update event")
	}
	return s.Get(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapErr(err, "failed to delete event")
	}
	if s.media != nil {
		media.RemoveStoredImage(ctx, s.media, e.ImageURL)
	}
	return nil
}

func (s *EventService) UploadImage(ctx context.Context, id string, fh *multipart.FileHeader) (*model.EventModel, error) {
	if s.media == nil {
		return nil, helper.ErrValidation(msgUploadsDisabled)
	}
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	url, err := media.SaveUploadedImage(ctx, s.media, "events", fh)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"event_image_url": url}); err != nil {
		media.RemoveStoredImage(ctx, s.media, url)
		return nil, wrapErr(err, "failed to save event image")
	}
	media.RemoveStoredImage(ctx, s.media, e.ImageURL)
	e.ImageURL = url
	return e, nil
}

/* ===============================
   Participation
=================================*/

// Participate registers userID. Checks run in order: deadline, duplicate, capacity.
func (s *EventService) Participate(ctx context.Context, eventID string, userID uuid.UUID) (*model.EventModel, error) {
	now := s.now()
	err := s.repo.Participate(ctx, eventID, userID, now, func(e *model.EventModel, registered bool) error {
		if e.DeadlinePassed(now) {
			return helper.ErrValidation(msgDeadlinePassed)
		}
		if registered {
			return helper.ErrConflict(msgAlreadyJoined)
		}
		if e.IsFull() {
			return helper.ErrCapacity(msgEventFull)
		}
		return nil
	})
	if err != nil {
		// a concurrent duplicate insert hits the roster primary key
		if t := helper.TranslateDBError(err, msgAlreadyJoined); t != err {
			return nil, t
		}
		return nil, wrapErr(err, "failed to register for event")
	}
	return s.Get(ctx, eventID)
}

// Cancel unregisters userID; closed once the registration deadline passed.
func (s *EventService) Cancel(ctx context.Context, eventID string, userID uuid.UUID) (*model.EventModel, error) {
	now := s.now()
	err := s.repo.Cancel(ctx, eventID, userID, func(e *model.EventModel, registered bool) error {
		if e.DeadlinePassed(now) {
			return helper.ErrValidation(msgDeadlinePassed)
		}
		if !registered {
			return helper.ErrNotFound(msgNotRegistered)
		}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err, "failed to cancel registration")
	}
	return s.Get(ctx, eventID)
}

/* ===============================
   Jobs
=================================*/

// SweepCompleted flags every event whose end date is before today.
func (s *EventService) SweepCompleted(ctx context.Context) (int64, error) {
	return s.repo.MarkPastCompleted(ctx, s.now())
}
