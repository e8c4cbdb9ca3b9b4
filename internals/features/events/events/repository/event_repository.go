package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusevents_backend/internals/features/events/events/model"
	"campusevents_backend/internals/helpers/dbtime"
)

// serialises event id assignment across concurrent creates
const eventIDLockKey int64 = 0x45565401

const participantCountSQL = `(SELECT COUNT(*) FROM event_participants ep
	WHERE ep.event_participant_event_id = events.event_id) AS participant_count`

// RosterGuard decides, under the event row lock, whether a roster change may proceed.
type RosterGuard func(e *model.EventModel, registered bool) error

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) withCount(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Model(&model.EventModel{}).
		Select("events.*, " + participantCountSQL).
		Preload("Department")
}

// Create assigns the next EVTnnn id and inserts e.
func (r *EventRepository) Create(ctx context.Context, e *model.EventModel) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", eventIDLockKey).Error; err != nil {
			return err
		}
		var maxN int
		row := tx.Raw(`SELECT COALESCE(MAX(CAST(SUBSTRING(event_id FROM 4) AS INTEGER)), 0)
			FROM events WHERE event_id ~ '^EVT[0-9]+$'`).Row()
		if err := row.Scan(&maxN); err != nil {
			return err
		}
		last := ""
		if maxN > 0 {
			last = model.FormatEventID(maxN)
		}
		e.ID = model.NextEventID(last)
		if e.Tags == nil {
			e.Tags = pq.StringArray{}
		}
		return tx.Omit(clause.Associations).Create(e).Error
	})
}

// FindByID loads the event with its department and roster count.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*model.EventModel, error) {
	var e model.EventModel
	if err := r.withCount(ctx).Where("events.event_id = ?", id).Take(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *EventRepository) List(ctx context.Context, f model.EventFilter) ([]model.EventModel, error) {
	q := r.withCount(ctx)

	if f.Search != "" {
		like := "%" + escapeLike(f.Search) + "%"
		q = q.Where("(events.event_title ILIKE ? OR events.event_details ILIKE ?)", like, like)
	}
	if f.Department != "" {
		like := "%" + escapeLike(f.Department) + "%"
		q = q.Where(`EXISTS (SELECT 1 FROM departments d
			WHERE d.department_id = events.event_department_id
			AND (d.department_name ILIKE ? OR d.department_abbr ILIKE ?))`, like, like)
	}
	if f.DepartmentID != nil {
		q = q.Where("events.event_department_id = ?", *f.DepartmentID)
	}
	if f.DateFrom != nil {
		q = q.Where("events.event_end_date >= ?::date", dbtime.FormatYMD(*f.DateFrom))
	}
	if f.DateTo != nil {
		q = q.Where("events.event_start_date <= ?::date", dbtime.FormatYMD(*f.DateTo))
	}
	if f.Category != "" {
		q = q.Where("events.event_category = ?", f.Category)
	}
	if len(f.Tags) > 0 {
		q = q.Where("events.event_tags @> ?::text[]", pq.StringArray(f.Tags))
	}

	today := dbtime.FormatYMD(dbtime.DateOf(f.Now))
	switch f.Status {
	case model.StatusActive:
		q = q.Where(`events.event_completed = FALSE AND (events.event_end_date > ?::date
			OR (events.event_end_date = ?::date AND (events.event_end_time IS NULL OR events.event_end_time > ?::time)))`,
			today, today, f.Now.Format("15:04:05"))
	case model.StatusCompleted:
		q = q.Where("(events.event_completed = TRUE OR events.event_end_date < ?::date)", today)
	}

	var out []model.EventModel
	err := q.Order("events.event_start_date ASC, events.event_id ASC").Find(&out).Error
	return out, err
}

// Update writes every column of e except the id and creation time.
func (r *EventRepository) Update(ctx context.Context, e *model.EventModel) error {
	if e.Tags == nil {
		e.Tags = pq.StringArray{}
	}
	res := r.DB.WithContext(ctx).
		Model(&model.EventModel{ID: e.ID}).
		Select("*").
		Omit("event_id", "event_created_at", clause.Associations).
		Updates(e)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EventRepository) UpdateFields(ctx context.Context, id string, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&model.EventModel{}).
		Where("event_id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the event; roster rows go with it (ON DELETE CASCADE).
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&model.EventModel{}, "event_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Participants returns the roster in registration order.
func (r *EventRepository) Participants(ctx context.Context, eventID string) ([]model.EventParticipantModel, error) {
	var out []model.EventParticipantModel
	err := r.DB.WithContext(ctx).
		Preload("User").
		Preload("User.Department").
		Where("event_participant_event_id = ?", eventID).
		Order("event_participant_seq ASC").
		Find(&out).Error
	return out, err
}

// EventsOfUser lists the events the user is registered for.
func (r *EventRepository) EventsOfUser(ctx context.Context, userID uuid.UUID) ([]model.EventModel, error) {
	var out []model.EventModel
	err := r.withCount(ctx).
		Where(`EXISTS (SELECT 1 FROM event_participants mine
			WHERE mine.event_participant_event_id = events.event_id
			AND mine.event_participant_user_id = ?)`, userID).
		Order("events.event_start_date ASC, events.event_id ASC").
		Find(&out).Error
	return out, err
}

// lockForRoster locks the event row and loads its roster state.
func lockForRoster(tx *gorm.DB, eventID string, userID uuid.UUID) (*model.EventModel, bool, error) {
	var e model.EventModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ?", eventID).
		Take(&e).Error; err != nil {
		return nil, false, err
	}

	var count int64
	if err := tx.Model(&model.EventParticipantModel{}).
		Where("event_participant_event_id = ?", eventID).
		Count(&count).Error; err != nil {
		return nil, false, err
	}
	e.ParticipantCount = int(count)

	var mine int64
	if err := tx.Model(&model.EventParticipantModel{}).
		Where("event_participant_event_id = ? AND event_participant_user_id = ?", eventID, userID).
		Count(&mine).Error; err != nil {
		return nil, false, err
	}
	return &e, mine > 0, nil
}

// Participate adds userID to the roster if guard allows it. The check and the
// insert share one transaction holding the event row lock.
func (r *EventRepository) Participate(ctx context.Context, eventID string, userID uuid.UUID, at time.Time, guard RosterGuard) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, registered, err := lockForRoster(tx, eventID, userID)
		if err != nil {
			return err
		}
		if err := guard(e, registered); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&model.EventParticipantModel{
			EventID:      eventID,
			UserID:       userID,
			RegisteredAt: at,
		}).Error
	})
}

// Cancel removes userID from the roster if guard allows it.
func (r *EventRepository) Cancel(ctx context.Context, eventID string, userID uuid.UUID, guard RosterGuard) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		e, registered, err := lockForRoster(tx, eventID, userID)
		if err != nil {
			return err
		}
		if err := guard(e, registered); err != nil {
			return err
		}
		return tx.Where("event_participant_event_id = ? AND event_participant_user_id = ?", eventID, userID).
			Delete(&model.EventParticipantModel{}).Error
	})
}

// AllTags returns every distinct tag in use, sorted.
func (r *EventRepository) AllTags(ctx context.Context) ([]string, error) {
	rows, err := r.DB.WithContext(ctx).
		Raw("SELECT DISTINCT unnest(event_tags) AS tag FROM events ORDER BY tag").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0, 32)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// MarkPastCompleted flags events that ended before today.
func (r *EventRepository) MarkPastCompleted(ctx context.Context, today time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&model.EventModel{}).
		Where("event_completed = FALSE AND event_end_date < ?::date", dbtime.FormatYMD(dbtime.DateOf(today))).
		Updates(map[string]any{"event_completed": true})
	return res.RowsAffected, res.Error
}
