package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"campusevents_backend/internals/features/events/analytics/dto"
	"campusevents_backend/internals/helpers/dbtime"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) ParticipationByDepartment(ctx context.Context) ([]dto.DepartmentParticipation, error) {
	var out []dto.DepartmentParticipation
	err := r.DB.WithContext(ctx).Raw(`
		SELECT d.department_abbr AS department,
		       d.department_name AS department_name,
		       COUNT(ep.event_participant_user_id) AS participants
		FROM departments d
		LEFT JOIN events e ON e.event_department_id = d.department_id
		LEFT JOIN event_participants ep ON ep.event_participant_event_id = e.event_id
		GROUP BY d.department_id, d.department_abbr, d.department_name
		ORDER BY d.department_name ASC`).
		Scan(&out).Error
	return out, err
}

func (r *AnalyticsRepository) EventsByDepartment(ctx context.Context) ([]dto.DepartmentActivity, error) {
	var out []dto.DepartmentActivity
	err := r.DB.WithContext(ctx).Raw(`
		SELECT d.department_abbr AS department,
		       d.department_name AS department_name,
		       COUNT(e.event_id) AS events
		FROM departments d
		LEFT JOIN events e ON e.event_department_id = d.department_id
		GROUP BY d.department_id, d.department_abbr, d.department_name
		ORDER BY d.department_name ASC`).
		Scan(&out).Error
	return out, err
}

func (r *AnalyticsRepository) EventsByCategory(ctx context.Context) ([]dto.CategoryShare, error) {
	var out []dto.CategoryShare
	err := r.DB.WithContext(ctx).Raw(`
		SELECT event_category AS category, COUNT(*) AS value
		FROM events
		GROUP BY event_category`).
		Scan(&out).Error
	return out, err
}

// Summary counts with the same active/completed rules as the event listings.
func (r *AnalyticsRepository) Summary(ctx context.Context, now time.Time) (*dto.Summary, error) {
	today := dbtime.FormatYMD(dbtime.DateOf(now))
	clock := now.Format("15:04:05")

	var out dto.Summary
	err := r.DB.WithContext(ctx).Raw(`
		SELECT
		  (SELECT COUNT(*) FROM events) AS events,
		  (SELECT COUNT(*) FROM events
		     WHERE event_completed = FALSE AND (event_end_date > ?::date
		       OR (event_end_date = ?::date AND (event_end_time IS NULL OR event_end_time > ?::time)))) AS active_events,
		  (SELECT COUNT(*) FROM events
		     WHERE event_completed = TRUE OR event_end_date < ?::date) AS completed_events,
		  (SELECT COUNT(*) FROM users WHERE role = 'student') AS students,
		  (SELECT COUNT(*) FROM event_participants) AS registrations,
		  (SELECT COUNT(*) FROM departments) AS departments`,
		today, today, clock, today).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}
