package service

import (
	"context"
	"time"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/events/analytics/dto"
	helper "campusevents_backend/internals/helpers"
)

type AnalyticsStore interface {
	ParticipationByDepartment(ctx context.Context) ([]dto.DepartmentParticipation, error)
	EventsByDepartment(ctx context.Context) ([]dto.DepartmentActivity, error)
	EventsByCategory(ctx context.Context) ([]dto.CategoryShare, error)
	Summary(ctx context.Context, now time.Time) (*dto.Summary, error)
}

type AnalyticsService struct {
	repo AnalyticsStore
	now  func() time.Time
}

func NewAnalyticsService(repo AnalyticsStore, now func() time.Time) *AnalyticsService {
	if now == nil {
		now = time.Now
	}
	return &AnalyticsService{repo: repo, now: now}
}

func (s *AnalyticsService) Participation(ctx context.Context) ([]dto.DepartmentParticipation, error) {
	rows, err := s.repo.ParticipationByDepartment(ctx)
	if err != nil {
		return nil, helper.ErrInternal("failed to load participation analytics", err)
	}
	if rows == nil {
		rows = []dto.DepartmentParticipation{}
	}
	return rows, nil
}

func (s *AnalyticsService) DepartmentActivity(ctx context.Context) ([]dto.DepartmentActivity, error) {
	rows, err := s.repo.EventsByDepartment(ctx)
	if err != nil {
		return nil, helper.ErrInternal("failed to load department analytics", err)
	}
	if rows == nil {
		rows = []dto.DepartmentActivity{}
	}
	return rows, nil
}

// Categories reports every category in the fixed order, zero when unused.
func (s *AnalyticsService) Categories(ctx context.Context) ([]dto.CategoryShare, error) {
	rows, err := s.repo.EventsByCategory(ctx)
	if err != nil {
		return nil, helper.ErrInternal("failed to load category analytics", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.Value
	}
	out := make([]dto.CategoryShare, 0, len(constants.EventCategories))
	for _, c := range constants.EventCategories {
		out = append(out, dto.CategoryShare{Category: c, Value: counts[c]})
	}
	return out, nil
}

func (s *AnalyticsService) Summary(ctx context.Context) (*dto.Summary, error) {
	sum, err := s.repo.Summary(ctx, s.now())
	if err != nil {
		return nil, helper.ErrInternal("failed to load summary", err)
	}
	return sum, nil
}
