package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campusevents_backend/internals/constants"
	"campusevents_backend/internals/features/events/analytics/dto"
	helper "campusevents_backend/internals/helpers"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) ParticipationByDepartment(ctx context.Context) ([]dto.DepartmentParticipation, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]dto.DepartmentParticipation)
	return rows, args.Error(1)
}

func (m *mockStore) EventsByDepartment(ctx context.Context) ([]dto.DepartmentActivity, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]dto.DepartmentActivity)
	return rows, args.Error(1)
}

func (m *mockStore) EventsByCategory(ctx context.Context) ([]dto.CategoryShare, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]dto.CategoryShare)
	return rows, args.Error(1)
}

func (m *mockStore) Summary(ctx context.Context, now time.Time) (*dto.Summary, error) {
	args := m.Called(ctx, now)
	sum, _ := args.Get(0).(*dto.Summary)
	return sum, args.Error(1)
}

func TestCategoriesFillsMissingWithZero(t *testing.T) {
	store := &mockStore{}
	store.On("EventsByCategory", mock.Anything).Return([]dto.CategoryShare{
		{Category: constants.CategorySports, Value: 4},
		{Category: constants.CategoryWorkshop, Value: 2},
	}, nil)

	got, err := NewAnalyticsService(store, nil).Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, len(constants.EventCategories))
	assert.Equal(t, dto.CategoryShare{Category: constants.CategoryWorkshop, Value: 2}, got[0])
	for _, share := range got {
		switch share.Category {
		case constants.CategorySports:
			assert.Equal(t, int64(4), share.Value)
		case constants.CategoryWorkshop:
		default:
			assert.Zero(t, share.Value, share.Category)
		}
	}
}

func TestParticipationNeverNil(t *testing.T) {
	store := &mockStore{}
	store.On("ParticipationByDepartment", mock.Anything).Return(nil, nil)

	got, err := NewAnalyticsService(store, nil).Participation(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSummaryUsesInjectedClock(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store := &mockStore{}
	store.On("Summary", mock.Anything, now).Return(&dto.Summary{Events: 7, Students: 3}, nil)

	got, err := NewAnalyticsService(store, func() time.Time { return now }).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Events)
	store.AssertExpectations(t)
}

func TestStoreFailureIsInternal(t *testing.T) {
	store := &mockStore{}
	store.On("EventsByDepartment", mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := NewAnalyticsService(store, nil).DepartmentActivity(context.Background())
	assert.True(t, helper.IsKind(err, helper.KindInternal))
}
