package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"campusevents_backend/internals/helpers/dbtime"
)

func mustDate(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := dbtime.ParseYMD(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func clock(h, m int) *datatypes.Time {
	v := datatypes.NewTime(h, m, 0, 0)
	return &v
}

func TestNextEventID(t *testing.T) {
	assert.Equal(t, "EVT001", NextEventID(""))
	assert.Equal(t, "EVT002", NextEventID("EVT001"))
	assert.Equal(t, "EVT003", NextEventID("EVT002"))
	assert.Equal(t, "EVT010", NextEventID("EVT009"))
	assert.Equal(t, "EVT1000", NextEventID("EVT999"))
	assert.Equal(t, "EVT001", NextEventID("legacy-id"))
}

func TestEventNumber(t *testing.T) {
	n, ok := EventNumber("EVT042")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = EventNumber("EVT")
	assert.False(t, ok)
	_, ok = EventNumber("XYZ001")
	assert.False(t, ok)
}

func TestCapacity(t *testing.T) {
	e := &EventModel{MaxParticipants: 2}
	assert.False(t, e.IsFull())
	assert.Equal(t, 2, e.RemainingSlots())

	e.ParticipantCount = 1
	assert.False(t, e.IsFull())
	assert.Equal(t, 1, e.RemainingSlots())

	e.ParticipantCount = 2
	assert.True(t, e.IsFull())
	assert.Equal(t, 0, e.RemainingSlots())

	unlimited := &EventModel{ParticipantCount: 500}
	assert.False(t, unlimited.IsFull())
	assert.Equal(t, "Unlimited", unlimited.RemainingSlots())
}

func TestActiveAndCompleted(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)

	yesterday := &EventModel{StartDate: mustDate(t, "2025-03-09"), EndDate: mustDate(t, "2025-03-09")}
	assert.False(t, yesterday.IsActiveAt(now))
	assert.True(t, yesterday.IsCompletedAt(now))

	endedToday := &EventModel{StartDate: mustDate(t, "2025-03-10"), EndDate: mustDate(t, "2025-03-10"), EndTime: clock(12, 0)}
	assert.False(t, endedToday.IsActiveAt(now))
	assert.False(t, endedToday.IsCompletedAt(now))

	laterToday := &EventModel{StartDate: mustDate(t, "2025-03-10"), EndDate: mustDate(t, "2025-03-10"), EndTime: clock(18, 0)}
	assert.True(t, laterToday.IsActiveAt(now))

	allDay := &EventModel{StartDate: mustDate(t, "2025-03-10"), EndDate: mustDate(t, "2025-03-10")}
	assert.True(t, allDay.IsActiveAt(now))

	flagged := &EventModel{StartDate: mustDate(t, "2025-03-20"), EndDate: mustDate(t, "2025-03-21"), Completed: true}
	assert.False(t, flagged.IsActiveAt(now))
	assert.True(t, flagged.IsCompletedAt(now))
}

func TestDeadlinePassed(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	before := now.Add(-time.Minute)
	after := now.Add(time.Minute)

	assert.False(t, (&EventModel{}).DeadlinePassed(now))
	assert.True(t, (&EventModel{RegistrationDeadline: &before}).DeadlinePassed(now))
	assert.False(t, (&EventModel{RegistrationDeadline: &after}).DeadlinePassed(now))
}
