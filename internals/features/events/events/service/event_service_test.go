package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	deptModel "campusevents_backend/internals/features/departments/model"
	"campusevents_backend/internals/features/events/events/dto"
	"campusevents_backend/internals/features/events/events/model"
	"campusevents_backend/internals/features/events/events/repository"
	helper "campusevents_backend/internals/helpers"
	"campusevents_backend/internals/helpers/dbtime"
)

/* ===============================
   In-memory fakes
=================================*/

type memDepartments map[uuid.UUID]*deptModel.DepartmentModel

func (m memDepartments) FindByID(_ context.Context, id uuid.UUID) (*deptModel.DepartmentModel, error) {
	d, ok := m[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

type memEvents struct {
	depts  memDepartments
	events map[string]*model.EventModel
	roster map[string][]uuid.UUID
	last   string
}

func newMemEvents(depts memDepartments) *memEvents {
	return &memEvents{depts: depts, events: map[string]*model.EventModel{}, roster: map[string][]uuid.UUID{}}
}

func (m *memEvents) load(e *model.EventModel) *model.EventModel {
	cp := *e
	cp.Tags = append(pq.StringArray{}, e.Tags...)
	cp.ParticipantCount = len(m.roster[e.ID])
	cp.Department = m.depts[e.DepartmentID]
	return &cp
}

func (m *memEvents) Create(_ context.Context, e *model.EventModel) error {
	e.ID = model.NextEventID(m.last)
	m.last = e.ID
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *memEvents) FindByID(_ context.Context, id string) (*model.EventModel, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.load(e), nil
}

func (m *memEvents) List(_ context.Context, f model.EventFilter) ([]model.EventModel, error) {
	out := []model.EventModel{}
	for _, e := range m.events {
		loaded := m.load(e)
		if filterMatches(f, loaded) {
			out = append(out, *loaded)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// filterMatches mirrors the WHERE clauses of EventRepository.List.
func filterMatches(f model.EventFilter, e *model.EventModel) bool {
	if s := strings.ToLower(f.Search); s != "" &&
		!strings.Contains(strings.ToLower(e.Title), s) && !strings.Contains(strings.ToLower(e.Details), s) {
		return false
	}
	if d := strings.ToLower(f.Department); d != "" {
		if e.Department == nil ||
			(!strings.Contains(strings.ToLower(e.Department.Name), d) && !strings.Contains(strings.ToLower(e.Department.Abbr), d)) {
			return false
		}
	}
	if f.DepartmentID != nil && e.DepartmentID != *f.DepartmentID {
		return false
	}
	if f.DateFrom != nil && dbtime.CompareDates(e.EndDate, *f.DateFrom) < 0 {
		return false
	}
	if f.DateTo != nil && dbtime.CompareDates(e.StartDate, *f.DateTo) > 0 {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	for _, want := range f.Tags {
		found := false
		for _, t := range e.Tags {
			found = found || t == want
		}
		if !found {
			return false
		}
	}
	switch f.Status {
	case model.StatusActive:
		return e.IsActiveAt(f.Now)
	case model.StatusCompleted:
		return e.IsCompletedAt(f.Now)
	}
	return true
}

func (m *memEvents) Update(_ context.Context, e *model.EventModel) error {
	if _, ok := m.events[e.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *memEvents) UpdateFields(_ context.Context, id string, updates map[string]any) error {
	e, ok := m.events[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["event_completed"].(bool); ok {
		e.Completed = v
	}
	if v, ok := updates["event_image_url"].(string); ok {
		e.ImageURL = v
	}
	return nil
}

func (m *memEvents) Delete(_ context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.events, id)
	delete(m.roster, id)
	return nil
}

func (m *memEvents) Participants(_ context.Context, id string) ([]model.EventParticipantModel, error) {
	out := []model.EventParticipantModel{}
	for i, uid := range m.roster[id] {
		out = append(out, model.EventParticipantModel{EventID: id, UserID: uid, Seq: int64(i + 1)})
	}
	return out, nil
}

func (m *memEvents) EventsOfUser(_ context.Context, userID uuid.UUID) ([]model.EventModel, error) {
	out := []model.EventModel{}
	for id, list := range m.roster {
		if indexOf(list, userID) >= 0 {
			out = append(out, *m.load(m.events[id]))
		}
	}
	return out, nil
}

func indexOf(list []uuid.UUID, id uuid.UUID) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

func (m *memEvents) Participate(_ context.Context, eventID string, userID uuid.UUID, _ time.Time, guard repository.RosterGuard) error {
	e, ok := m.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if err := guard(m.load(e), indexOf(m.roster[eventID], userID) >= 0); err != nil {
		return err
	}
	m.roster[eventID] = append(m.roster[eventID], userID)
	return nil
}

func (m *memEvents) Cancel(_ context.Context, eventID string, userID uuid.UUID, guard repository.RosterGuard) error {
	e, ok := m.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i := indexOf(m.roster[eventID], userID)
	if err := guard(m.load(e), i >= 0); err != nil {
		return err
	}
	m.roster[eventID] = append(m.roster[eventID][:i], m.roster[eventID][i+1:]...)
	return nil
}

func (m *memEvents) AllTags(context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, e := range m.events {
		for _, t := range e.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memEvents) MarkPastCompleted(_ context.Context, today time.Time) (int64, error) {
	var n int64
	for _, e := range m.events {
		if !e.Completed && e.IsCompletedAt(today) {
			e.Completed = true
			n++
		}
	}
	return n, nil
}

/* ===============================
   Helpers
=================================*/

var fixedNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*EventService, *memEvents, uuid.UUID) {
	t.Helper()
	deptID := uuid.New()
	depts := memDepartments{deptID: {ID: deptID, Name: "School of Science and Computer Studies", Abbr: "SSCS"}}
	repo := newMemEvents(depts)
	svc := NewEventService(repo, depts, nil, func() time.Time { return fixedNow })
	return svc, repo, deptID
}

func validCreate(deptID uuid.UUID) dto.CreateEventRequest {
	return dto.CreateEventRequest{
		Title:        "Intro to AI",
		DepartmentID: deptID.String(),
		StartDate:    "2025-04-01",
		EndDate:      "2025-04-02",
		Location:     "Main Hall",
		Category:     "Workshop",
		Tags:         []string{"ai", "beginner-friendly"},
	}
}

func assertKind(t *testing.T, err error, kind helper.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, helper.IsKind(err, kind), "unexpected error %v", err)
}

/* ===============================
   Tests
=================================*/

func TestCreateAssignsSequentialIDs(t *testing.T) {
	svc, _, deptID := newTestService(t)
	ctx := context.Background()

	for _, want := range []string{"EVT001", "EVT002", "EVT003"} {
		e, err := svc.Create(ctx, validCreate(deptID))
		require.NoError(t, err)
		assert.Equal(t, want, e.ID)
	}
}

func TestCreateKeepsTagOrder(t *testing.T) {
	svc, _, deptID := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreate(deptID))
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ai", "beginner-friendly"}, []string(got.Tags))
}

func TestCreateValidation(t *testing.T) {
	svc, _, deptID := newTestService(t)
	ctx := context.Background()

	shortTag := validCreate(deptID)
	shortTag.Tags = []string{"a"}
	_, err := svc.Create(ctx, shortTag)
	assertKind(t, err, helper.KindValidation)

	for _, tags := range [][]string{{"has space"}, {" ai"}, {"ai "}, {" "}, {"ai", ""}} {
		spaced := validCreate(deptID)
		spaced.Tags = tags
		_, err = svc.Create(ctx, spaced)
		assertKind(t, err, helper.KindValidation)
	}

	backwards := validCreate(deptID)
	backwards.StartDate, backwards.EndDate = "2025-04-05", "2025-04-01"
	_, err = svc.Create(ctx, backwards)
	assertKind(t, err, helper.KindValidation)

	badCategory := validCreate(deptID)
	badCategory.Category = "Party"
	_, err = svc.Create(ctx, badCategory)
	assertKind(t, err, helper.KindValidation)

	unknownDept := validCreate(uuid.New())
	_, err = svc.Create(ctx, unknownDept)
	assertKind(t, err, helper.KindValidation)

	noTitle := validCreate(deptID)
	noTitle.Title = "   "
	_, err = svc.Create(ctx, noTitle)
	assertKind(t, err, helper.KindValidation)
}

func TestParticipateRules(t *testing.T) {
	svc, repo, deptID := newTestService(t)
	ctx := context.Background()

	req := validCreate(deptID)
	req.MaxParticipants = 2
	e, err := svc.Create(ctx, req)
	require.NoError(t, err)

	first, second, third := uuid.New(), uuid.New(), uuid.New()

	_, err = svc.Participate(ctx, e.ID, first)
	require.NoError(t, err)

	_, err = svc.Participate(ctx, e.ID, first)
	assertKind(t, err, helper.KindConflict)
	assert.Len(t, repo.roster[e.ID], 1)

	got, err := svc.Participate(ctx, e.ID, second)
	require.NoError(t, err)
	assert.True(t, got.IsFull())
	assert.Equal(t, 0, got.RemainingSlots())

	_, err = svc.Participate(ctx, e.ID, third)
	assertKind(t, err, helper.KindCapacity)

	_, err = svc.Participate(ctx, "EVT999", third)
	assertKind(t, err, helper.KindNotFound)
}

func TestParticipateTwiceOnFullEventIsConflict(t *testing.T) {
	svc, repo, deptID := newTestService(t)
	ctx := context.Background()

	req := validCreate(deptID)
	req.MaxParticipants = 1
	e, err := svc.Create(ctx, req)
	require.NoError(t, err)

	student := uuid.New()
	got, err := svc.Participate(ctx, e.ID, student)
	require.NoError(t, err)
	require.True(t, got.IsFull())

	_, err = svc.Participate(ctx, e.ID, student)
	assertKind(t, err, helper.KindConflict)
	assert.Equal(t, []uuid.UUID{student}, repo.roster[e.ID])

	_, err = svc.Participate(ctx, e.ID, uuid.New())
	assertKind(t, err, helper.KindCapacity)
	assert.Len(t, repo.roster[e.ID], 1)
}

func TestCancelAfterDeadlineKeepsRoster(t *testing.T) {
	svc, repo, deptID := newTestService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, validCreate(deptID))
	require.NoError(t, err)

	student := uuid.New()
	_, err = svc.Participate(ctx, e.ID, student)
	require.NoError(t, err)

	past := fixedNow.Add(-time.Hour)
	repo.events[e.ID].RegistrationDeadline = &past

	_, err = svc.Cancel(ctx, e.ID, student)
	assertKind(t, err, helper.KindValidation)
	assert.Equal(t, []uuid.UUID{student}, repo.roster[e.ID])

	_, err = svc.Participate(ctx, e.ID, uuid.New())
	assertKind(t, err, helper.KindValidation)
}

func TestCancel(t *testing.T) {
	svc, repo, deptID := newTestService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, validCreate(deptID))
	require.NoError(t, err)

	student := uuid.New()
	_, err = svc.Cancel(ctx, e.ID, student)
	assertKind(t, err, helper.KindNotFound)

	_, err = svc.Participate(ctx, e.ID, student)
	require.NoError(t, err)

	got, err := svc.Cancel(ctx, e.ID, student)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ParticipantCount)
	assert.Empty(t, repo.roster[e.ID])
}

func TestUpdateRevalidatesMergedEvent(t *testing.T) {
	svc, _, deptID := newTestService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, validCreate(deptID))
	require.NoError(t, err)

	early := "2025-03-01"
	_, err = svc.Update(ctx, e.ID, dto.UpdateEventRequest{EndDate: &early})
	assertKind(t, err, helper.KindValidation)

	padded := []string{"ai", " beginner"}
	_, err = svc.Update(ctx, e.ID, dto.UpdateEventRequest{Tags: &padded})
	assertKind(t, err, helper.KindValidation)

	title := "Advanced AI"
	capacity := 30
	updated, err := svc.Update(ctx, e.ID, dto.UpdateEventRequest{Title: &title, MaxParticipants: &capacity})
	require.NoError(t, err)
	assert.Equal(t, "Advanced AI", updated.Title)
	assert.Equal(t, 30, updated.MaxParticipants)
	assert.Equal(t, "2025-04-02", time.Time(updated.EndDate).Format("2006-01-02"))

	_, err = svc.Update(ctx, "EVT404", dto.UpdateEventRequest{Title: &title})
	assertKind(t, err, helper.KindNotFound)
}

func TestActiveAndCompletedPartition(t *testing.T) {
	svc, _, deptID := newTestService(t)
	ctx := context.Background()

	past := validCreate(deptID)
	past.StartDate, past.EndDate = "2025-03-01", "2025-03-09"
	pastEvt, err := svc.Create(ctx, past)
	require.NoError(t, err)

	endedToday := validCreate(deptID)
	endedToday.StartDate, endedToday.EndDate, endedToday.EndTime = "2025-03-10", "2025-03-10", "12:00"
	endedEvt, err := svc.Create(ctx, endedToday)
	require.NoError(t, err)

	upcoming, err := svc.Create(ctx, validCreate(deptID))
	require.NoError(t, err)

	active, err := svc.Active(ctx, model.EventFilter{})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, upcoming.ID, active[0].ID)

	completed, err := svc.Completed(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, pastEvt.ID, completed[0].ID)
	assert.NotEqual(t, endedEvt.ID, completed[0].ID)

	_, err = svc.SetCompleted(ctx, upcoming.ID, true)
	require.NoError(t, err)
	completed, err = svc.Completed(ctx)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	_, err = svc.SetCompleted(ctx, upcoming.ID, false)
	require.NoError(t, err)
	active, err = svc.Active(ctx, model.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSweepCompleted(t *testing.T) {
	svc, repo, deptID := newTestService(t)
	ctx := context.Background()

	past := validCreate(deptID)
	past.StartDate, past.EndDate = "2025-03-01", "2025-03-09"
	e, err := svc.Create(ctx, past)
	require.NoError(t, err)
	_, err = svc.Create(ctx, validCreate(deptID))
	require.NoError(t, err)

	n, err := svc.SweepCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.True(t, repo.events[e.ID].Completed)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.List(context.Background(), model.EventFilter{Status: "soon"})
	assertKind(t, err, helper.KindValidation)
}

func TestDeleteEvent(t *testing.T) {
	svc, _, deptID := newTestService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, validCreate(deptID))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, e.ID))

	_, err = svc.Get(ctx, e.ID)
	assertKind(t, err, helper.KindNotFound)
	assertKind(t, svc.Delete(ctx, e.ID), helper.KindNotFound)
}

func TestRosterReads(t *testing.T) {
	svc, _, deptID := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreate(deptID))
	require.NoError(t, err)
	second, err := svc.Create(ctx, validCreate(deptID))
	require.NoError(t, err)

	alice, bob := uuid.New(), uuid.New()
	_, err = svc.Participate(ctx, first.ID, alice)
	require.NoError(t, err)
	_, err = svc.Participate(ctx, first.ID, bob)
	require.NoError(t, err)
	_, err = svc.Participate(ctx, second.ID, alice)
	require.NoError(t, err)

	roster, err := svc.Participants(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, alice, roster[0].UserID)
	assert.Equal(t, bob, roster[1].UserID)

	_, err = svc.Participants(ctx, "EVT404")
	assertKind(t, err, helper.KindNotFound)

	mine, err := svc.EventsOfUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	mine, err = svc.EventsOfUser(ctx, bob)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ai", "beginner-friendly"}, tags)
	assert.Contains(t, svc.Categories(), "Workshop")
}
