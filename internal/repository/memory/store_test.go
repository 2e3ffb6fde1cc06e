package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whenandwhere/internal/domain"
)

func TestEventRepository_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	e := &domain.Event{
		Name:               "Sprint Planning",
		DateSlots:          []domain.DateSlot{{ID: "S1", Date: "2025-03-10"}},
		InvitedAttendeeIDs: []string{"a1"},
		CreatedAt:          time.Now(),
	}
	require.NoError(t, s.Events().Create(ctx, e))
	require.NotEmpty(t, e.ID)

	e.InvitedAttendeeIDs[0] = "mutated"
	got, err := s.Events().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, got.InvitedAttendeeIDs)

	got.DateSlots[0].ID = "mutated"
	again, err := s.Events().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "S1", again.DateSlots[0].ID)
}

func TestEventRepository_ListNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Events().Create(ctx, &domain.Event{Name: "e", CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	page, total, err := s.Events().List(ctx, domain.PaginationParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, base.Add(4*time.Hour), page[0].CreatedAt)

	page, _, err = s.Events().List(ctx, domain.PaginationParams{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, base, page[0].CreatedAt)

	page, _, err = s.Events().List(ctx, domain.PaginationParams{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestEventRepository_Delete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	e := &domain.Event{Name: "e"}
	require.NoError(t, s.Events().Create(ctx, e))

	require.NoError(t, s.Events().Delete(ctx, e.ID))
	assert.ErrorIs(t, s.Events().Delete(ctx, e.ID), domain.ErrNotFound)
	_, err := s.Events().GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttendeeRepository(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Attendees()
	ann := domain.NewAttendee("Ann", "ann@example.com", time.Now())
	bo := domain.NewAttendee("Bo", "", time.Now())
	require.NoError(t, repo.Create(ctx, ann))
	require.NoError(t, repo.Create(ctx, bo))
	assert.NotEqual(t, ann.ID, bo.ID)

	got, err := repo.ListByIDs(ctx, []string{bo.ID, "missing", ann.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bo", got[0].Name)
	assert.Equal(t, "Ann", got[1].Name)

	n, err := repo.DeleteByIDs(ctx, []string{ann.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = repo.GetByID(ctx, ann.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResponseRepository_Upsert(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Responses()
	t0 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	first := &domain.Response{EventID: "e1", AttendeeID: "a1", AvailableSlotIDs: []string{"S1", "S2"}, CreatedAt: t0, UpdatedAt: t0}
	created, err := repo.Upsert(ctx, first)
	require.NoError(t, err)
	assert.True(t, created)

	t1 := t0.Add(time.Hour)
	second := &domain.Response{EventID: "e1", AttendeeID: "a1", AvailableSlotIDs: []string{"S2"}, CreatedAt: t1, UpdatedAt: t1}
	created, err = repo.Upsert(ctx, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, t0, second.CreatedAt)

	got, err := repo.GetByEventAndAttendee(ctx, "e1", "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"S2"}, got.AvailableSlotIDs)
	assert.Equal(t, t1, got.UpdatedAt)

	_, err = repo.GetByEventAndAttendee(ctx, "e1", "a2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResponseRepository_ConcurrentUpsertKeepsOneRecord(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Responses()

	var wg sync.WaitGroup
	var mu sync.Mutex
	createdCount := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := repo.Upsert(ctx, &domain.Response{EventID: "e1", AttendeeID: "a1", AvailableSlotIDs: []string{"S1"}})
			assert.NoError(t, err)
			if created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, createdCount)
	all, err := repo.ListByEventID(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestResponseRepository_DeleteByEventID(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Responses()
	for _, key := range [][2]string{{"e1", "a1"}, {"e1", "a2"}, {"e2", "a3"}} {
		_, err := repo.Upsert(ctx, &domain.Response{EventID: key[0], AttendeeID: key[1]})
		require.NoError(t, err)
	}

	n, err := repo.DeleteByEventID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := repo.ListByEventID(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, left)
	other, err := repo.ListByEventID(ctx, "e2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestLogRepository(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Logs()
	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, &domain.LogEntry{Level: "ERROR", Message: msg, Source: "server"}))
	}

	entries, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "second", entries[1].Message)
	assert.Equal(t, domain.LogLevelError, entries[0].Level)
	assert.False(t, entries[0].Timestamp.IsZero())

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	entries, err = repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
