package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whenandwhere/internal/domain"
)

func TestAdminService_ListEvents(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	first := createSprintPlanning(t, env)
	_, _, err := env.responses.SubmitResponse(ctx, first.Event.ID, first.Attendees[0].ID, []string{"S1"})
	require.NoError(t, err)

	in := sprintPlanningInput()
	in.Name = "Retro"
	in.Invitees = in.Invitees[:1]
	second, err := env.events.CreateEvent(ctx, in)
	require.NoError(t, err)

	details, total, err := env.admin.ListEvents(ctx, domain.PaginationParams{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, details, 2)

	byID := map[string]*domain.EventDetails{}
	for _, d := range details {
		byID[d.Event.ID] = d
	}
	assert.Len(t, byID[first.Event.ID].Attendees, 4)
	assert.Len(t, byID[first.Event.ID].Responses, 1)
	assert.Len(t, byID[second.Event.ID].Attendees, 1)
	assert.Equal(t, []*domain.Response{}, byID[second.Event.ID].Responses)

	page, total, err := env.admin.ListEvents(ctx, domain.PaginationParams{Page: 2, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 1)
}

func TestAdminService_DeleteEvent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	result := createSprintPlanning(t, env)

	require.NoError(t, env.admin.DeleteEvent(ctx, result.Event.ID))
	_, err := env.events.GetEvent(ctx, result.Event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, env.admin.DeleteEvent(ctx, result.Event.ID), domain.ErrNotFound)
}

func TestAdminService_ListUsers(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	createSprintPlanning(t, env)
	in := sprintPlanningInput()
	in.Organizer.Email = "DANA@example.com"
	in.Invitees = []domain.Invitee{{Name: "Ann again", Email: "ann@example.com"}, {Name: "Eve"}}
	_, err := env.events.CreateEvent(ctx, in)
	require.NoError(t, err)

	users, err := env.admin.ListUsers(ctx)
	require.NoError(t, err)

	var organizers, attendees []*domain.UserSummary
	for _, u := range users {
		switch u.Type {
		case domain.UserTypeOrganizer:
			organizers = append(organizers, u)
		case domain.UserTypeAttendee:
			attendees = append(attendees, u)
		}
	}
	require.Len(t, organizers, 1)
	assert.Equal(t, 2, organizers[0].EventsOrganized)
	assert.Equal(t, domain.UserTypeOrganizer, users[0].Type, "organizers come first")

	// Ann is grouped by email; Di and Eve have no email and stay separate.
	require.Len(t, attendees, 5)
	counts := map[string]int{}
	for _, a := range attendees {
		counts[a.Email] += a.EventsAttended
	}
	assert.Equal(t, 2, counts["ann@example.com"])
	assert.Equal(t, 2, counts[""])
}

func TestAdminService_Logs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	logs := env.store.Logs()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, logs.Create(ctx, &domain.LogEntry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Level:     domain.LogLevelError,
			Message:   "boom",
			Source:    "server",
		}))
	}

	entries, err := env.admin.ListLogs(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Timestamp.After(entries[1].Timestamp), "newest first")

	entries, err = env.admin.ListLogs(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	n, err := env.admin.ClearLogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	entries, err = env.admin.ListLogs(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []*domain.LogEntry{}, entries)
}
