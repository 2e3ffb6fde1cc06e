package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whenandwhere/internal/domain"
)

func twoSlotEvent() *domain.Event {
	return &domain.Event{
		ID: "ev-1",
		DateSlots: []domain.DateSlot{
			{ID: "S1", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"},
			{ID: "S2", Date: "2025-03-11", StartTime: "14:00", EndTime: "15:00"},
		},
		InvitedAttendeeIDs: []string{"A", "B", "C", "D"},
	}
}

func resp(attendeeID string, slots ...string) *domain.Response {
	return &domain.Response{EventID: "ev-1", AttendeeID: attendeeID, AvailableSlotIDs: slots}
}

func TestTallySlots(t *testing.T) {
	event := twoSlotEvent()
	tallies := TallySlots(event, []*domain.Response{
		resp("A", "S1", "S2"),
		resp("B", "S1"),
	})
	require.Len(t, tallies, 2)
	assert.Equal(t, "S1", tallies[0].Slot.ID)
	assert.Equal(t, 2, tallies[0].Count)
	assert.Equal(t, []string{"A", "B"}, tallies[0].AttendeeIDs)
	assert.Equal(t, "S2", tallies[1].Slot.ID)
	assert.Equal(t, 1, tallies[1].Count)
	assert.Equal(t, []string{"A"}, tallies[1].AttendeeIDs)
}

func TestTallySlots_IgnoresUnknownAndDuplicateIDs(t *testing.T) {
	tallies := TallySlots(twoSlotEvent(), []*domain.Response{
		resp("A", "S1", "S1", "gone"),
	})
	assert.Equal(t, 1, tallies[0].Count)
	assert.Equal(t, 0, tallies[1].Count)
	assert.Equal(t, []string{}, tallies[1].AttendeeIDs)
}

func TestMostPopularSlot(t *testing.T) {
	tests := []struct {
		name      string
		event     *domain.Event
		responses []*domain.Response
		want      string
	}{
		{
			name:      "highest count wins",
			event:     twoSlotEvent(),
			responses: []*domain.Response{resp("A", "S1", "S2"), resp("B", "S1")},
			want:      "S1",
		},
		{
			name:      "single response single slot",
			event:     twoSlotEvent(),
			responses: []*domain.Response{resp("A", "S2")},
			want:      "S2",
		},
		{
			name:      "overlapping responses",
			event:     twoSlotEvent(),
			responses: []*domain.Response{resp("A", "S2"), resp("B", "S1", "S2")},
			want:      "S2",
		},
		{
			name:  "no responses",
			event: twoSlotEvent(),
			want:  "",
		},
		{
			name:      "responses without slots",
			event:     twoSlotEvent(),
			responses: []*domain.Response{resp("A"), resp("B", "unknown")},
			want:      "",
		},
		{
			name:      "tie goes to earliest date",
			event:     twoSlotEvent(),
			responses: []*domain.Response{resp("A", "S2"), resp("B", "S1")},
			want:      "S1",
		},
		{
			name: "tie on date goes to earliest start, all-day first",
			event: &domain.Event{DateSlots: []domain.DateSlot{
				{ID: "late", Date: "2025-03-10", StartTime: "15:00", EndTime: "16:00"},
				{ID: "early", Date: "2025-03-10", StartTime: "08:00", EndTime: "09:00"},
				{ID: "allday", Date: "2025-03-10"},
			}},
			responses: []*domain.Response{resp("A", "late", "early", "allday")},
			want:      "allday",
		},
		{
			name: "unpadded hour compares as a time",
			event: &domain.Event{DateSlots: []domain.DateSlot{
				{ID: "b", Date: "2025-03-10", StartTime: "10:00", EndTime: "11:00"},
				{ID: "z-early", Date: "2025-03-10", StartTime: "9:00", EndTime: "9:30"},
			}},
			responses: []*domain.Response{resp("A", "b"), resp("B", "z-early")},
			want:      "z-early",
		},
		{
			name: "full tie goes to smallest id",
			event: &domain.Event{DateSlots: []domain.DateSlot{
				{ID: "b", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"},
				{ID: "a", Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"},
			}},
			responses: []*domain.Response{resp("A", "b", "a")},
			want:      "a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MostPopularSlot(tt.event, tt.responses))
		})
	}
}

func TestResponseRate(t *testing.T) {
	assert.Equal(t, 50.0, ResponseRate(4, 2))
	assert.Equal(t, 100.0, ResponseRate(3, 3))
	assert.Equal(t, 0.0, ResponseRate(0, 0))
	assert.Equal(t, 0.0, ResponseRate(5, 0))
	assert.InDelta(t, 33.333, ResponseRate(3, 1), 0.001)
}

func TestSummarize(t *testing.T) {
	av := Summarize(twoSlotEvent(), []*domain.Response{resp("A", "S1", "S2"), resp("B", "S1")})
	assert.Equal(t, "ev-1", av.EventID)
	assert.Equal(t, 4, av.AttendeeCount)
	assert.Equal(t, 2, av.ResponseCount)
	assert.Equal(t, 50.0, av.ResponseRate)
	require.NotNil(t, av.MostPopularSlotID)
	assert.Equal(t, "S1", *av.MostPopularSlotID)
	assert.Len(t, av.Slots, 2)

	empty := Summarize(twoSlotEvent(), nil)
	assert.Nil(t, empty.MostPopularSlotID)
	assert.Equal(t, 0.0, empty.ResponseRate)
}
