package services

import (
	"sort"
	"time"

	"whenandwhere/internal/domain"
)

// TallySlots counts, per event slot and in event order, the attendees whose response includes
// that slot. Slot ids that do not belong to the event are ignored. Aggregates are recomputed
// in full on every call.
func TallySlots(event *domain.Event, responses []*domain.Response) []domain.SlotTally {
	tallies := make([]domain.SlotTally, len(event.DateSlots))
	index := make(map[string]int, len(event.DateSlots))
	for i, slot := range event.DateSlots {
		tallies[i] = domain.SlotTally{Slot: slot, AttendeeIDs: []string{}}
		index[slot.ID] = i
	}
	for _, resp := range responses {
		seen := make(map[string]struct{}, len(resp.AvailableSlotIDs))
		for _, slotID := range resp.AvailableSlotIDs {
			i, ok := index[slotID]
			if !ok {
				continue
			}
			if _, dup := seen[slotID]; dup {
				continue
			}
			seen[slotID] = struct{}{}
			tallies[i].Count++
			tallies[i].AttendeeIDs = append(tallies[i].AttendeeIDs, resp.AttendeeID)
		}
	}
	return tallies
}

// MostPopularSlot returns the id of the slot with the highest count, or "" when no response
// references any slot of the event. Ties go to the earliest date, then the earliest start
// time (all-day slots first), then the lexicographically smallest slot id.
func MostPopularSlot(event *domain.Event, responses []*domain.Response) string {
	return mostPopular(TallySlots(event, responses))
}

func mostPopular(tallies []domain.SlotTally) string {
	candidates := make([]domain.SlotTally, 0, len(tallies))
	for _, t := range tallies {
		if t.Count > 0 {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Slot.Date != b.Slot.Date {
			return a.Slot.Date < b.Slot.Date
		}
		if sa, sb := startMinutes(a.Slot), startMinutes(b.Slot); sa != sb {
			return sa < sb
		}
		return a.Slot.ID < b.Slot.ID
	})
	return candidates[0].Slot.ID
}

// startMinutes returns the slot start as minutes after midnight, -1 for all-day slots.
// Unparseable times sort last.
func startMinutes(slot domain.DateSlot) int {
	if slot.StartTime == "" {
		return -1
	}
	t, err := time.Parse(domain.SlotTimeLayout, slot.StartTime)
	if err != nil {
		return 24 * 60
	}
	return t.Hour()*60 + t.Minute()
}

// ResponseRate returns responseCount as a percentage of attendeeCount; 0 when there are no attendees.
func ResponseRate(attendeeCount, responseCount int) float64 {
	if attendeeCount <= 0 {
		return 0
	}
	return float64(responseCount) / float64(attendeeCount) * 100
}

// Summarize builds the availability view for an event.
func Summarize(event *domain.Event, responses []*domain.Response) *domain.Availability {
	tallies := TallySlots(event, responses)
	av := &domain.Availability{
		EventID:       event.ID,
		AttendeeCount: len(event.InvitedAttendeeIDs),
		ResponseCount: len(responses),
		ResponseRate:  ResponseRate(len(event.InvitedAttendeeIDs), len(responses)),
		Slots:         tallies,
	}
	if id := mostPopular(tallies); id != "" {
		av.MostPopularSlotID = &id
	}
	return av
}
