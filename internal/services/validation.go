package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"whenandwhere/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// normalizeCreateEventInput trims fields, fills defaults and rejects malformed input
// before anything is written.
func normalizeCreateEventInput(in *domain.CreateEventInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	in.Organizer.Name = strings.TrimSpace(in.Organizer.Name)
	in.Organizer.Email = strings.TrimSpace(in.Organizer.Email)
	in.Description = strings.TrimSpace(in.Description)
	in.Website = strings.TrimSpace(in.Website)
	in.Language = strings.ToLower(strings.TrimSpace(in.Language))

	switch {
	case in.Name == "":
		return domain.InvalidInputf("name is required")
	case in.Location == "":
		return domain.InvalidInputf("location is required")
	case in.Organizer.Name == "":
		return domain.InvalidInputf("organizer name is required")
	case in.Organizer.Email == "":
		return domain.InvalidInputf("organizer email is required")
	case !emailRegex.MatchString(in.Organizer.Email):
		return domain.InvalidInputf("organizer email %q is invalid", in.Organizer.Email)
	}

	switch in.Language {
	case "":
		in.Language = domain.LanguageEnglish
	case domain.LanguageEnglish, domain.LanguageSwedish:
	default:
		return domain.InvalidInputf("language must be %q or %q", domain.LanguageEnglish, domain.LanguageSwedish)
	}

	if len(in.DateSlots) == 0 {
		return domain.InvalidInputf("at least one date slot is required")
	}
	seen := make(map[string]struct{}, len(in.DateSlots))
	for i := range in.DateSlots {
		slot := &in.DateSlots[i]
		if err := normalizeSlot(slot); err != nil {
			return err
		}
		if _, dup := seen[slot.ID]; dup {
			return domain.InvalidInputf("duplicate date slot id %q", slot.ID)
		}
		seen[slot.ID] = struct{}{}
	}

	for i := range in.Invitees {
		inv := &in.Invitees[i]
		inv.Name = strings.TrimSpace(inv.Name)
		inv.Email = strings.TrimSpace(inv.Email)
		if inv.Name == "" {
			return domain.InvalidInputf("invitee %d: name is required", i+1)
		}
		if inv.Email != "" && !emailRegex.MatchString(inv.Email) {
			return domain.InvalidInputf("invitee %q: email %q is invalid", inv.Name, inv.Email)
		}
	}
	return nil
}

func normalizeSlot(slot *domain.DateSlot) error {
	slot.ID = strings.TrimSpace(slot.ID)
	slot.Date = strings.TrimSpace(slot.Date)
	slot.StartTime = strings.TrimSpace(slot.StartTime)
	slot.EndTime = strings.TrimSpace(slot.EndTime)
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if _, err := time.Parse(domain.SlotDateLayout, slot.Date); err != nil {
		return domain.InvalidInputf("date slot %q: date %q must be YYYY-MM-DD", slot.ID, slot.Date)
	}
	if slot.AllDay() {
		return nil
	}
	if slot.StartTime == "" || slot.EndTime == "" {
		return domain.InvalidInputf("date slot %q: start_time and end_time must both be set or both be empty", slot.ID)
	}
	start, err := time.Parse(domain.SlotTimeLayout, slot.StartTime)
	if err != nil {
		return domain.InvalidInputf("date slot %q: start_time %q must be HH:MM", slot.ID, slot.StartTime)
	}
	end, err := time.Parse(domain.SlotTimeLayout, slot.EndTime)
	if err != nil {
		return domain.InvalidInputf("date slot %q: end_time %q must be HH:MM", slot.ID, slot.EndTime)
	}
	if end.Before(start) {
		return domain.InvalidInputf("date slot %q: end_time precedes start_time", slot.ID)
	}
	// Stored zero-padded so string order matches time order ("9:00" becomes "09:00").
	slot.StartTime = start.Format(domain.SlotTimeLayout)
	slot.EndTime = end.Format(domain.SlotTimeLayout)
	return nil
}

// normalizeSlotSelection rejects slot ids that are not part of event and drops duplicates,
// keeping the first occurrence.
func normalizeSlotSelection(event *domain.Event, slotIDs []string) ([]string, error) {
	out := make([]string, 0, len(slotIDs))
	seen := make(map[string]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		if _, ok := event.Slot(id); !ok {
			return nil, domain.InvalidInputf("unknown date slot id %q", id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
