// Package calendar renders events as iCalendar documents.
package calendar

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"whenandwhere/internal/domain"
)

const (
	productID = "-//whenandwhere//EN"

	icalDateLayout     = "20060102"
	icalDateTimeLayout = "20060102T150405"
)

// ErrSlotNotFound is returned when the requested slot is not part of the event.
var ErrSlotNotFound = fmt.Errorf("date slot %w", domain.ErrNotFound)

// Encode writes event as a VCALENDAR with one VEVENT per date slot. When slotID is not
// empty only that slot is written. Slot times carry no zone, so they are written as
// floating local times; all-day slots become DATE values.
func Encode(w io.Writer, event *domain.Event, slotID string, stamp time.Time) error {
	slots := event.DateSlots
	if slotID != "" {
		s, ok := event.Slot(slotID)
		if !ok {
			return ErrSlotNotFound
		}
		slots = []domain.DateSlot{s}
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	for _, s := range slots {
		ve, err := toVEvent(event, s, stamp)
		if err != nil {
			return err
		}
		cal.Children = append(cal.Children, ve)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode event to iCal format: %w", err)
	}
	return nil
}

func toVEvent(event *domain.Event, slot domain.DateSlot, stamp time.Time) (*ical.Component, error) {
	start, err := slot.Start(time.UTC)
	if err != nil {
		return nil, fmt.Errorf("slot %s start: %w", slot.ID, err)
	}
	end, err := slot.End(time.UTC)
	if err != nil {
		return nil, fmt.Errorf("slot %s end: %w", slot.ID, err)
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s@whenandwhere", event.ID, slot.ID))
	ve.Props.SetText(ical.PropSummary, event.Name)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	if slot.AllDay() {
		ve.Props.Set(floatingProp(ical.PropDateTimeStart, ical.ValueDate, start.Format(icalDateLayout)))
		ve.Props.Set(floatingProp(ical.PropDateTimeEnd, ical.ValueDate, end.Format(icalDateLayout)))
	} else {
		ve.Props.Set(floatingProp(ical.PropDateTimeStart, ical.ValueDateTime, start.Format(icalDateTimeLayout)))
		ve.Props.Set(floatingProp(ical.PropDateTimeEnd, ical.ValueDateTime, end.Format(icalDateTimeLayout)))
	}

	if event.Description != "" {
		ve.Props.SetText(ical.PropDescription, event.Description)
	}
	if event.Location != "" {
		ve.Props.SetText(ical.PropLocation, event.Location)
	}
	if event.Website != "" {
		ve.Props.SetText(ical.PropURL, event.Website)
	}
	if event.OrganizerEmail != "" {
		p := ical.NewProp(ical.PropOrganizer)
		p.SetText(fmt.Sprintf("mailto:%s", event.OrganizerEmail))
		if event.OrganizerName != "" {
			p.Params.Set(ical.ParamCommonName, event.OrganizerName)
		}
		ve.Props.Set(p)
	}
	return ve, nil
}

func floatingProp(name string, valueType ical.ValueType, value string) *ical.Prop {
	p := ical.NewProp(name)
	p.SetValueType(valueType)
	p.Value = value
	return p
}
