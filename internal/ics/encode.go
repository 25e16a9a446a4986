// Package ics renders the local study calendar as an iCalendar document.
package ics

import (
	"sort"

	ical "github.com/arran4/golang-ical"
	"github.com/dmarakulin/learn-logbook/models"
)

const productID = "-//learn-logbook//calendar export//EN"

// Encode serialises events into an iCalendar (RFC 5545) document. Events are
// emitted in chronological order; caller is expected to have expanded
// recurring events beforehand (see [ExpandRecurring]).
func Encode(events []models.Event) string {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, event := range sorted {
		ve := cal.AddEvent(event.ID)
		ve.SetSummary(event.Title)
		ve.SetStartAt(event.StartTime)
		if !event.EndTime.IsZero() {
			ve.SetEndAt(event.EndTime)
		}
		ve.SetDtStampTime(event.UpdatedAt)

		if event.Description != "" {
			ve.SetDescription(event.Description)
		}
		if event.Category != "" {
			ve.AddProperty(ical.ComponentPropertyCategories, event.Category)
		}
		if !event.CreatedAt.IsZero() {
			ve.SetCreatedTime(event.CreatedAt)
		}
		if event.Completed {
			ve.SetStatus(ical.ObjectStatusCompleted)
		}
	}

	return cal.Serialize()
}
