package ics

import (
	"fmt"
	"time"

	"github.com/dmarakulin/learn-logbook/models"
	"github.com/teambition/rrule-go"
)

// maxOccurrencesPerEvent is a safety cap to avoid extremely large expansions
// of unbounded rules.
const maxOccurrencesPerEvent = 1000

// ExpandRecurring turns recurring events into concrete occurrences inside the
// [from, until] window. One-off events pass through untouched; each occurrence
// of a recurring event is a copy with shifted times, a cleared rule and a
// derived ID so UIDs stay unique in the exported calendar.
//
// An unparsable rule fails the whole expansion: exports should not silently
// drop calendar entries.
func ExpandRecurring(events []models.Event, from, until time.Time) ([]models.Event, error) {
	if until.Before(from) {
		return nil, fmt.Errorf("expand: window end %s is before start %s", until, from)
	}

	out := make([]models.Event, 0, len(events))
	for _, event := range events {
		if event.RRule == "" {
			out = append(out, event)
			continue
		}

		occurrences, err := expandEvent(event, from, until)
		if err != nil {
			return nil, err
		}
		out = append(out, occurrences...)
	}

	return out, nil
}

func expandEvent(event models.Event, from, until time.Time) ([]models.Event, error) {
	rule, err := rrule.StrToRRule(event.RRule)
	if err != nil {
		return nil, fmt.Errorf("expand: event %s has invalid recurrence rule: %w", event.ID, err)
	}
	rule.DTStart(event.StartTime)

	// Between works in the rule's location.
	starts := rule.Between(from.In(event.StartTime.Location()), until.In(event.StartTime.Location()), true)
	if len(starts) > maxOccurrencesPerEvent {
		starts = starts[:maxOccurrencesPerEvent]
	}

	// Open-ended events carry a zero EndTime; their occurrences stay
	// open-ended instead of inheriting a bogus duration.
	var duration time.Duration
	if !event.EndTime.IsZero() {
		duration = event.EndTime.Sub(event.StartTime)
	}

	occurrences := make([]models.Event, 0, len(starts))
	for _, start := range starts {
		occurrence := event
		occurrence.ID = fmt.Sprintf("%s-%s", event.ID, start.UTC().Format("20060102T150405Z"))
		occurrence.StartTime = start
		occurrence.RRule = ""
		if event.EndTime.IsZero() {
			occurrence.EndTime = time.Time{}
		} else {
			occurrence.EndTime = start.Add(duration)
		}
		occurrences = append(occurrences, occurrence)
	}

	return occurrences, nil
}
