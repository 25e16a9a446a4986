package models

import "time"

// Event categories recognised by the logbook UI. The server stores the
// category as free text; these constants only cover the built-in ones.
const (
	CategoryStudy    = "study"
	CategoryExam     = "exam"
	CategoryDeadline = "deadline"
	CategoryRevision = "revision"
)

// Event is a calendar entry of the study logbook.
//
// ID, CreatedAt and UpdatedAt are assigned by the server: ID on insert,
// UpdatedAt on every write. UpdatedAt is the sync watermark source; clients
// must never set it themselves.
type Event struct {
	// ID is the server-assigned UUID of the event. Empty until the event has
	// been inserted remotely.
	ID string `json:"id"`

	// OwnerID identifies the user owning the event. Every remote query and
	// mutation is scoped to this value.
	OwnerID int64 `json:"owner_id"`

	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Category    string    `json:"category,omitempty"`

	// IsBackup marks an alternative slot for the same study goal; backup
	// slots are skipped when the primary slot was completed.
	IsBackup  bool `json:"is_backup"`
	Completed bool `json:"completed"`

	// RRule is an optional iCalendar recurrence rule (RFC 5545 RRULE value,
	// e.g. "FREQ=WEEKLY;BYDAY=MO,WE"). Empty for one-off events.
	RRule string `json:"rrule,omitempty"`

	// Extra carries uncatalogued domain fields. Opaque to the sync layer.
	Extra Payload `json:"extra,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Event model.
func (e Event) TableName() string {
	return "calendar_events"
}

// EventUpdate is a partial update of an [Event]. Nil fields are left
// untouched both on the server and in the local cache.
type EventUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Category    *string    `json:"category,omitempty"`
	IsBackup    *bool      `json:"is_backup,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	RRule       *string    `json:"rrule,omitempty"`
	Extra       Payload    `json:"extra,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u EventUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.Description == nil &&
		u.StartTime == nil &&
		u.EndTime == nil &&
		u.Category == nil &&
		u.IsBackup == nil &&
		u.Completed == nil &&
		u.RRule == nil &&
		u.Extra == nil
}

// ApplyTo copies the non-nil fields of the update onto e.
func (u EventUpdate) ApplyTo(e *Event) {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.StartTime != nil {
		e.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		e.EndTime = *u.EndTime
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.IsBackup != nil {
		e.IsBackup = *u.IsBackup
	}
	if u.Completed != nil {
		e.Completed = *u.Completed
	}
	if u.RRule != nil {
		e.RRule = *u.RRule
	}
	if u.Extra != nil {
		e.Extra = u.Extra
	}
}
