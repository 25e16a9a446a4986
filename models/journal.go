package models

import "time"

// JournalEntry is a free-form study diary record.
type JournalEntry struct {
	// ID is the server-assigned UUID of the entry.
	ID string `json:"id"`

	// OwnerID identifies the user owning the entry.
	OwnerID int64 `json:"owner_id"`

	Title   string `json:"title"`
	Content string `json:"content"`

	// Mood is an optional self-reported mood label ("focused", "tired", ...).
	Mood string `json:"mood,omitempty"`

	// StudyDuration is the studied time the entry reflects, in minutes.
	StudyDuration int `json:"study_duration,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the JournalEntry model.
func (j JournalEntry) TableName() string {
	return "journal_entries"
}

// JournalEntryUpdate is a partial update of a [JournalEntry].
type JournalEntryUpdate struct {
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	Mood          *string `json:"mood,omitempty"`
	StudyDuration *int    `json:"study_duration,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u JournalEntryUpdate) IsEmpty() bool {
	return u.Title == nil && u.Content == nil && u.Mood == nil && u.StudyDuration == nil
}
