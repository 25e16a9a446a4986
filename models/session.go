package models

import "time"

// Timer session kinds produced by the study timer. The server rejects any
// other value.
const (
	SessionStudy = "study"
	SessionBreak = "break"
)

// TimerSession is a completed study or break interval recorded by the timer.
type TimerSession struct {
	// ID is the server-assigned UUID of the session.
	ID string `json:"id"`

	// OwnerID identifies the user owning the session.
	OwnerID int64 `json:"owner_id"`

	// Type is [SessionStudy] or [SessionBreak].
	Type string `json:"type"`

	// DurationSeconds is the measured length of the interval.
	DurationSeconds int `json:"duration_seconds"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the TimerSession model.
func (s TimerSession) TableName() string {
	return "timer_sessions"
}

// TimerSessionUpdate is a partial update of a [TimerSession].
type TimerSessionUpdate struct {
	Type            *string `json:"type,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u TimerSessionUpdate) IsEmpty() bool {
	return u.Type == nil && u.DurationSeconds == nil
}
