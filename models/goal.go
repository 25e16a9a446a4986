package models

import "time"

// StudyGoal tracks progress towards a time-boxed study target.
type StudyGoal struct {
	// ID is the server-assigned UUID of the goal.
	ID string `json:"id"`

	// OwnerID identifies the user owning the goal.
	OwnerID int64 `json:"owner_id"`

	Title string `json:"title"`

	// TargetMinutes is the total studied time the goal aims for.
	TargetMinutes int `json:"target_minutes"`

	// ProgressMinutes is the studied time accumulated so far.
	ProgressMinutes int `json:"progress_minutes"`

	// Deadline is optional; the zero value means the goal is open-ended.
	Deadline  time.Time `json:"deadline,omitzero"`
	Completed bool      `json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the StudyGoal model.
func (g StudyGoal) TableName() string {
	return "study_goals"
}

// StudyGoalUpdate is a partial update of a [StudyGoal].
type StudyGoalUpdate struct {
	Title           *string    `json:"title,omitempty"`
	TargetMinutes   *int       `json:"target_minutes,omitempty"`
	ProgressMinutes *int       `json:"progress_minutes,omitempty"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Completed       *bool      `json:"completed,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u StudyGoalUpdate) IsEmpty() bool {
	return u.Title == nil &&
		u.TargetMinutes == nil &&
		u.ProgressMinutes == nil &&
		u.Deadline == nil &&
		u.Completed == nil
}
