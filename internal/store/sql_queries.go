package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmarakulin/learn-logbook/models"
)

const (
	createUser = `INSERT INTO users (login, password_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, password_hash, name, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, created_at
    FROM users
    WHERE login = $1;`

	createEvent = `INSERT INTO calendar_events
        (id, owner_id, title, description, start_time, end_time, category, is_backup, completed, rrule, extra)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    RETURNING id, owner_id, title, description, start_time, end_time, category, is_backup, completed, rrule, extra, created_at, updated_at;`

	deleteEvent = `DELETE FROM calendar_events
    WHERE owner_id = $1 AND id = $2;`

	createJournalEntry = `INSERT INTO journal_entries
        (id, owner_id, title, content, mood, study_duration)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id, owner_id, title, content, mood, study_duration, created_at, updated_at;`

	deleteJournalEntry = `DELETE FROM journal_entries
    WHERE owner_id = $1 AND id = $2;`

	createStudyGoal = `INSERT INTO study_goals
        (id, owner_id, title, target_minutes, progress_minutes, deadline, completed)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id, owner_id, title, target_minutes, progress_minutes, deadline, completed, created_at, updated_at;`

	deleteStudyGoal = `DELETE FROM study_goals
    WHERE owner_id = $1 AND id = $2;`

	createTimerSession = `INSERT INTO timer_sessions
        (id, owner_id, type, duration_seconds)
    VALUES ($1, $2, $3, $4)
    RETURNING id, owner_id, type, duration_seconds, created_at, updated_at;`

	deleteTimerSession = `DELETE FROM timer_sessions
    WHERE owner_id = $1 AND id = $2;`
)

// psql is the shared squirrel builder configured for PostgreSQL's $N
// placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	eventColumns = []string{
		"id", "owner_id", "title", "description", "start_time", "end_time",
		"category", "is_backup", "completed", "rrule", "extra",
		"created_at", "updated_at",
	}
	journalColumns = []string{
		"id", "owner_id", "title", "content", "mood", "study_duration",
		"created_at", "updated_at",
	}
	goalColumns = []string{
		"id", "owner_id", "title", "target_minutes", "progress_minutes",
		"deadline", "completed", "created_at", "updated_at",
	}
	sessionColumns = []string{
		"id", "owner_id", "type", "duration_seconds", "created_at", "updated_at",
	}
)

// buildUpdatedSinceQuery builds the delta SELECT used by sync: all records of
// the table owned by ownerID and touched strictly after since, oldest first.
func buildUpdatedSinceQuery(table string, columns []string, ownerID int64, since time.Time) (string, []any, error) {
	return psql.
		Select(columns...).
		From(table).
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.Gt{"updated_at": since}).
		OrderBy("updated_at ASC").
		ToSql()
}

// buildUpdateEventQuery builds a partial UPDATE touching only the fields the
// client actually sent. updated_at is always bumped so the record reappears
// in subsequent delta queries.
func buildUpdateEventQuery(ownerID int64, eventID string, update models.EventUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("calendar_events").Set("updated_at", sq.Expr("NOW()"))

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Description != nil {
		builder = builder.Set("description", *update.Description)
	}
	if update.StartTime != nil {
		builder = builder.Set("start_time", *update.StartTime)
	}
	if update.EndTime != nil {
		builder = builder.Set("end_time", *update.EndTime)
	}
	if update.Category != nil {
		builder = builder.Set("category", *update.Category)
	}
	if update.IsBackup != nil {
		builder = builder.Set("is_backup", *update.IsBackup)
	}
	if update.Completed != nil {
		builder = builder.Set("completed", *update.Completed)
	}
	if update.RRule != nil {
		builder = builder.Set("rrule", *update.RRule)
	}
	if update.Extra != nil {
		builder = builder.Set("extra", update.Extra)
	}

	return builder.
		Where(sq.Eq{"owner_id": ownerID, "id": eventID}).
		Suffix("RETURNING " + joinColumns(eventColumns)).
		ToSql()
}

// buildUpdateJournalQuery builds a partial UPDATE for a journal entry.
func buildUpdateJournalQuery(ownerID int64, entryID string, update models.JournalEntryUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("journal_entries").Set("updated_at", sq.Expr("NOW()"))

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.Content != nil {
		builder = builder.Set("content", *update.Content)
	}
	if update.Mood != nil {
		builder = builder.Set("mood", *update.Mood)
	}
	if update.StudyDuration != nil {
		builder = builder.Set("study_duration", *update.StudyDuration)
	}

	return builder.
		Where(sq.Eq{"owner_id": ownerID, "id": entryID}).
		Suffix("RETURNING " + joinColumns(journalColumns)).
		ToSql()
}

// buildUpdateGoalQuery builds a partial UPDATE for a study goal.
func buildUpdateGoalQuery(ownerID int64, goalID string, update models.StudyGoalUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("study_goals").Set("updated_at", sq.Expr("NOW()"))

	if update.Title != nil {
		builder = builder.Set("title", *update.Title)
	}
	if update.TargetMinutes != nil {
		builder = builder.Set("target_minutes", *update.TargetMinutes)
	}
	if update.ProgressMinutes != nil {
		builder = builder.Set("progress_minutes", *update.ProgressMinutes)
	}
	if update.Deadline != nil {
		builder = builder.Set("deadline", *update.Deadline)
	}
	if update.Completed != nil {
		builder = builder.Set("completed", *update.Completed)
	}

	return builder.
		Where(sq.Eq{"owner_id": ownerID, "id": goalID}).
		Suffix("RETURNING " + joinColumns(goalColumns)).
		ToSql()
}

// buildUpdateSessionQuery builds a partial UPDATE for a timer session.
func buildUpdateSessionQuery(ownerID int64, sessionID string, update models.TimerSessionUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, ErrEmptyUpdate
	}

	builder := psql.Update("timer_sessions").Set("updated_at", sq.Expr("NOW()"))

	if update.Type != nil {
		builder = builder.Set("type", *update.Type)
	}
	if update.DurationSeconds != nil {
		builder = builder.Set("duration_seconds", *update.DurationSeconds)
	}

	return builder.
		Where(sq.Eq{"owner_id": ownerID, "id": sessionID}).
		Suffix("RETURNING " + joinColumns(sessionColumns)).
		ToSql()
}

func joinColumns(columns []string) string {
	out := columns[0]
	for _, c := range columns[1:] {
		out += ", " + c
	}
	return out
}
