package models

// EventsResponse is the envelope for event list responses, including the
// delta responses served to syncing clients.
type EventsResponse struct {
	Events []Event `json:"events"`
	Length int     `json:"length"`
}

// JournalEntriesResponse is the envelope for journal entry list responses.
type JournalEntriesResponse struct {
	Entries []JournalEntry `json:"entries"`
	Length  int            `json:"length"`
}

// TimerSessionsResponse is the envelope for timer session list responses.
type TimerSessionsResponse struct {
	Sessions []TimerSession `json:"sessions"`
	Length   int            `json:"length"`
}

// StudyGoalsResponse is the envelope for study goal list responses.
type StudyGoalsResponse struct {
	Goals  []StudyGoal `json:"goals"`
	Length int         `json:"length"`
}
