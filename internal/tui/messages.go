package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dmarakulin/learn-logbook/models"
)

// NavigateTo switches the RootModel to another page, optionally delivering a
// payload message to it.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the authentication flow. Produced by both the login
// and the register pages (registration signs the user in).
type LoginResult struct {
	Err      error
	Username string
	UserID   int64
}

type listLoadedMsg struct {
	events []models.Event
	err    error
}

type syncDoneMsg struct {
	events []models.Event
	err    error
}

type createDoneMsg struct {
	err error
}

type updateDoneMsg struct {
	err error
}

type deleteDoneMsg struct {
	err error
}

type exportDoneMsg struct {
	path string
	err  error
}
