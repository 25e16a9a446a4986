// Package tui implements the terminal user interface of the logbook client:
// the login/registration flow and the main calendar loop (list, detail,
// create, edit, sync and iCalendar export).
package tui

import (
	"context"
	"errors"

	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUserQuit = errors.New("вышел из программы")

type TUI struct {
	services *service.ClientServices
}

func New(services *service.ClientServices, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// LoginFlow runs the menu/login/register pages until the user is signed in
// or quits. Returns the authenticated user's ID.
func (t *TUI) LoginFlow(ctx context.Context) (int64, error) {
	pages := map[string]tea.Model{
		"menu":     NewMenuModel(),
		"login":    NewLoginModel(ctx, t.services.AuthService),
		"register": NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, "menu")
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen()).Run()
	if runErr != nil {
		return 0, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return 0, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return 0, ErrUserQuit
	}

	return result.resultID, nil
}

// MainLoop runs the calendar screen until the user quits or logs out.
func (t *TUI) MainLoop(ctx context.Context, userID int64) (logout bool, err error) {
	model := newMainLoopModel(ctx, t.services, userID)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return false, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
