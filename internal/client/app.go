package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/service"
	"github.com/dmarakulin/learn-logbook/internal/tui"
)

// App is the interactive logbook client: the login flow, the background sync
// job and the main calendar loop.
type App struct {
	services *service.ClientServices
	tui      *tui.TUI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app: services and ui are required")
	}

	return &App{services: services, tui: ui, logger: log}, nil
}

// Run drives one full session: sign in, start the periodic sync, run the
// calendar loop. A logout restarts the session from the login flow.
func (a *App) Run() error {
	ctx := context.Background()

	userID, err := a.tui.LoginFlow(ctx)
	if err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return fmt.Errorf("login flow: %w", err)
	}

	// Best effort: a dead network at startup should not block the UI, the
	// cache still serves the last known snapshot.
	if _, err = a.services.SyncService.Sync(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("initial sync failed, serving local cache")
	}

	if err = a.services.SyncJob.Start(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("periodic sync not started")
	}
	defer a.services.SyncJob.Stop()

	logout, err := a.tui.MainLoop(ctx, userID)
	if err != nil {
		return fmt.Errorf("main loop: %w", err)
	}
	if logout {
		a.services.SyncJob.Stop()
		a.services.AuthService.Logout()
		return a.Run()
	}

	return nil
}
