package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/ics"
	"github.com/dmarakulin/learn-logbook/internal/logger"
)

const defaultExportWindow = 90 * 24 * time.Hour

type clientExportService struct {
	syncService ClientSyncService
	cfg         config.ClientExport
	logger      *logger.Logger
}

// NewClientExportService constructs the iCalendar exporter. It works off the
// local snapshot only, so exports succeed offline.
func NewClientExportService(syncService ClientSyncService, cfg config.ClientExport, log *logger.Logger) ClientExportService {
	if cfg.Window <= 0 {
		cfg.Window = defaultExportWindow
	}
	if cfg.ICSPath == "" {
		cfg.ICSPath = "logbook.ics"
	}

	return &clientExportService{
		syncService: syncService,
		cfg:         cfg,
		logger:      log,
	}
}

func (e *clientExportService) ExportICS(ctx context.Context) (string, error) {
	events, err := e.syncService.LocalEvents(ctx)
	if err != nil {
		return "", fmt.Errorf("load local events for export: %w", err)
	}

	now := time.Now()
	expanded, err := ics.ExpandRecurring(events, now, now.Add(e.cfg.Window))
	if err != nil {
		return "", fmt.Errorf("expand recurring events: %w", err)
	}

	payload := ics.Encode(expanded)
	if err := os.WriteFile(e.cfg.ICSPath, []byte(payload), 0o644); err != nil {
		return "", fmt.Errorf("write ics file: %w", err)
	}

	e.logger.Info().Str("path", e.cfg.ICSPath).Int("events", len(expanded)).Msg("calendar exported")
	return e.cfg.ICSPath, nil
}
