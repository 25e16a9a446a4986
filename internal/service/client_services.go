package service

import (
	"github.com/dmarakulin/learn-logbook/internal/adapter"
	"github.com/dmarakulin/learn-logbook/internal/cache"
	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/logger"
)

// ClientServices bundles every client-side service behind one value for the
// TUI and the app wiring.
type ClientServices struct {
	Identity      *sessionIdentity
	AuthService   ClientAuthService
	SyncService   ClientSyncService
	SyncJob       ClientSyncJob
	ExportService ClientExportService
}

// NewClientServices wires the client service graph: one session identity
// shared by auth and sync, the reconciler on top of the cache store and
// adapter, the background sync job, and the iCalendar exporter.
func NewClientServices(cacheStore cache.Store, serverAdapter adapter.ServerAdapter, cfg *config.ClientConfig, log *logger.Logger) *ClientServices {
	identity := NewSessionIdentity()
	authSvc := NewClientAuthService(serverAdapter, identity, log)
	syncSvc := NewClientSyncService(cacheStore, serverAdapter, identity, log)

	return &ClientServices{
		Identity:      identity,
		AuthService:   authSvc,
		SyncService:   syncSvc,
		SyncJob:       NewClientSyncJob(syncSvc, cfg.Workers.SyncInterval, log),
		ExportService: NewClientExportService(syncSvc, cfg.Export, log),
	}
}
