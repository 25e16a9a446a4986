package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the logbook server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientCache contains local event cache settings for the client.
type ClientCache struct {
	// Path is the SQLite file backing the local cache.
	Path string
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// SyncInterval defines how often the periodic calendar sync runs.
	SyncInterval time.Duration
}

// ClientExport contains iCalendar export settings.
type ClientExport struct {
	// ICSPath is the file the .ics export is written to.
	ICSPath string
	// Window bounds recurrence expansion when exporting.
	Window time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Cache contains local cache settings.
	Cache ClientCache
	// Workers contains background job settings.
	Workers ClientWorkers
	// Export contains iCalendar export settings.
	Export ClientExport
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Cache: ClientCache{
			Path: cfg.Storage.Cache.Path,
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Export: ClientExport{
			ICSPath: cfg.Export.ICSPath,
			Window:  cfg.Export.Window,
		},
	}

	return clientCfg, clientCfg.validate()
}
