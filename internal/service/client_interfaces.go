package service

import (
	"context"

	"github.com/dmarakulin/learn-logbook/models"
)

// Identity resolves the currently authenticated owner of the local cache.
//
// The reconciler fails fast with [ErrNotAuthenticated] when no owner is
// resolvable, before touching the cache or the network.
type Identity interface {
	// CurrentOwnerID returns the authenticated user's ID, or false when
	// nobody is signed in.
	CurrentOwnerID() (int64, bool)
}

// ClientAuthService handles the client side of account registration and
// sign-in. A successful call leaves the adapter holding a bearer token and
// the [Identity] resolving the signed-in owner.
type ClientAuthService interface {
	Register(ctx context.Context, login, password, name string) (models.User, error)
	Login(ctx context.Context, login, password string) (int64, error)

	// Logout forgets the session: the adapter drops its bearer token and the
	// [Identity] resolves nobody until the next sign-in.
	Logout()
}

// ClientSyncService reconciles the local calendar event cache with the
// server.
//
// Sync favours availability: transient remote failures return the last known
// local snapshot instead of an error. Mutations favour correctness: they are
// two-phase (remote first, cache second) and propagate remote failures,
// leaving the cache untouched.
type ClientSyncService interface {
	// Sync fetches remote changes since the last watermark, merges them into
	// the local snapshot by event ID (remote wins), persists the result and
	// returns it.
	Sync(ctx context.Context) ([]models.Event, error)

	// LocalEvents returns the cached snapshot without touching the network.
	LocalEvents(ctx context.Context) ([]models.Event, error)

	// AddEvent inserts the event remotely, then appends the canonical record
	// (server-assigned ID and timestamps) to the cache.
	AddEvent(ctx context.Context, event models.Event) (models.Event, error)

	// UpdateEvent applies a partial update remotely, then mirrors it onto the
	// cached copy if one exists. A locally absent event is a cache no-op.
	UpdateEvent(ctx context.Context, id string, update models.EventUpdate) error

	// RemoveEvent deletes the event remotely (idempotently), then drops it
	// from the cache.
	RemoveEvent(ctx context.Context, id string) error
}

// ClientSyncJob runs [ClientSyncService.Sync] on a fixed schedule in the
// background.
type ClientSyncJob interface {
	// Start launches the periodic sync. Calling Start on a running job
	// restarts it with the new interval.
	Start(ctx context.Context) error

	// Stop halts the schedule and waits for an in-flight sync to finish.
	Stop()
}

// ClientExportService renders the cached calendar to an iCalendar file.
type ClientExportService interface {
	// ExportICS writes the local snapshot (with recurring events expanded
	// over the configured window) to the configured .ics path and returns
	// that path.
	ExportICS(ctx context.Context) (string, error)
}
