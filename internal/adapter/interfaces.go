// Package adapter provides transport-layer abstractions for communicating
// with the logbook server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling. Every failure produced by this package matches [ErrRemote].
package adapter

import (
	"context"
	"time"

	"github.com/dmarakulin/learn-logbook/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the logbook
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register sends a registration request with the provided credentials.
	// On success it stores the returned bearer token via SetToken and returns
	// the server-side user record.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user. On success it stores the returned bearer
	// token via SetToken and returns the parsed token value.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// EventsUpdatedSince fetches all calendar events of the authenticated
	// user whose updated_at is strictly after since. Order of the returned
	// slice is unspecified.
	EventsUpdatedSince(ctx context.Context, since time.Time) ([]models.Event, error)

	// CreateEvent inserts a new calendar event and returns the canonical
	// record with server-assigned ID, CreatedAt and UpdatedAt.
	CreateEvent(ctx context.Context, event models.Event) (models.Event, error)

	// UpdateEvent applies a partial update to the event with the given id.
	// Returns [ErrNotFound] (wrapped) when the event does not exist or does
	// not belong to the authenticated user.
	UpdateEvent(ctx context.Context, id string, update models.EventUpdate) error

	// DeleteEvent removes the event with the given id. Deleting an absent id
	// is not an error: the server answers idempotently.
	DeleteEvent(ctx context.Context, id string) error
}
