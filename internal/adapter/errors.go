package adapter

import (
	"errors"
	"fmt"
)

// ErrRemote is the base sentinel for every failure produced by a
// [ServerAdapter]: network errors, non-2xx responses, undecodable bodies.
// More specific sentinels below wrap it, so `errors.Is(err, ErrRemote)`
// matches any remote failure regardless of its cause.
var ErrRemote = errors.New("remote record source failure")

var (
	// ErrUnauthorized is returned when the server rejects the request with
	// HTTP 401 (missing, expired or invalid bearer token).
	ErrUnauthorized = fmt.Errorf("%w: client unauthorized", ErrRemote)

	// ErrNotFound is returned when a mutation targets a record that does not
	// exist or is owned by a different user (HTTP 404).
	ErrNotFound = fmt.Errorf("%w: record not found", ErrRemote)

	// ErrValidation is returned when the server rejects the request payload
	// (HTTP 400/422).
	ErrValidation = fmt.Errorf("%w: invalid record data", ErrRemote)
)
