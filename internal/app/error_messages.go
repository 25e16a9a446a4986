// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Marakulin

// Package app contains shared application-layer constants used across the
// logbook server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when a decoded request fails basic
	// validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record. Unknown logins and
	// wrong passwords deliberately share this message.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgBadUpdatedAfter is returned when the updated_after query parameter
	// of a delta listing cannot be parsed as an RFC 3339 timestamp.
	MsgBadUpdatedAfter = "updated_after must be an RFC 3339 timestamp"

	// MsgNoUserIDProvided is returned when a handler requires a user ID
	// extracted from the JWT claim but none is present in the request
	// context.
	MsgNoUserIDProvided = "no user ID provided"
)
