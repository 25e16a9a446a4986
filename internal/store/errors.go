package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRecordNotFound is returned when a query or update targets a record
	// (identified by id and owner_id) that does not exist in the database.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrEmptyUpdate is returned when an UPDATE is requested with no fields
	// to change.
	ErrEmptyUpdate = errors.New("update contains no fields")
)

// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
// query fails before it reaches the driver.
var ErrBuildingSQLQuery = errors.New("error building sql query")
