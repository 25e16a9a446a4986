package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired = errors.New("token is expired")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrNotAuthenticated is returned by client operations invoked before a
	// successful login: no owner identity is resolvable, so neither the cache
	// nor the server may be touched.
	ErrNotAuthenticated = errors.New("user not authenticated")

	ErrValidationEmptyTitle       = errors.New("title must not be empty")
	ErrValidationEndBeforeStart   = errors.New("event end time must be after start time")
	ErrValidationBadRecurrence    = errors.New("invalid recurrence rule")
	ErrValidationEmptyUpdate      = errors.New("update carries no fields")
	ErrValidationNoUserID         = errors.New("no user ID was given")
	ErrValidationNegativeMinutes  = errors.New("minutes must not be negative")
	ErrValidationNegativeDuration = errors.New("duration must not be negative")
	ErrValidationBadSessionType   = errors.New("session type must be study or break")
)
