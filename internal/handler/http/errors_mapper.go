package http

import (
	"errors"
	"net/http"

	"github.com/dmarakulin/learn-logbook/internal/service"
	"github.com/dmarakulin/learn-logbook/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	service.ErrValidationEmptyTitle:       http.StatusBadRequest,
	service.ErrValidationEndBeforeStart:   http.StatusBadRequest,
	service.ErrValidationBadRecurrence:    http.StatusBadRequest,
	service.ErrValidationEmptyUpdate:      http.StatusBadRequest,
	service.ErrValidationNoUserID:         http.StatusBadRequest,
	service.ErrValidationNegativeMinutes:  http.StatusBadRequest,
	service.ErrValidationNegativeDuration: http.StatusBadRequest,
	service.ErrValidationBadSessionType:   http.StatusBadRequest,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrRecordNotFound:     http.StatusNotFound,
	store.ErrEmptyUpdate:        http.StatusBadRequest,
	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
