package http

import (
	"errors"
	"net/http"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
)

// response is the envelope of every admin API answer.
type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type errorStatus struct {
	err    error
	status int
}

// errorStatusMap is matched in order with errors.Is, so specific errors go before their kinds.
var errorStatusMap = []errorStatus{
	{domain.ErrDataNotFound, http.StatusNotFound},
	{domain.ErrConflictingData, http.StatusConflict},
	{domain.ErrNoUpdatedData, http.StatusConflict},

	{domain.ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{domain.ErrInvalidAuthorizationType, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrExpiredToken, http.StatusUnauthorized},
	{domain.ErrSignatureMismatch, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusForbidden},

	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrEligibility, http.StatusUnprocessableEntity},
	{domain.ErrConcurrencyConflict, http.StatusConflict},
	{domain.ErrExternalDelivery, http.StatusBadGateway},
	{domain.ErrPersistence, http.StatusInternalServerError},
}

func statusOf(err error) (int, bool) {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.err) {
			return e.status, true
		}
	}
	return http.StatusInternalServerError, false
}

// errorMessage hides storage details from API callers.
func errorMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return domain.ErrInternal.Error()
	}
	return err.Error()
}
