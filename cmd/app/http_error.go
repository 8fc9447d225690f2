package main

import (
	"errors"
	"net/http"

	"CoffeeStoreAPI/internal/repository"
	"CoffeeStoreAPI/internal/services"
)

// statusForError maps service sentinel errors to HTTP status codes.
// Anything unrecognized is treated as a bad request rather than a 500
// so that business-rule violations never surface as server faults.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrRefundNotFound),
		errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, repository.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateRefundRequest),
		errors.Is(err, services.ErrRefundAlreadyDecided):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
