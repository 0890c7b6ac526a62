package http

import (
	"errors"
	"net/http"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

// All core errors are recoverable; they map straight onto user-facing
// statuses for the presentation layer to toast.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidGeometry):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
