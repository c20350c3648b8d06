package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avelichko/scribe/internal/service"
)

// mapServiceError translates a service-layer error into the matching HTTP
// status and error envelope. Anything unrecognized is reported as a 500
// without leaking the underlying cause.
func mapServiceError(c echo.Context, err error) error {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		return Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(svcErr, service.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(svcErr, service.ErrConflict):
		// Duplicate users surface as a plain 400 to the client.
		status = http.StatusBadRequest
	case errors.Is(svcErr, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(svcErr, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(svcErr, service.ErrNotFound):
		status = http.StatusNotFound
	}

	return Error(c, status, svcErr.Code, svcErr.Message)
}
