package api

import (
	"errors"
	"net/http"

	"group-manager/internal/domain"
	"group-manager/internal/logging"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
// AccessDenied shares 401 with Unauthenticated so existing clients keep
// seeing the status they were built against.
func httpStatusFromDomainError(err error) int {
	var unauthenticated *domain.UnauthenticatedError
	var accessDenied *domain.AccessDeniedError
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	var storeFailure *domain.StoreFailureError

	switch {
	case errors.As(err, &unauthenticated), errors.As(err, &accessDenied):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &conflict), errors.As(err, &storeFailure):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing message for err. Store faults only
// expose their summary; unknown errors expose nothing.
func errorMessage(err error) string {
	var storeFailure *domain.StoreFailureError
	if errors.As(err, &storeFailure) {
		return storeFailure.Message
	}
	if httpStatusFromDomainError(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// writeDomainError renders err as an Error body with the mapped status.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatusFromDomainError(err)
	if status == http.StatusInternalServerError {
		logging.From(r.Context()).Error("unhandled error", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, errorMessage(err))
}
