package response

import (
	"context"
	"errors"
	"net/http"

	"gitlab.com/codejudge.net/internal/static/errs"
)

// StatusFor maps a service error to the HTTP status reported to the client
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.MissingFields):
		return http.StatusBadRequest
	case errors.Is(err, errs.ProblemNotFound), errors.Is(err, errs.ResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.JudgeBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ResultStoreOff):
		return http.StatusNotImplemented
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MessageFor returns the client-facing message for err. Internal failures are not detailed.
func MessageFor(err error) string {
	if StatusFor(err) == http.StatusInternalServerError {
		return "Failed to judge submission."
	}
	return err.Error()
}
