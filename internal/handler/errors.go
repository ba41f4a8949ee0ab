package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"explorer/internal/domain"
	"explorer/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Anything that is not
// a domain error is logged and reported as a bare 500.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError

	switch {
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request.")
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Resource not found.")
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, "Resource conflict.")
	default:
		logger.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", httputil.GetRequestID(r.Context()),
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
