package middleware

import (
	"net/http"

	"explorer/internal/httputil"

	"github.com/google/uuid"
)

// maxRequestIDLength bounds ids accepted from clients
const maxRequestIDLength = 128

// RequestID propagates an inbound X-Request-ID or assigns a new UUID, and
// echoes it on the response
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(httputil.RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		w.Header().Set(httputil.RequestIDHeader, requestID)
		next.ServeHTTP(w, httputil.WithRequestID(r, requestID))
	})
}
