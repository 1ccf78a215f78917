// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sfroment/conduit/internal/logging"
)

type contextKey string

// RequestIDKey is the context key RequestID stores the resolved ID under.
const RequestIDKey contextKey = "request_id"

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request a correlation identity: it reuses an
// inbound X-Request-ID if present, otherwise mints a UUID, echoes it back
// on the response, and threads it through the request context so handlers
// and the logging package can both see it.
func RequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := resolveRequestID(r)

		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		ctx = logging.ContextWithRequestID(ctx, id)
		ctx = logging.ContextWithNewCorrelationID(ctx)

		next(w, r.WithContext(ctx))
	}
}

func resolveRequestID(r *http.Request) string {
	if id := r.Header.Get(requestIDHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

// GetRequestID returns the request ID RequestID stored in ctx, or "" if
// RequestID never ran for this request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
