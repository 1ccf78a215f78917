// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

// Package middleware wraps the metrics daemon's HTTP routes with
// request-ID propagation for correlated logging.
//
// Usage:
//
//	r := chi.NewRouter()
//	r.Get("/metrics", middleware.RequestID(srv.ServeHTTP))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    id := middleware.GetRequestID(r.Context())
//	    logging.Ctx(r.Context()).Info().Msg("handled scrape")
//	}
//
// RequestID is safe for concurrent use: it carries state only through the
// immutable request context, never shared mutable state.
//
// There is no generic compression middleware here: the scrape handler
// (internal/telemetry.Serve) negotiates gzip itself against the exact
// q-value Accept-Encoding rules its contract requires, so a size-threshold
// gzip wrapper would have no caller.
package middleware
