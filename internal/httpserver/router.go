// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

// Package httpserver wires the telemetry scrape endpoint into a chi router
// with the shared request-tracking middleware.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sfroment/conduit/internal/middleware"
	"github.com/sfroment/conduit/internal/telemetry"
)

// New builds the router for the metrics daemon: the telemetry scrape
// endpoint at srv's configured path, wrapped with request-ID propagation,
// plus a liveness check at /healthz. The route is mounted at srv.Path()
// rather than a caller-supplied string so the router and the handler can
// never disagree about where scrapes are served. Every method on that path
// reaches srv, which answers anything but GET with 404; unknown paths get
// 404 with an empty body.
func New(srv telemetry.Serve) http.Handler {
	r := chi.NewRouter()

	r.Handle(srv.Path(), middleware.RequestID(srv.ServeHTTP))
	r.Get("/healthz", middleware.RequestID(healthz))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
