// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"strconv"
	"strings"

	"github.com/sfroment/conduit/internal/logging"
)

// ServeHTTP implements the scrape endpoint at Serve's configured path: GET
// only, gzip negotiated via Accept-Encoding, text/plain Prometheus
// exposition otherwise. Any other path or method returns 404 with an empty
// body.
func (s Serve) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != s.path || r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if r.Context().Err() != nil {
		return
	}

	var plain bytes.Buffer
	err := func() error {
		s.s.mu.Lock()
		defer s.s.mu.Unlock()
		return Encode(&plain, s.s.root)
	}()
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode metrics")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	if acceptsGzip(r.Header.Get("Accept-Encoding")) {
		var gz bytes.Buffer
		zw := gzip.NewWriter(&gz)
		if _, err := zw.Write(plain.Bytes()); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("failed to gzip metrics body")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := zw.Close(); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("failed to finalize gzip metrics body")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Length", strconv.Itoa(gz.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(gz.Bytes())
		return
	}

	w.Header().Set("Content-Length", strconv.Itoa(plain.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(plain.Bytes())
}

// acceptsGzip reports whether an Accept-Encoding header value indicates the
// client accepts gzip with any quality value greater than zero.
func acceptsGzip(header string) bool {
	if header == "" {
		return false
	}
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ";")
		coding := strings.TrimSpace(fields[0])
		if coding != "gzip" && coding != "*" {
			continue
		}

		q := 1.0
		for _, f := range fields[1:] {
			f = strings.TrimSpace(f)
			v, ok := strings.CutPrefix(f, "q=")
			if !ok {
				continue
			}
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				q = parsed
			}
		}
		if q > 0 {
			return true
		}
	}
	return false
}
