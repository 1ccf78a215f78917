// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	var fromCtx string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	header := rec.Header().Get(requestIDHeader)
	require.NotEmpty(t, header)
	_, err := uuid.Parse(header)
	require.NoError(t, err, "generated ID should be a valid UUID")
	require.Equal(t, header, fromCtx)
}

func TestRequestID_ReusesInboundHeader(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"upstream proxy id", "existing-request-id-12345"},
		{"upstream uuid", uuid.New().String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromCtx string
			handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
				fromCtx = GetRequestID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			req.Header.Set(requestIDHeader, tt.id)
			rec := httptest.NewRecorder()
			handler(rec, req)

			require.Equal(t, tt.id, rec.Header().Get(requestIDHeader))
			require.Equal(t, tt.id, fromCtx)
		})
	}
}

func TestRequestID_EmptyHeaderStillGenerates(t *testing.T) {
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set(requestIDHeader, "")
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestID_EachRequestIsolated(t *testing.T) {
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	seen := make(map[string]bool, 10)
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		id := rec.Header().Get(requestIDHeader)
		require.False(t, seen[id], "expected unique ID per request")
		seen[id] = true
	}
	require.Len(t, seen, 10)
}

func TestGetRequestID_NoValueInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	require.Empty(t, GetRequestID(req.Context()))
}
