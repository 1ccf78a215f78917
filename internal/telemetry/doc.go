// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

// Package telemetry is the metrics aggregation and exposition core of the
// proxy's data plane. It maintains an in-memory, mutex-guarded tree of
// counters, gauges, and histograms dimensioned by proxy direction,
// destination labels, request authority, and response classification, and
// renders that tree as Prometheus text format on demand.
//
// # Writing
//
// Event producers hold a Record and call its methods as connections and
// streams progress:
//
//	rec, srv := telemetry.New(time.Now(), "/metrics")
//	rec.TransportOpen(telemetry.TransportCtx{Direction: telemetry.Outbound, Role: telemetry.RoleClient, DstLabels: dst})
//	rec.TransportClose(ctx, telemetry.TransportClose{Duration: d, RxBytes: rx, TxBytes: tx, Clean: true})
//
// Every Record method is infallible from the caller's perspective: counter
// overflow and unknown HTTP/2 error codes are handled internally rather
// than surfaced as errors.
//
// # Serving
//
// Serve implements http.Handler and answers GET at the path passed to New
// (here /metrics) with optional gzip negotiation:
//
//	mux.Handle("/metrics", srv)
//
// Record and Serve share the same mutex-guarded tree; a scrape never
// observes a torn write.
package telemetry
